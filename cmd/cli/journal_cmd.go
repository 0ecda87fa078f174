package main

import (
	"github.com/spf13/cobra"
)

func journalCommand(cfg *cliConfig) *cobra.Command {
	var name, manager, account string
	var cropID int64
	var offset, limit int
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "lists the journaled events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := map[string]interface{}{}
			if len(name) > 0 {
				filter["name"] = name
			}
			if len(manager) > 0 {
				filter["manager"] = manager
			}
			if len(account) > 0 {
				filter["account"] = account
			}
			if cropID >= 0 {
				filter["crop_id"] = cropID
			}
			return cfg.call("journal.list", filter, offset, limit)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "event name")
	cmd.Flags().StringVar(&manager, "manager", "", "manager address")
	cmd.Flags().StringVar(&account, "account", "", "account address as the actor or the receiver")
	cmd.Flags().Int64Var(&cropID, "crop", -1, "crop id of the manager")
	cmd.Flags().IntVar(&offset, "offset", 0, "entries to skip")
	cmd.Flags().IntVar(&limit, "limit", 100, "entries to return")
	return cmd
}
