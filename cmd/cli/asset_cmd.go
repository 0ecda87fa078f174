package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func assetCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "manages assets and balances",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create [symbol] [decimals]",
		Short: "creates an asset issued by the caller",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cfg.caller()
			if err != nil {
				return err
			}
			decimals, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return errors.WithStack(err)
			}
			return cfg.call("token.createAsset", from, args[0], decimals)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "mint [asset] [to] [amount]",
		Short: "mints the amount of the asset to the address",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cfg.caller()
			if err != nil {
				return err
			}
			Amount, err := parseAmount(args[2], cfg.decimals)
			if err != nil {
				return err
			}
			return cfg.call("token.mint", from, args[0], args[1], Amount)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "transfer [asset] [to] [amount]",
		Short: "sends the amount of the asset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cfg.caller()
			if err != nil {
				return err
			}
			Amount, err := parseAmount(args[2], cfg.decimals)
			if err != nil {
				return err
			}
			return cfg.call("token.transfer", from, args[0], args[1], Amount)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "info [asset]",
		Short: "returns the asset information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call("token.asset", args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "balance [asset] [holder]",
		Short: "returns the balance of the holder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.callAmount("token.balanceOf", args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "supply [asset]",
		Short: "returns the total supply of the asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.callAmount("token.totalSupply", args[0])
		},
	})
	return cmd
}
