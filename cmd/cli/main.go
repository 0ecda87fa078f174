package main

import (
	"os"

	"github.com/spf13/cobra"
)

type cliConfig struct {
	hostURL  string
	from     string
	decimals int32
}

func main() {
	cfg := &cliConfig{}
	var rootCmd = &cobra.Command{
		Use:           "farmcli",
		Short:         "operates the farms of a farmd node",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&cfg.hostURL, "host", "http://localhost:48001", "url of the node to access")
	rootCmd.PersistentFlags().StringVar(&cfg.from, "from", "", "address of the caller")
	rootCmd.PersistentFlags().Int32Var(&cfg.decimals, "decimals", 0, "decimals of the amounts given and shown")
	rootCmd.AddCommand(assetCommand(cfg))
	rootCmd.AddCommand(managerCommand(cfg))
	rootCmd.AddCommand(cropCommand(cfg))
	rootCmd.AddCommand(plotCommand(cfg))
	rootCmd.AddCommand(journalCommand(cfg))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
