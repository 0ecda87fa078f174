package main

import (
	"github.com/spf13/cobra"
)

func managerCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manager",
		Short: "manages the managers of the caller",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "appoint",
		Short: "creates a manager owned by the caller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cfg.caller()
			if err != nil {
				return err
			}
			return cfg.call("farm.appoint", from)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "entrust [manager] [owner]",
		Short: "hands the manager over to the owner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cfg.caller()
			if err != nil {
				return err
			}
			return cfg.call("farm.entrust", from, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get [manager]",
		Short: "returns the manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call("farm.manager", args[0])
		},
	})
	return cmd
}

type cropFlags struct {
	depositFee   string
	withdrawFee  string
	rewardRate   string
	endTimestamp uint64
}

func (cf *cropFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cf.depositFee, "deposit-fee", "0", "fraction of a deposit taken as the fee")
	cmd.Flags().StringVar(&cf.withdrawFee, "withdraw-fee", "0", "fraction of a withdrawal taken as the fee")
	cmd.Flags().StringVar(&cf.rewardRate, "reward-rate", "0", "rewards emitted per second")
	cmd.Flags().Uint64Var(&cf.endTimestamp, "end", 0, "unix time the emission ends")
}

// params returns deposit fee, withdraw fee, reward rate and end timestamp
func (cf *cropFlags) params(decimals int32) ([]interface{}, error) {
	depositFee, err := parseRate(cf.depositFee)
	if err != nil {
		return nil, err
	}
	withdrawFee, err := parseRate(cf.withdrawFee)
	if err != nil {
		return nil, err
	}
	rewardRate, err := parseAmount(cf.rewardRate, decimals)
	if err != nil {
		return nil, err
	}
	return []interface{}{depositFee, withdrawFee, rewardRate, cf.endTimestamp}, nil
}

func cropCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop",
		Short: "manages the crops of a manager",
	}

	cultivate := &cropFlags{}
	cultivateCmd := &cobra.Command{
		Use:   "cultivate [manager] [deposit asset] [reward asset]",
		Short: "creates a crop of the manager",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cfg.caller()
			if err != nil {
				return err
			}
			params, err := cultivate.params(cfg.decimals)
			if err != nil {
				return err
			}
			return cfg.call("farm.cultivate", append([]interface{}{from, args[0], args[1], args[2]}, params...)...)
		},
	}
	cultivate.bind(cultivateCmd)
	cmd.AddCommand(cultivateCmd)

	recultivate := &cropFlags{}
	recultivateCmd := &cobra.Command{
		Use:   "recultivate [manager] [id]",
		Short: "changes the fees and the emission of the crop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cfg.caller()
			if err != nil {
				return err
			}
			params, err := recultivate.params(cfg.decimals)
			if err != nil {
				return err
			}
			return cfg.call("farm.recultivate", append([]interface{}{from, args[0], args[1]}, params...)...)
		},
	}
	recultivate.bind(recultivateCmd)
	cmd.AddCommand(recultivateCmd)

	for _, v := range []struct {
		use    string
		short  string
		paused bool
	}{
		{"pause", "stops the deposits of the crop", true},
		{"resume", "resumes the deposits of the crop", false},
	} {
		Paused := v.paused
		cmd.AddCommand(&cobra.Command{
			Use:   v.use + " [manager] [id]",
			Short: v.short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				from, err := cfg.caller()
				if err != nil {
					return err
				}
				return cfg.call("farm.setPaused", from, args[0], args[1], Paused)
			},
		})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "collect [manager] [id] (to)",
		Short: "sends the accrued fees of the crop",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cfg.caller()
			if err != nil {
				return err
			}
			params := []interface{}{from, args[0], args[1]}
			if len(args) > 2 {
				params = append(params, args[2])
			}
			return cfg.callAmount("farm.collect", params...)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get [manager] [id]",
		Short: "returns the crop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call("farm.crop", args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list [manager]",
		Short: "returns the crops of the manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call("farm.crops", args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "addresses [manager] [id]",
		Short: "returns the derived accounts of the crop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call("farm.addresses", args[0], args[1])
		},
	})
	return cmd
}

func plotCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "manages the plots of the caller",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "till [manager] [id]",
		Short: "opens the plot of the caller",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cfg.caller()
			if err != nil {
				return err
			}
			return cfg.call("farm.till", from, args[0], args[1])
		},
	})
	for _, v := range []struct {
		method string
		short  string
	}{
		{"sow", "deposits the amount into the plot"},
		{"deposit", "opens the plot when needed and deposits the amount"},
		{"uproot", "withdraws the amount and claims the rewards, zero only claims"},
	} {
		Method := "farm." + v.method
		cmd.AddCommand(&cobra.Command{
			Use:   v.method + " [manager] [id] [amount]",
			Short: v.short,
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
				return cfg.call(Method, from, args[0], args[1], Amount)
			},
		})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get [manager] [id] [farmer]",
		Short: "returns the plot of the farmer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.call("farm.plot", args[0], args[1], args[2])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pending [manager] [id] [farmer]",
		Short: "returns the rewards the farmer can claim now",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.callAmount("farm.pendingRewards", args[0], args[1], args[2])
		},
	})
	return cmd
}
