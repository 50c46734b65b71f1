package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var hostnameFlag string
	var portFlag int
	var configFlag string

	ctx := newCommandContext(&hostnameFlag, &portFlag, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "dynoctl",
		Short:         "Control CLI for dynolog monitoring daemons",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&hostnameFlag, "hostname", "", "Daemon host to contact (defaults to the configured host)")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "Daemon port for hosts without an explicit one (defaults to 1778)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newVersionCommand(ctx))
	rootCmd.AddCommand(newGputraceCommand(ctx))
	rootCmd.AddCommand(newDcgmCommand(ctx))
	rootCmd.AddCommand(newBatchCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
