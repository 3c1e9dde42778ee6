package main

import (
	"github.com/spf13/cobra"

	"notarycheck/internal/services/notarytool"
)

// newRootCommand builds the command tree. toolOpts are applied to every
// notarytool client the commands construct.
func newRootCommand(toolOpts ...notarytool.Option) *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag, toolOpts)

	rootCmd := &cobra.Command{
		Use:           "notarycheck",
		Short:         "Poll Apple notarization status for a pending submission",
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

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
