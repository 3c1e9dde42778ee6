package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"notarycheck/internal/checker"
	"notarycheck/internal/config"
	"notarycheck/internal/logging"
	"notarycheck/internal/services"
	"notarycheck/internal/services/notarytool"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var stateFile string
	var githubOutput string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the status of the pending notarization submission",
		Long: "Reads the submission ID from the state file and asks notarytool for its status.\n" +
			"Exits 0 when accepted, still processing, or when there is nothing to check.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyCheckOverrides(cfg, stateFile, githubOutput); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			client, err := ctx.newNotaryClient(cfg)
			if err != nil {
				return fmt.Errorf("init notarytool: %w", err)
			}

			runCtx := services.WithRunID(cmd.Context(), uuid.NewString())
			logging.WithContext(runCtx, logger).Debug("notarytool invocation",
				logging.String("binary", client.Binary()),
				logging.String("args", strings.Join(notarytool.RedactArgs(client.InfoArgs("<id>", notarytool.Credentials{
					AppleID:  cfg.Credentials.AppleID,
					Password: cfg.Credentials.Password,
					TeamID:   cfg.Credentials.TeamID,
				})), " ")),
			)

			chk, err := checker.New(cfg, client, logger, checker.WithToolOutput(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			result, runErr := chk.Run(runCtx)
			if jsonOutput {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else if marker := result.Outcome.Marker(); marker != "" {
				fmt.Fprintln(cmd.OutOrStdout(), marker)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&stateFile, "state-file", "", "File holding the submission ID (overrides paths.state_file)")
	cmd.Flags().StringVar(&githubOutput, "github-output", "", "CI output file to append accepted=true to (overrides GITHUB_OUTPUT)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	return cmd
}

func applyCheckOverrides(cfg *config.Config, stateFile, githubOutput string) error {
	if value := strings.TrimSpace(stateFile); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("resolve state file: %w", err)
		}
		cfg.Paths.StateFile = expanded
	}
	if value := strings.TrimSpace(githubOutput); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("resolve github output: %w", err)
		}
		cfg.Paths.GitHubOutput = expanded
	}
	return nil
}
