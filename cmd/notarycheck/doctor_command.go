package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"notarycheck/internal/preflight"
)

var errDoctorFailed = errors.New("doctor: required checks failed")

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that notarytool, credentials, and file paths are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ctx.configSeen {
				fmt.Fprintf(out, "Config: %s\n", ctx.configPath)
			} else {
				fmt.Fprintln(out, "Config: defaults (no config file found)")
			}

			results := preflight.RunAll(cfg)
			color := colorEnabled(out)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, statusLabel(r, color), yesNo(!r.Optional), r.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Required", "Detail"}, rows, nil))

			if preflight.Failed(results) {
				return errDoctorFailed
			}
			return nil
		},
	}
}

func statusLabel(r preflight.Result, color bool) string {
	label := "ok"
	colors := text.Colors{text.FgGreen}
	switch {
	case !r.Passed && r.Optional:
		label = "warn"
		colors = text.Colors{text.FgYellow}
	case !r.Passed:
		label = "fail"
		colors = text.Colors{text.FgRed}
	}
	if !color {
		return label
	}
	return colors.Sprint(label)
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
