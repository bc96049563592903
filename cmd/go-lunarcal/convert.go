package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lunarcal/internal/config"
	"github.com/tartampluch/go-lunarcal/internal/engine"
	"github.com/tartampluch/go-lunarcal/internal/report"
)

var convertFormats = []string{config.FormatText, config.FormatJSON, config.FormatYAML, config.FormatICS}

func newConvertCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert [YYYY-MM-DD[THH:MM:SS]]",
		Short: "Convert a date-time at UTC+8 (default: now)",
		Example: `  go-lunarcal convert 2022-01-10T22:05:03
  go-lunarcal convert --format json -- -0100-03-01T12:00:00
  go-lunarcal convert --format ics > today.ics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(convertFormats, format) {
				return fmt.Errorf("%s: %q", config.ErrReportFormat, format)
			}

			var req engine.Request
			if len(args) == 1 {
				var err error
				if req, err = engine.ParseRequest(args[0]); err != nil {
					return err
				}
			}

			gen := a.generator()
			rep, err := gen.Convert(cmd.Context(), req)
			if err != nil {
				return err
			}

			tr := a.catalog.Translator(a.settings.Language)
			if format == config.FormatICS {
				data, err := gen.Calendar(rep, tr)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return report.Render(cmd.OutOrStdout(), format, rep, tr)
		},
	}

	cmd.Flags().StringVarP(&format, config.FlagFormat, "f", config.FormatText, config.FlagDescFmt)
	return cmd
}
