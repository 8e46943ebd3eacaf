package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/frontsea320/Reinf-t2i/internal/layout"
	"github.com/frontsea320/Reinf-t2i/internal/report"
)

func newReportCmd() *cobra.Command {
	var flagFormat string
	cmd := &cobra.Command{
		Use:   "report [summary-file]",
		Short: "Render a previously written summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			} else {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				l, err := layout.Resolve(cfg.Root)
				if err != nil {
					return err
				}
				path = l.Summary
			}
			return report.Generate(path, flagFormat, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	return cmd
}
