package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/frontsea320/Reinf-t2i/internal/layout"
	"github.com/frontsea320/Reinf-t2i/internal/preflight"
	"github.com/frontsea320/Reinf-t2i/internal/stage"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the benchmark root before an expensive run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			l, err := layout.Resolve(cfg.Root)
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen)
			yellow := color.New(color.FgYellow)
			red := color.New(color.FgRed)

			checks := preflight.Run(l, cfg.Python, stage.Table(l))
			for _, c := range checks {
				line := c.Name
				if c.Detail != "" {
					line += ": " + c.Detail
				}
				switch c.Status {
				case preflight.Fail:
					red.Printf("  fail  %s\n", line)
				case preflight.Warn:
					yellow.Printf("  warn  %s\n", line)
				default:
					green.Printf("  ok    %s\n", line)
				}
			}
			if preflight.HasFailure(checks) {
				return fmt.Errorf("preflight found blocking problems in %s", l.Root)
			}
			return nil
		},
	}
}
