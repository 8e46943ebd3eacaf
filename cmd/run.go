package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/frontsea320/Reinf-t2i/internal/config"
	"github.com/frontsea320/Reinf-t2i/internal/console"
	"github.com/frontsea320/Reinf-t2i/internal/layout"
	"github.com/frontsea320/Reinf-t2i/internal/mllm"
	"github.com/frontsea320/Reinf-t2i/internal/pricing"
	"github.com/frontsea320/Reinf-t2i/internal/proc"
	"github.com/frontsea320/Reinf-t2i/internal/report"
	"github.com/frontsea320/Reinf-t2i/internal/runner"
	"github.com/frontsea320/Reinf-t2i/internal/secrets"
	"github.com/frontsea320/Reinf-t2i/internal/stage"
)

func newRunCmd() *cobra.Command {
	var (
		flagOnly   string
		flagFormat string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark evaluation pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			l, err := layout.Resolve(cfg.Root)
			if err != nil {
				return err
			}

			stages := stage.Table(l)
			if flagOnly != "" {
				stages, err = stage.Filter(stages, config.SplitCategories(flagOnly))
				if err != nil {
					return err
				}
			}

			table := pricing.Default()
			if cfg.Pricing.File != "" {
				loaded, err := pricing.Load(cfg.Pricing.File)
				if err != nil {
					console.Warnf("%v; using built-in pricing", err)
				} else {
					table = loaded
				}
			}

			if !cmd.Flags().Changed("format") {
				flagFormat = cfg.Report.Format
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Starting T2I-CompBench evaluation (root: %s)\n", l.Root)
			if _, err := runner.Run(ctx, &runner.Opts{
				Layout: l,
				Stages: stages,
				Local:  proc.Local{Python: cfg.Python},
				Images: cfg.Images,
				Judge:  secrets.HasCredential(),
				MLLM: mllm.Opts{
					Categories: cfg.MLLM.Categories,
					Start:      cfg.MLLM.Start,
					Step:       cfg.MLLM.Step,
					FailFast:   cfg.MLLM.FailFast,
				},
				Model:   cfg.MLLM.Model,
				Pricing: table,
			}); err != nil {
				return err
			}

			if flagFormat != "none" {
				fmt.Println("\n--- Results ---")
				return report.Generate(l.Summary, flagFormat, os.Stdout)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagOnly, "only", "", "comma-separated stage keys to run (default: all)")
	cmd.Flags().StringVar(&flagFormat, "format", "table", "post-run report format (table, markdown, json, none)")
	return cmd
}
