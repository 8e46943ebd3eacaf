package cmd

import (
	"github.com/spf13/cobra"

	"github.com/frontsea320/Reinf-t2i/internal/config"
	"github.com/frontsea320/Reinf-t2i/internal/secrets"
)

var (
	cfgFile  string
	flagRoot string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reinf-t2i",
		Short: "Evaluation harness for the T2I-CompBench metric suite",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			secrets.LoadDotenv(".")
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "reinf-t2i.yaml", "config file path")
	root.PersistentFlags().StringVar(&flagRoot, "root", "", "benchmark root (overrides config and T2I_ROOT)")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// loadConfig resolves the effective configuration. The default config file
// is optional; one named explicitly with --config must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flag := cmd.Root().PersistentFlags().Lookup("config"); flag != nil && flag.Changed {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadOrDefault(cfgFile)
	}
	if err != nil {
		return nil, err
	}
	if flagRoot != "" {
		cfg.Root = flagRoot
	}
	return cfg, nil
}
