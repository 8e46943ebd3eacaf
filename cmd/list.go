package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frontsea320/Reinf-t2i/internal/layout"
	"github.com/frontsea320/Reinf-t2i/internal/mllm"
	"github.com/frontsea320/Reinf-t2i/internal/secrets"
	"github.com/frontsea320/Reinf-t2i/internal/stage"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the evaluation stages and their commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			l, err := layout.Resolve(cfg.Root)
			if err != nil {
				return err
			}

			fmt.Println("Stages:")
			for _, st := range stage.Table(l) {
				fmt.Printf("  - %s: %s (in %s)\n", st.Key, strings.Join(st.Argv, " "), st.Dir)
				fmt.Printf("      result: %s\n", st.ResultFile)
				if img := cfg.Images[st.Key]; img != "" {
					fmt.Printf("      image: %s\n", img)
				}
			}

			fmt.Println("\nJudge:")
			if secrets.HasCredential() {
				fmt.Printf("  - %s: categories [%s], start %d, step %d\n",
					mllm.Key, strings.Join(cfg.MLLM.Categories, ", "), cfg.MLLM.Start, cfg.MLLM.Step)
			} else {
				fmt.Printf("  - %s: disabled (%s not set)\n", mllm.Key, secrets.CredentialVar)
			}
			return nil
		},
	}
}
