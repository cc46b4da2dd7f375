package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}

			runner, _, _ := buildPipeline(cfg, log)
			question := strings.Join(args, " ")

			result := runner.Run(cmd.Context(), "", question, nil)
			fmt.Println(result.Response)
			return nil
		},
	}
}
