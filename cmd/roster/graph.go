package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/roster/internal/presentation/graph"
	"github.com/aretw0/roster/internal/runtime"
	"github.com/aretw0/roster/pkg/domain"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the screen navigation graph",
	Long: `Explores the screen's transitions and outputs a Mermaid diagram (graph TD).
With --session, the destination that session is on is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		edges := graph.Explore(runtime.NewEngine(), domain.NewState(domain.Contact{ID: "sample", Name: "Sample"}))

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("session") {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			state, err := env.Store.Load(cmd.Context(), env.Config.Session)
			if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return err
			}
			if state != nil {
				overlay = &graph.GraphOverlay{Current: domain.KindOf(state.Destination)}
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(edges, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
