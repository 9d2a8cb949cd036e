package main

import (
	"github.com/aretw0/roster/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves every session over HTTP: state, actions, server-sent diffs,
the OpenAPI document and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		addr, _ := cmd.Flags().GetString("addr")
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Serve(ctx, env, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (default from config, :8080)")
}
