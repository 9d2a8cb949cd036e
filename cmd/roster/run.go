package main

import (
	"github.com/aretw0/roster/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the contact list interactively",
	Long: `Opens the configured session in the terminal. The line mode accepts
commands (add, name <text>, save, cancel, delete <n>, confirm, list, quit);
--tui starts the full-screen interface and --json speaks JSON Lines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		tuiMode, _ := cmd.Flags().GetBool("tui")
		jsonMode, _ := cmd.Flags().GetBool("json")
		fresh, _ := cmd.Flags().GetBool("fresh")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Run(ctx, env, cli.RunOptions{
			TUI:   tuiMode,
			JSON:  jsonMode,
			Fresh: fresh,
			Quiet: quiet || jsonMode,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("tui", false, "Run the full-screen terminal interface")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (JSON Lines input/output)")
	runCmd.Flags().Bool("fresh", false, "Discard the saved session before starting")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner and session messages")

	// 'run' is the default when no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
