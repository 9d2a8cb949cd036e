package main

import (
	"fmt"
	"os"

	"github.com/aretw0/roster/internal/cli"
	"github.com/aretw0/roster/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Roster is a contact list screen you can drive from a terminal, HTTP or MCP",
	Long: `Roster keeps a list of contacts with an add editor and a delete confirmation.
Sessions are persisted (file, redis or memory) and can be resumed from any surface.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: roster.yaml, roster.yml or roster.toml)")
	flags.StringP("session", "s", "", "Session id")
	flags.String("backend", "", "Snapshot store: file, redis or memory")
	flags.String("store-path", "", "Directory of the file store")
	flags.String("redis-addr", "", "Redis address for the redis store")
	flags.String("log-level", "", "Log level: debug, info, warn, error or off")
	flags.Bool("debug", false, "Shorthand for --log-level=debug")
}

// loadEnv reads the config file, applies flag overrides and wires the host.
// Logs always go to stderr so stdout stays free for the screen and JSON output.
func loadEnv(cmd *cobra.Command) (*cli.Env, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"session":    &cfg.Session,
		"backend":    &cfg.Store.Backend,
		"store-path": &cfg.Store.Path,
		"redis-addr": &cfg.Store.RedisAddr,
		"log-level":  &cfg.LogLevel,
	}
	for name, field := range overrides {
		if flags.Changed(name) {
			*field, _ = flags.GetString(name)
		}
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}

	return cli.NewEnv(cfg, os.Stderr)
}
