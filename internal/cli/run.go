package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/internal/presentation/tui"
	"github.com/aretw0/roster/pkg/runner"
)

// RunOptions contains the configuration for the run command.
type RunOptions struct {
	SessionID string
	TUI       bool
	JSON      bool
	Fresh     bool
	Quiet     bool

	// In and Out default to Stdin/Stdout.
	In  io.Reader
	Out io.Writer
}

// Run opens the session and drives it interactively until the user quits.
func Run(ctx context.Context, env *Env, opts RunOptions) error {
	if opts.SessionID == "" {
		opts.SessionID = env.Config.Session
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.TUI && opts.JSON {
		return fmt.Errorf("--tui and --json cannot be used together")
	}

	if opts.Fresh {
		if err := env.Store.Delete(ctx, opts.SessionID); err != nil {
			return fmt.Errorf("reset session: %w", err)
		}
	}

	store, err := env.OpenStore(ctx, opts.SessionID)
	if err != nil {
		return err
	}
	env.Logger.Info("Session active", "session_id", opts.SessionID, "contacts", store.State().Contacts.Len())

	if opts.TUI {
		return tui.Run(ctx, store)
	}
	return handleExecutionError(runLines(ctx, env, store, opts))
}

func runLines(ctx context.Context, env *Env, store *roster.Store, opts RunOptions) error {
	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.In, opts.Out)
	} else {
		var textOpts []runner.TextHandlerOption
		if f, ok := opts.In.(*os.File); ok && tui.IsInteractive(f) {
			textOpts = append(textOpts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
			if !opts.Quiet {
				tui.PrintBanner(opts.Out, strings.TrimSpace(roster.Version))
			}
		}
		handler = runner.NewTextHandler(opts.In, opts.Out, textOpts...)
		if !opts.Quiet {
			printSystemMessage(opts.Out, "Session '%s' active. Type help for commands.", opts.SessionID)
		}
	}

	r := runner.NewRunner(runner.WithLogger(env.Logger), runner.WithInputHandler(handler))
	return r.Run(ctx, store)
}
