package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/roster"
	"github.com/aretw0/roster/pkg/domain"
)

// Runner handles the interaction loop of a roster.Store using the provided IO.
// This allows for easy testing and integration with different frontends.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on stdin/stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run shows the screen, reads a command, dispatches it and repeats until the
// user quits, the input ends or ctx is cancelled. Only host failures (output,
// persistence) are returned; a rejected command is reported and the loop goes on.
func (r *Runner) Run(ctx context.Context, store *roster.Store) error {
	state := store.State()
	show := true

	for {
		if show {
			if err := r.Handler.Output(ctx, state); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
		show = false

		line, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				r.Logger.Debug("runner stopped", "reason", err)
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		cmd, err := ParseCommand(line, state)
		if err != nil {
			r.Logger.Debug("command rejected", "line", line, "err", err)
			if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
				return err
			}
			continue
		}

		switch {
		case cmd.Quit:
			return nil
		case cmd.Help:
			if err := r.Handler.SystemOutput(ctx, Help); err != nil {
				return err
			}
			continue
		case cmd.Show:
			show = true
			continue
		}

		for _, action := range cmd.Actions {
			next, err := store.Send(ctx, action)
			if err != nil {
				return err
			}
			if domain.Diff(state, next) == nil {
				r.Logger.Debug("action ignored", "action", action.Kind())
				if err := r.Handler.SystemOutput(ctx, "ignored: "+ignoredReason(action, state)); err != nil {
					return err
				}
				continue
			}
			state = next
			show = true
		}
	}
}

func ignoredReason(action domain.Action, state *domain.State) string {
	switch a := action.(type) {
	case domain.AddContactAction:
		if _, editing := state.Editor(); !editing {
			return "the editor is not open"
		}
		if _, ok := a.Action.(domain.EditorSaveTapped); ok {
			return "a contact needs a name"
		}
	case domain.ConfirmDeletionAction:
		return "there is nothing to confirm"
	case domain.Dismiss:
		return "nothing is presented"
	}
	return action.Kind() + " changed nothing"
}
