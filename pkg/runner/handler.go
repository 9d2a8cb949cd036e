package runner

import (
	"context"

	"github.com/aretw0/roster/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI) and JSON (structured) modes.
type IOHandler interface {
	// Output presents the screen state.
	Output(ctx context.Context, state *domain.State) error

	// Input reads one line from the user. It returns io.EOF when the input is exhausted.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (help, rejected commands, ignored actions).
	SystemOutput(ctx context.Context, msg string) error
}
