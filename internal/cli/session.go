package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/roster/pkg/domain"
)

// ListSessions prints the stored session ids.
func ListSessions(ctx context.Context, env *Env, w io.Writer) error {
	ids, err := env.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No active sessions found.")
		return nil
	}
	fmt.Fprintln(w, "Active Sessions:")
	for _, id := range ids {
		fmt.Fprintln(w, "- "+id)
	}
	return nil
}

// InspectSession prints a session snapshot as indented JSON.
func InspectSession(ctx context.Context, env *Env, w io.Writer, sessionID string) error {
	state, err := env.Store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("session '%s' not found", sessionID)
		}
		return fmt.Errorf("load session '%s': %w", sessionID, err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// RemoveSessions deletes every listed session, reporting each one.
func RemoveSessions(ctx context.Context, env *Env, w io.Writer, sessionIDs ...string) error {
	var errs []error
	for _, id := range sessionIDs {
		if err := env.Store.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("remove '%s': %w", id, err))
			continue
		}
		fmt.Fprintf(w, "Removed session '%s'\n", id)
	}
	return errors.Join(errs...)
}
