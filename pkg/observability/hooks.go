package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/roster/pkg/domain"
)

// LogHooks logs every lifecycle event at Info (drops at Debug).
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAction: func(ctx context.Context, e *domain.ActionEvent) {
			logger.InfoContext(ctx, "action",
				"session_id", e.SessionID,
				"action", e.Action,
				"contacts", e.Contacts,
			)
		},
		OnPresent: func(ctx context.Context, e *domain.DestinationEvent) {
			logger.InfoContext(ctx, "present", "session_id", e.SessionID, "destination", e.To)
		},
		OnDismiss: func(ctx context.Context, e *domain.DestinationEvent) {
			logger.InfoContext(ctx, "dismiss", "session_id", e.SessionID, "destination", e.From)
		},
		OnDrop: func(ctx context.Context, e *domain.ActionEvent) {
			logger.DebugContext(ctx, "drop", "session_id", e.SessionID, "action", e.Action)
		},
	}
}

// Merge fans each event out to every non-nil callback of hooks, in order.
func Merge(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var merged domain.LifecycleHooks
	for _, h := range hooks {
		merged.OnAction = chainAction(merged.OnAction, h.OnAction)
		merged.OnDrop = chainAction(merged.OnDrop, h.OnDrop)
		merged.OnPresent = chainDestination(merged.OnPresent, h.OnPresent)
		merged.OnDismiss = chainDestination(merged.OnDismiss, h.OnDismiss)
	}
	return merged
}

func chainAction(a, b func(context.Context, *domain.ActionEvent)) func(context.Context, *domain.ActionEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.ActionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainDestination(a, b func(context.Context, *domain.DestinationEvent)) func(context.Context, *domain.DestinationEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.DestinationEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
