package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/ports"
)

// Mask replaces every redacted match.
const Mask = "***"

// Common patterns for NewPIIMiddleware.
var (
	EmailPattern = `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`
	PhonePattern = `\+?\d[\d\s().-]{6,}\d`
)

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks parts of contact names
// (including an open editor draft) matching any of the patterns before they are saved.
// The in-memory state is never modified; only the stored copy is masked.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	masked := domain.NewState()
	masked.Revision = state.Revision
	for _, c := range state.Contacts.All() {
		c.Name = m.mask(c.Name)
		masked.Contacts.Append(c)
	}

	switch d := state.Destination.(type) {
	case domain.AddContact:
		d.Editor.Contact.Name = m.mask(d.Editor.Contact.Name)
		masked.Destination = d
	default:
		masked.Destination = state.Clone().Destination
	}
	return m.next.Save(ctx, sessionID, masked)
}

func (m *piiMiddleware) mask(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
