// Package idgen provides implementations of ports.IDGenerator.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/ports"
	"github.com/google/uuid"
)

// UUID mints random (v4) UUIDs.
type UUID struct{}

// Next returns a new random UUID string.
func (UUID) Next() domain.ID {
	return domain.ID(uuid.NewString())
}

// Incrementing mints UUID-shaped ids from a counter starting at zero:
// 00000000-0000-0000-0000-000000000000, ...-000000000001, and so on.
// It is deterministic and meant for tests and previews.
type Incrementing struct {
	mu   sync.Mutex
	next uint64
}

// NewIncrementing returns a generator whose first id encodes start.
func NewIncrementing(start uint64) *Incrementing {
	return &Incrementing{next: start}
}

// Next returns the current counter value as an id and advances the counter.
func (g *Incrementing) Next() domain.ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := domain.ID(fmt.Sprintf("%s%012x", incrementingPrefix, g.next))
	g.next++
	return id
}

// incrementingPrefix is the fixed head of every id Incrementing mints.
const incrementingPrefix = "00000000-0000-0000-0000-"

// Reserve advances the counter past any of ids it could have minted, so a
// resumed session never gets an id it already holds.
func (g *Incrementing) Reserve(ids ...domain.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range ids {
		tail, ok := strings.CutPrefix(string(id), incrementingPrefix)
		if !ok || len(tail) != 12 {
			continue
		}
		n, err := strconv.ParseUint(tail, 16, 64)
		if err != nil {
			continue
		}
		if n >= g.next {
			g.next = n + 1
		}
	}
}

// Constant always returns the same id.
type Constant domain.ID

// Next returns c.
func (c Constant) Next() domain.ID {
	return domain.ID(c)
}

// Parse maps a configuration name to a generator ("uuid" or "incrementing").
func Parse(mode string) (ports.IDGenerator, error) {
	switch mode {
	case "", "uuid":
		return UUID{}, nil
	case "incrementing":
		return NewIncrementing(0), nil
	default:
		return nil, fmt.Errorf("unknown id generator %q", mode)
	}
}
