package idgen_test

import (
	"testing"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/aretw0/roster/pkg/idgen"
	"github.com/aretw0/roster/pkg/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.IDGenerator = idgen.UUID{}
	_ ports.IDGenerator = (*idgen.Incrementing)(nil)
	_ ports.IDGenerator = idgen.Constant("")
	_ ports.IDReserver  = (*idgen.Incrementing)(nil)
)

func TestIncrementing_IsDeterministic(t *testing.T) {
	gen := idgen.NewIncrementing(0)
	assert.Equal(t, domain.ID("00000000-0000-0000-0000-000000000000"), gen.Next())
	assert.Equal(t, domain.ID("00000000-0000-0000-0000-000000000001"), gen.Next())

	again := idgen.NewIncrementing(0)
	assert.Equal(t, domain.ID("00000000-0000-0000-0000-000000000000"), again.Next())
}

func TestIncrementing_IDsAreValidUUIDs(t *testing.T) {
	gen := idgen.NewIncrementing(255)
	_, err := uuid.Parse(string(gen.Next()))
	require.NoError(t, err)
}

func TestUUID_Unique(t *testing.T) {
	gen := idgen.UUID{}
	seen := map[domain.ID]bool{}
	for i := 0; i < 100; i++ {
		id := gen.Next()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestParse(t *testing.T) {
	gen, err := idgen.Parse("incrementing")
	require.NoError(t, err)
	assert.IsType(t, &idgen.Incrementing{}, gen)

	gen, err = idgen.Parse("")
	require.NoError(t, err)
	assert.IsType(t, idgen.UUID{}, gen)

	_, err = idgen.Parse("snowflake")
	assert.Error(t, err)
}

func TestIncrementing_ReserveSkipsTakenIDs(t *testing.T) {
	gen := idgen.NewIncrementing(0)
	gen.Reserve(
		"00000000-0000-0000-0000-000000000004",
		"00000000-0000-0000-0000-000000000002",
		"seed-1",
		"00000000-0000-0000-0000-zzzzzzzzzzzz",
	)
	assert.Equal(t, domain.ID("00000000-0000-0000-0000-000000000005"), gen.Next())

	gen.Reserve("00000000-0000-0000-0000-000000000001")
	assert.Equal(t, domain.ID("00000000-0000-0000-0000-000000000006"), gen.Next(), "reserving a lower id never rewinds")
}
