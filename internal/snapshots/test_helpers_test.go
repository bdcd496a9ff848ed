package snapshots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func sampleSnapshot() Snapshot {
	u1 := players.Player{ID: "u1", Name: "Alessandro Rossi", Rating: 8.5, Roles: []string{"Striker"}}
	u2 := players.Player{ID: "u2", Name: "Marco V.", Rating: 7}
	price := 7.0
	return Snapshot{
		Users: []players.Player{u1, u2},
		Matches: []domainmatches.Match{{
			ID:             "m1",
			Sport:          domainmatches.SportSoccer,
			Title:          "5v5 Friendly Night",
			Location:       "Milano Football Center",
			MaxPlayers:     10,
			CurrentPlayers: 2,
			Status:         domainmatches.StatusOpen,
			Price:          &price,
			Organizer:      u1,
			Players:        []players.Player{u1, u2},
		}},
	}
}

// assertRoundTrip saves a snapshot through p and checks it loads back intact.
func assertRoundTrip(t *testing.T, p Persister) {
	t.Helper()
	ctx := context.Background()

	_, err := p.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound, "before first save")

	snap := sampleSnapshot()
	require.NoError(t, p.Save(ctx, snap))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Users, 2)
	assert.Equal(t, "u1", got.Users[0].ID)
	assert.Equal(t, []string{"Striker"}, got.Users[0].Roles)

	require.Len(t, got.Matches, 1)
	m := got.Matches[0]
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, 2, m.CurrentPlayers)
	assert.Equal(t, domainmatches.StatusOpen, m.Status)
	require.NotNil(t, m.Price)
	assert.Equal(t, 7.0, *m.Price)
	require.Len(t, m.Players, 2)
	assert.Equal(t, "u2", m.Players[1].ID)

	snap.Matches[0].Title = "Renamed"
	require.NoError(t, p.Save(ctx, snap))
	got, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Matches[0].Title, "overwrite wins")
}
