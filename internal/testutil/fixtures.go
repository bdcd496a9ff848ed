package testutil

import (
	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
)

// SamplePlayer returns a minimal player fixture with the provided id.
func SamplePlayer(id string) players.Player {
	return players.Player{
		ID:     id,
		Name:   "Player " + id,
		Avatar: "https://example.test/" + id + ".png",
		Rating: 7,
	}
}

// SampleMatch builds an open-or-full match with the given roster. The first
// member, if any, is the organizer.
func SampleMatch(id string, maxPlayers int, memberIDs ...string) domainmatches.Match {
	roster := make([]players.Player, 0, len(memberIDs))
	for _, mid := range memberIDs {
		roster = append(roster, SamplePlayer(mid))
	}
	var organizer players.Player
	if len(roster) > 0 {
		organizer = roster[0]
	}
	return domainmatches.Match{
		ID:             id,
		Sport:          domainmatches.SportSoccer,
		Title:          "Match " + id,
		Date:           "Today",
		Time:           "20:00",
		Location:       "Test Ground",
		CurrentPlayers: len(roster),
		MaxPlayers:     maxPlayers,
		Status:         domainmatches.StatusFor(len(roster), maxPlayers),
		Organizer:      organizer,
		Players:        roster,
	}
}
