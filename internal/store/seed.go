package store

import (
	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
	"github.com/preston-bernstein/sportconnect-service/internal/snapshots"
)

// SeedUsers returns the fixed players written on first run.
func SeedUsers() []players.Player {
	return []players.Player{
		{ID: "u1", Name: "Alessandro Rossi", Avatar: "https://picsum.photos/id/64/100/100", Rating: 8.5, Roles: []string{"Striker", "Winger"}},
		{ID: "u2", Name: "Marco V.", Avatar: "https://picsum.photos/id/32/100/100", Rating: 7.0, Roles: []string{"Defender"}},
		{ID: "u3", Name: "Luca B.", Avatar: "https://picsum.photos/id/55/100/100", Rating: 9.0, Roles: []string{"Midfielder"}},
		{ID: "u4", Name: "Giovanni", Avatar: "https://picsum.photos/id/41/100/100", Rating: 6.5, Roles: []string{"Goalkeeper"}},
		{ID: "u5", Name: "Stefano", Avatar: "https://picsum.photos/id/33/100/100", Rating: 7.5, Roles: []string{"Defender"}},
	}
}

// SeedMatches returns the fixed matches written on first run, newest first.
func SeedMatches() []domainmatches.Match {
	u := SeedUsers()
	price1, price2 := 7.0, 12.0
	return []domainmatches.Match{
		{
			ID:             "m1",
			Sport:          domainmatches.SportSoccer,
			Title:          "5v5 Friendly Night",
			Date:           "Today",
			Time:           "20:00",
			Location:       "Milano Football Center",
			CurrentPlayers: 4,
			MaxPlayers:     10,
			Status:         domainmatches.StatusOpen,
			Price:          &price1,
			Organizer:      u[0],
			Players:        []players.Player{u[0], u[1], u[2], u[3]},
		},
		{
			ID:             "m2",
			Sport:          domainmatches.SportPadel,
			Title:          "Intermediate Padel Match",
			Date:           "Tomorrow",
			Time:           "18:30",
			Location:       "Padel Club Roma",
			CurrentPlayers: 1,
			MaxPlayers:     4,
			Status:         domainmatches.StatusOpen,
			Price:          &price2,
			Organizer:      u[1],
			Players:        []players.Player{u[1]},
		},
	}
}

// SeedSnapshot bundles the seed users and matches.
func SeedSnapshot() snapshots.Snapshot {
	return snapshots.Snapshot{Users: SeedUsers(), Matches: SeedMatches()}
}
