package rankings

import (
	"math"
	"sort"

	"github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
)

const pointsPerAppearance = 10

// Ranking is a read-only leaderboard row.
type Ranking struct {
	Rank    int            `json:"rank"`
	Player  players.Player `json:"player"`
	Points  int            `json:"points"`
	WinRate float64        `json:"winRate"`
}

// Derive builds a leaderboard from the current users and match rosters.
// Players are ordered by rating, then appearances, then name. Results are not
// recorded, so WinRate is always zero.
func Derive(users []players.Player, ms []matches.Match) []Ranking {
	appearances := make(map[string]int, len(users))
	for _, m := range ms {
		for _, p := range m.Players {
			appearances[p.ID]++
		}
	}

	sorted := players.CloneAll(users)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if appearances[a.ID] != appearances[b.ID] {
			return appearances[a.ID] > appearances[b.ID]
		}
		return a.Name < b.Name
	})

	out := make([]Ranking, 0, len(sorted))
	for i, p := range sorted {
		out = append(out, Ranking{
			Rank:   i + 1,
			Player: p,
			Points: int(math.Round(p.Rating*100)) + pointsPerAppearance*appearances[p.ID],
		})
	}
	return out
}
