package matches

import "github.com/preston-bernstein/sportconnect-service/internal/domain/players"

// Sport enumerates the supported sports.
type Sport string

const (
	SportSoccer     Sport = "Soccer"
	SportTennis     Sport = "Tennis"
	SportBasketball Sport = "Basketball"
	SportPadel      Sport = "Padel"
	SportVolleyball Sport = "Volleyball"
)

// Sports lists every valid Sport in display order.
var Sports = []Sport{SportSoccer, SportTennis, SportBasketball, SportPadel, SportVolleyball}

// Valid reports whether s is one of the known sports.
func (s Sport) Valid() bool {
	for _, known := range Sports {
		if s == known {
			return true
		}
	}
	return false
}

// Status tracks whether a match still accepts players.
type Status string

const (
	StatusOpen      Status = "Open"
	StatusFull      Status = "Full"
	StatusCompleted Status = "Completed"
)

// Match is a scheduled sports event with bounded capacity and a roster.
type Match struct {
	ID             string           `json:"id"`
	Sport          Sport            `json:"sport"`
	Title          string           `json:"title"`
	Date           string           `json:"date"`
	Time           string           `json:"time"`
	Location       string           `json:"location"`
	CurrentPlayers int              `json:"currentPlayers"`
	MaxPlayers     int              `json:"maxPlayers"`
	Status         Status           `json:"status"`
	Price          *float64         `json:"price,omitempty"`
	Organizer      players.Player   `json:"organizer"`
	Players        []players.Player `json:"players"`
}

// StatusFor returns Full when count has reached capacity, Open otherwise.
func StatusFor(count, maxPlayers int) Status {
	if count >= maxPlayers {
		return StatusFull
	}
	return StatusOpen
}

// HasPlayer reports whether a player with id is on the roster.
func (m Match) HasPlayer(id string) bool {
	return m.playerIndex(id) >= 0
}

func (m Match) playerIndex(id string) int {
	for i, p := range m.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of m.
func (m Match) Clone() Match {
	m.Organizer = m.Organizer.Clone()
	m.Players = players.CloneAll(m.Players)
	if m.Price != nil {
		price := *m.Price
		m.Price = &price
	}
	return m
}

// CloneAll deep-copies a slice of matches.
func CloneAll(in []Match) []Match {
	out := make([]Match, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}
