package matches

import (
	"strings"

	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
)

// Defaults applied to optional create fields.
const (
	DefaultSport      = domainmatches.SportSoccer
	DefaultDate       = "Today"
	DefaultTime       = "20:00"
	DefaultMaxPlayers = 10
)

// CreateMatchRequest is the body of a create call.
type CreateMatchRequest struct {
	Sport       domainmatches.Sport `json:"sport"`
	Title       string              `json:"title"`
	Location    string              `json:"location"`
	Date        string              `json:"date,omitempty"`
	Time        string              `json:"time,omitempty"`
	MaxPlayers  int                 `json:"maxPlayers"`
	Price       *float64            `json:"price,omitempty"`
	OrganizerID string              `json:"organizerId"`
}

// Validate checks required fields and value ranges.
func (r CreateMatchRequest) Validate() error {
	vErr := &ValidationError{}
	if strings.TrimSpace(r.Title) == "" {
		vErr.add("title", "is required")
	}
	if strings.TrimSpace(r.Location) == "" {
		vErr.add("location", "is required")
	}
	if r.Sport != "" && !r.Sport.Valid() {
		vErr.add("sport", "is not a supported sport")
	}
	if r.MaxPlayers < 0 {
		vErr.add("maxPlayers", "must be positive")
	}
	if r.Price != nil && *r.Price < 0 {
		vErr.add("price", "must not be negative")
	}
	if len(vErr.Problems) > 0 {
		return vErr
	}
	return nil
}

// build assembles the initial match state for a validated request.
func (r CreateMatchRequest) build(id string, organizer players.Player) domainmatches.Match {
	sport := r.Sport
	if sport == "" {
		sport = DefaultSport
	}
	maxPlayers := r.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = DefaultMaxPlayers
	}
	var price *float64
	if r.Price != nil {
		p := *r.Price
		price = &p
	}

	return domainmatches.Match{
		ID:             id,
		Sport:          sport,
		Title:          strings.TrimSpace(r.Title),
		Date:           orDefault(r.Date, DefaultDate),
		Time:           orDefault(r.Time, DefaultTime),
		Location:       strings.TrimSpace(r.Location),
		CurrentPlayers: 1,
		MaxPlayers:     maxPlayers,
		Status:         domainmatches.StatusFor(1, maxPlayers),
		Price:          price,
		Organizer:      organizer,
		Players:        []players.Player{organizer.Clone()},
	}
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
