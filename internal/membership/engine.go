// Package membership computes join/leave transitions for a match roster.
//
// There is a single entry point, Toggle: the caller does not say whether it
// wants to join or leave. A player already on the roster leaves, anyone else
// joins. The returned Result carries the Action that was applied so callers
// never have to infer it by diffing rosters.
package membership

import (
	domainmatches "github.com/preston-bernstein/sportconnect-service/internal/domain/matches"
	"github.com/preston-bernstein/sportconnect-service/internal/domain/players"
)

// Action tags which side of the toggle was applied.
type Action string

const (
	ActionJoined Action = "joined"
	ActionLeft   Action = "left"
)

// Result is the outcome of a successful transition.
type Result struct {
	Match  domainmatches.Match `json:"match"`
	Action Action              `json:"action"`
}

// Toggle returns the next state of match after user taps join/leave.
// match is never modified; the result owns a freshly allocated roster.
func Toggle(match domainmatches.Match, user players.Player) (Result, error) {
	if match.HasPlayer(user.ID) {
		return Result{Match: leave(match, user.ID), Action: ActionLeft}, nil
	}
	next, err := join(match, user)
	if err != nil {
		return Result{}, err
	}
	return Result{Match: next, Action: ActionJoined}, nil
}

// leave always reopens the match, a vacated slot is immediately available.
func leave(match domainmatches.Match, userID string) domainmatches.Match {
	next := match.Clone()
	roster := make([]players.Player, 0, len(match.Players))
	for _, p := range next.Players {
		if p.ID != userID {
			roster = append(roster, p)
		}
	}
	next.Players = roster
	next.CurrentPlayers = len(roster)
	next.Status = domainmatches.StatusOpen
	return next
}

func join(match domainmatches.Match, user players.Player) (domainmatches.Match, error) {
	if match.CurrentPlayers >= match.MaxPlayers {
		return domainmatches.Match{}, ErrMatchFull
	}
	next := match.Clone()
	roster := make([]players.Player, 0, len(match.Players)+1)
	roster = append(roster, next.Players...)
	roster = append(roster, user.Clone())
	next.Players = roster
	next.CurrentPlayers = len(roster)
	next.Status = domainmatches.StatusFor(next.CurrentPlayers, next.MaxPlayers)
	return next, nil
}
