package players

// Player is a registered user who can organize or join matches.
// Players are referenced by matches, never owned by them.
type Player struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Avatar string   `json:"avatar"`
	Rating float64  `json:"rating"`
	Roles  []string `json:"roles,omitempty"`
}

// Clone returns a copy that shares no backing arrays with p.
func (p Player) Clone() Player {
	if p.Roles != nil {
		p.Roles = append([]string(nil), p.Roles...)
	}
	return p
}

// CloneAll deep-copies a slice of players, preserving nil.
func CloneAll(in []Player) []Player {
	if in == nil {
		return nil
	}
	out := make([]Player, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
