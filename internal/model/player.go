package model

// Color identifies a side. White registers first and always opens play.
type Color uint8

const (
	White Color = iota
	Black
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Index returns the color as the 0/1 index used on the wire.
func (c Color) Index() int { return int(c) }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Player binds a caller-supplied identity to a side for the whole match.
type Player struct {
	ID    string `json:"id"`
	Color Color  `json:"color"`
}

// PlayerView is the client-facing shape of a player.
type PlayerView struct {
	ID        string `json:"id"`
	Color     int    `json:"color"`
	ColorName string `json:"colorName"`
}

// View renders the player for snapshots and events.
func (p Player) View() PlayerView {
	return PlayerView{ID: p.ID, Color: p.Color.Index(), ColorName: p.Color.String()}
}
