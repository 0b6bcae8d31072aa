package model

// PieceType is one of the seven movement codes a square can carry. The
// numeric values are part of the protocol: clients commit to codes, not
// names, so the mapping below is frozen even where a pattern disagrees with
// the chess piece it is named after.
type PieceType uint8

const (
	Pawn PieceType = iota
	Bishop
	Knight
	Rook
	Queen
	Guard
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Bishop:
		return "bishop"
	case Knight:
		return "knight"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case Guard:
		return "guard"
	case King:
		return "king"
	default:
		return "unknown"
	}
}

// Valid reports whether the code is one of the seven defined movements.
func (p PieceType) Valid() bool { return p <= King }

// Legal reports whether a piece with the given code may make the
// displacement (dx, dy). Movement is judged on displacement alone: there is
// no path blocking, no occupancy rule, and no reference to where on the
// board the piece stands.
func Legal(p PieceType, dx, dy int) bool {
	switch p {
	case Pawn:
		return abs(dx) == 1 && dy == 0
	case Bishop:
		return abs(dx) == 1 && abs(dy) == 1
	case Knight:
		return dx == 0 && abs(dy) == 1
	case Rook:
		return abs(dx) == abs(dy)
	case Queen:
		return dx == 0 || dy == 0
	case Guard:
		return (abs(dx) == 1 && dy == 0) || (dx == 0 && abs(dy) == 1)
	case King:
		return abs(dx) <= 1 && abs(dy) <= 1
	default:
		return false
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
