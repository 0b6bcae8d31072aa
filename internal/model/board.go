package model

// BoardSize is the side length of the square grid.
const BoardSize = 8

// Square is the full record a board coordinate holds. Position is the
// opaque identity token committed by the initial load; the three clear
// fields are the only state the engine reasons about directly.
type Square struct {
	Position OpaqueToken `json:"position"`
	Type     PieceType   `json:"pieceType"`
	White    bool        `json:"isWhite"`
	Captured bool        `json:"isCaptured"`
}

// Grid is a fully materialized 8x8 arrangement, indexed [x][y].
type Grid [BoardSize][BoardSize]Square

// Board is the authoritative grid. Every coordinate always holds a record;
// there is no empty sentinel, so squares never written by the initial load
// read as captured.
type Board struct {
	squares Grid
}

// NewBoard returns a board on which every square is already captured.
func NewBoard() Board {
	var b Board
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			b.squares[x][y] = Square{Captured: true}
		}
	}
	return b
}

// InBounds reports whether (x, y) names a coordinate on the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

// At returns a copy of the square at (x, y). Callers must bounds-check
// first.
func (b *Board) At(x, y int) Square {
	return b.squares[x][y]
}

// set overwrites the whole record at (x, y), token included.
func (b *Board) set(x, y int, sq Square) {
	b.squares[x][y] = sq
}

// markCaptured flips the captured flag at (x, y) leaving the rest of the
// record in place.
func (b *Board) markCaptured(x, y int) {
	b.squares[x][y].Captured = true
}

// load replaces the entire grid in one step.
func (b *Board) load(grid Grid) {
	b.squares = grid
}

// snapshot returns a copy of the grid. Square values copy cleanly because
// token handles are immutable.
func (b *Board) snapshot() Grid {
	return b.squares
}
