package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLegalDisplacements(t *testing.T) {
	cases := []struct {
		name   string
		piece  PieceType
		dx, dy int
		want   bool
	}{
		{"pawn steps right", Pawn, 1, 0, true},
		{"pawn steps left", Pawn, -1, 0, true},
		{"pawn cannot advance", Pawn, 0, 1, false},
		{"pawn cannot step diagonally", Pawn, 1, 1, false},
		{"pawn cannot jump", Pawn, 2, 0, false},

		{"bishop single diagonal", Bishop, 1, 1, true},
		{"bishop other diagonal", Bishop, -1, 1, true},
		{"bishop back diagonal", Bishop, 1, -1, true},
		{"bishop cannot slide", Bishop, 2, 2, false},
		{"bishop cannot step straight", Bishop, 1, 0, false},

		{"knight steps up", Knight, 0, 1, true},
		{"knight steps down", Knight, 0, -1, true},
		{"knight cannot hop", Knight, 1, 2, false},
		{"knight cannot jump two", Knight, 0, 2, false},
		{"knight cannot step sideways", Knight, 1, 0, false},

		{"rook slides diagonally", Rook, 3, 3, true},
		{"rook slides back diagonally", Rook, -2, 2, true},
		{"rook cannot slide straight", Rook, 3, 0, false},
		{"rook rejects uneven displacement", Rook, 1, 2, false},

		{"queen slides horizontally", Queen, 5, 0, true},
		{"queen slides vertically", Queen, 0, -7, true},
		{"queen cannot slide diagonally", Queen, 3, 3, false},
		{"queen rejects knight shape", Queen, 1, 2, false},

		{"guard steps right", Guard, 1, 0, true},
		{"guard steps down", Guard, 0, -1, true},
		{"guard cannot step diagonally", Guard, 1, 1, false},
		{"guard cannot jump", Guard, 2, 0, false},

		{"king steps diagonally", King, 1, 1, true},
		{"king steps left", King, -1, 0, true},
		{"king cannot jump", King, 2, 0, false},
		{"king rejects long step", King, 1, 2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Legal(tc.piece, tc.dx, tc.dy))
		})
	}
}

// Three of the seven codes accept staying put. That shape is load bearing:
// a piece with one of these codes always has a move, and a piece moved onto
// its own square captures itself.
func TestZeroDisplacement(t *testing.T) {
	admits := map[PieceType]bool{
		Pawn:   false,
		Bishop: false,
		Knight: false,
		Rook:   true,
		Queen:  true,
		Guard:  false,
		King:   true,
	}
	for pt, want := range admits {
		require.Equal(t, want, Legal(pt, 0, 0), "piece %s", pt)
	}
}

func TestUnknownCodeNeverMoves(t *testing.T) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			require.False(t, Legal(PieceType(7), dx, dy))
			require.False(t, Legal(PieceType(255), dx, dy))
		}
	}
}

func TestPieceTypeNames(t *testing.T) {
	require.Equal(t, "pawn", Pawn.String())
	require.Equal(t, "guard", Guard.String())
	require.Equal(t, "king", King.String())
	require.Equal(t, "unknown", PieceType(9).String())

	require.True(t, King.Valid())
	require.False(t, PieceType(7).Valid())
}
