package model

// MoveClaim is what a player submits for one move: source and destination
// coordinates, tokens claimed to equal the tokens stored at those
// coordinates, and the proof the oracle needs to check both equalities.
// Claims are consumed by a single MakeMove call and never stored.
type MoveClaim struct {
	FromX     int         `json:"fromX"`
	FromY     int         `json:"fromY"`
	ToX       int         `json:"toX"`
	ToY       int         `json:"toY"`
	FromToken OpaqueToken `json:"fromToken"`
	ToToken   OpaqueToken `json:"toToken"`
	Proof     Proof       `json:"proof"`
}

// MoveRecord is the durable trace of an applied move. It carries the actor
// and coordinates only; tokens stay on the board.
type MoveRecord struct {
	Actor Color `json:"actor"`
	FromX int   `json:"fromX"`
	FromY int   `json:"fromY"`
	ToX   int   `json:"toX"`
	ToY   int   `json:"toY"`
}
