package model

import (
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/quanvenc/BlindChess-Z/internal/ws"
)

// Phase is the lifecycle stage of a match. Transitions only ever move
// forward: waiting, awaiting board, in progress, finished.
type Phase uint8

const (
	PhaseWaitingForPlayers Phase = iota
	PhaseAwaitingBoard
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWaitingForPlayers:
		return "waitingForPlayers"
	case PhaseAwaitingBoard:
		return "awaitingBoard"
	case PhaseInProgress:
		return "inProgress"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*ws.Client // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*ws.Client),
	}
}

// The Game struct focuses on a single game's state and its observers. All
// rule decisions happen here under one mutex; every public operation either
// applies completely or leaves the state exactly as it found it.
type Game struct {
	ID string

	mu      sync.Mutex
	oracle  EqualityOracle
	log     *zap.Logger
	phase   Phase
	board   Board
	players []Player
	current Color
	history []MoveRecord

	connections *GameConnections // Connections just for this game
}

func NewGame(id string, oracle EqualityOracle, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		ID:          id,
		oracle:      oracle,
		log:         log,
		phase:       PhaseWaitingForPlayers,
		board:       NewBoard(),
		players:     make([]Player, 0, 2),
		connections: NewGameConnections(),
	}
}

// RegisterPlayer seats a caller. The first registrant takes white, the
// second black; the second registration also arms the board load and fixes
// white as the side to move.
func (g *Game) RegisterPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.players {
		if p.ID == playerID {
			return 0, ErrAlreadyRegistered
		}
	}
	if len(g.players) == 2 {
		return 0, ErrGameFull
	}

	color := White
	if len(g.players) == 1 {
		color = Black
	}
	g.players = append(g.players, Player{ID: playerID, Color: color})
	if len(g.players) == 2 {
		g.phase = PhaseAwaitingBoard
		g.current = White
	}

	g.log.Info("player registered",
		zap.String("gameId", g.ID),
		zap.String("playerId", playerID),
		zap.String("color", color.String()))

	go g.announceRegistration(playerID, color)
	return color, nil
}

func (g *Game) announceRegistration(playerID string, color Color) {
	g.broadcast(ws.MessageTypePlayerRegistered, ws.PlayerRegisteredPayload{
		PlayerID:  playerID,
		Color:     color.Index(),
		ColorName: color.String(),
	})
	g.broadcastState()
}

// InitializeBoard installs the full opening grid. Only the white player may
// load it, only once, and only after both seats are taken.
func (g *Game) InitializeBoard(playerID string, grid Grid) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseInProgress || g.phase == PhaseFinished {
		return ErrAlreadyActive
	}
	player, ok := g.playerByID(playerID)
	if !ok || player.Color != White || g.phase != PhaseAwaitingBoard {
		return ErrNotAuthorized
	}

	g.board.load(grid)
	g.phase = PhaseInProgress
	g.current = White

	g.log.Info("board initialized",
		zap.String("gameId", g.ID),
		zap.String("playerId", playerID))

	go g.broadcastState()
	return nil
}

// MakeMove runs a claim through the full check pipeline and, if every check
// passes, applies it. Checks run in a fixed order and the first failure
// decides the error; nothing is mutated on any failure path.
func (g *Game) MakeMove(playerID string, claim MoveClaim) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseInProgress {
		return ErrGameNotActive
	}
	player, ok := g.playerByID(playerID)
	if !ok {
		return ErrUnknownPlayer
	}
	if player.Color != g.current {
		return ErrTurnViolation
	}
	if !InBounds(claim.FromX, claim.FromY) || !InBounds(claim.ToX, claim.ToY) {
		return fmt.Errorf("%w: coordinates out of bounds", ErrIllegalMove)
	}

	src := g.board.At(claim.FromX, claim.FromY)
	if src.Captured {
		return ErrDeadPiece
	}
	if src.White != (player.Color == White) {
		return ErrWrongColorPiece
	}
	if err := g.verifyClaim(claim); err != nil {
		return err
	}
	if !Legal(src.Type, claim.ToX-claim.FromX, claim.ToY-claim.FromY) {
		return ErrIllegalMove
	}

	// The destination takes the source record whole, token included, and
	// only then is the origin flagged captured. With from == to the piece
	// ends up captured where it stands.
	g.board.set(claim.ToX, claim.ToY, src)
	g.board.markCaptured(claim.FromX, claim.FromY)

	record := MoveRecord{
		Actor: player.Color,
		FromX: claim.FromX,
		FromY: claim.FromY,
		ToX:   claim.ToX,
		ToY:   claim.ToY,
	}
	g.history = append(g.history, record)
	g.current = g.current.Opposite()

	stuck := g.current
	over := !g.hasLegalMove(stuck)
	if over {
		g.phase = PhaseFinished
	}

	g.log.Info("move applied",
		zap.String("gameId", g.ID),
		zap.String("playerId", playerID),
		zap.String("actor", record.Actor.String()),
		zap.Int("fromX", record.FromX), zap.Int("fromY", record.FromY),
		zap.Int("toX", record.ToX), zap.Int("toY", record.ToY),
		zap.Bool("gameOver", over))

	go g.announceMove(record, over, stuck)
	return nil
}

// verifyClaim asks the oracle whether the claimed tokens equal the tokens
// stored at the claimed coordinates. A negative answer and an oracle failure
// are both unproven claims; the failure detail rides along on the sentinel.
func (g *Game) verifyClaim(claim MoveClaim) error {
	stored := g.board.At(claim.FromX, claim.FromY)
	ok, err := g.oracle.Equals(claim.FromToken, stored.Position, claim.Proof)
	if err != nil {
		return fmt.Errorf("%w: source token: %v", ErrClaimMismatch, err)
	}
	if !ok {
		return fmt.Errorf("%w: source token", ErrClaimMismatch)
	}

	dest := g.board.At(claim.ToX, claim.ToY)
	ok, err = g.oracle.Equals(claim.ToToken, dest.Position, claim.Proof)
	if err != nil {
		return fmt.Errorf("%w: destination token: %v", ErrClaimMismatch, err)
	}
	if !ok {
		return fmt.Errorf("%w: destination token", ErrClaimMismatch)
	}
	return nil
}

// hasLegalMove reports whether any live piece of the color has at least one
// in-bounds destination its movement code allows. The scan judges geometry
// only, exactly like move checking: claims and occupancy play no part.
func (g *Game) hasLegalMove(color Color) bool {
	white := color == White
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			sq := g.board.At(x, y)
			if sq.Captured || sq.White != white {
				continue
			}
			for tx := 0; tx < BoardSize; tx++ {
				for ty := 0; ty < BoardSize; ty++ {
					if Legal(sq.Type, tx-x, ty-y) {
						return true
					}
				}
			}
		}
	}
	return false
}

func (g *Game) playerByID(id string) (Player, bool) {
	for _, p := range g.players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (g *Game) playerByColor(c Color) (Player, bool) {
	for _, p := range g.players {
		if p.Color == c {
			return p, true
		}
	}
	return Player{}, false
}

// Snapshot is the client-facing view of a game. Board squares carry their
// opaque tokens; tokens are ciphertext and reading them back is how clients
// track where their commitments sit.
type Snapshot struct {
	GameID    string       `json:"gameId"`
	Phase     Phase        `json:"phase"`
	PhaseName string       `json:"phaseName"`
	Players   []PlayerView `json:"players"`
	ToMove    *PlayerView  `json:"toMove"`
	GameOver  bool         `json:"gameOver"`
	Winner    *PlayerView  `json:"winner"`
	Board     Grid         `json:"board"`
	Moves     []MoveRecord `json:"moveHistory"`
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		GameID:    g.ID,
		Phase:     g.phase,
		PhaseName: g.phase.String(),
		Players:   make([]PlayerView, 0, len(g.players)),
		GameOver:  g.phase == PhaseFinished,
		Board:     g.board.snapshot(),
		Moves:     append([]MoveRecord(nil), g.history...),
	}
	for _, p := range g.players {
		snap.Players = append(snap.Players, p.View())
	}
	switch g.phase {
	case PhaseInProgress:
		if p, ok := g.playerByColor(g.current); ok {
			v := p.View()
			snap.ToMove = &v
		}
	case PhaseFinished:
		if p, ok := g.playerByColor(g.current); ok {
			v := p.View()
			snap.Winner = &v
		}
	}
	return snap
}

// CurrentTurn returns the player to move. The second value is false outside
// the in-progress phase, where nobody holds the turn.
func (g *Game) CurrentTurn() (Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseInProgress {
		return Player{}, false
	}
	return g.playerByColor(g.current)
}

// Winner returns the player the terminal scan left without a move. False
// until the game finishes.
func (g *Game) Winner() (Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseFinished {
		return Player{}, false
	}
	return g.playerByColor(g.current)
}

func (g *Game) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.phase == PhaseFinished
}

func (g *Game) CurrentPhase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.phase
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.playerByID(playerID)
	return ok
}

// RegisterConnection attaches a websocket for pushed events. Only seated
// players may attach, one connection each; a duplicate attach keeps the
// existing connection and closes the new one.
func (g *Game) RegisterConnection(playerID string, conn *ws.Client) error {
	if !g.IsPlayerInGame(playerID) {
		return ErrUnknownPlayer
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.CloseWithReason(websocket.CloseNormalClosure, "connection already exists")
		return nil // Not really an error, just rejecting duplicate connection
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	// Send the joiner (and everyone else) the current state.
	go g.broadcastState()
	return nil
}

// UnregisterConnection detaches a websocket, but only if it is still the one
// on record for the player.
func (g *Game) UnregisterConnection(playerID string, conn *ws.Client) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, ok := g.connections.connections[playerID]; ok && current == conn {
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) announceMove(rec MoveRecord, over bool, stuck Color) {
	g.broadcast(ws.MessageTypeMoveMade, ws.MoveMadePayload{
		Actor:     rec.Actor.Index(),
		ActorName: rec.Actor.String(),
		FromX:     rec.FromX,
		FromY:     rec.FromY,
		ToX:       rec.ToX,
		ToY:       rec.ToY,
	})
	if over {
		g.broadcast(ws.MessageTypeGameOver, ws.GameOverPayload{
			Winner:     stuck.Index(),
			WinnerName: stuck.String(),
		})
	}
	g.broadcastState()
}

func (g *Game) broadcastState() {
	g.broadcast(ws.MessageTypeGameState, g.Snapshot())
}

// broadcast fans a message out to every attached connection. Connections are
// copied out under the read lock first so no lock is held while writing;
// connections that fail a write are dropped. Each write is serialized by the
// client's own lock against the other broadcast goroutines and error replies.
func (g *Game) broadcast(t ws.MessageType, payload any) {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		g.log.Error("marshal broadcast payload",
			zap.String("gameId", g.ID),
			zap.String("type", string(t)),
			zap.Error(err))
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*ws.Client, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			g.log.Warn("dropping connection after failed write",
				zap.String("gameId", g.ID),
				zap.String("playerId", playerID),
				zap.Error(err))
			g.UnregisterConnection(playerID, conn)
		}
	}
}
