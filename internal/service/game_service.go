package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quanvenc/BlindChess-Z/internal/model"
	"github.com/quanvenc/BlindChess-Z/internal/ws"
)

// GameService owns the single match this process hosts and is the only way
// the transport layer reaches it.
type GameService struct {
	game *model.Game
	log  *zap.Logger
}

func NewGameService(oracle model.EqualityOracle, log *zap.Logger) *GameService {
	if log == nil {
		log = zap.NewNop()
	}
	gameID := uuid.New().String()
	log.Info("game created", zap.String("gameId", gameID))
	return &GameService{
		game: model.NewGame(gameID, oracle, log),
		log:  log,
	}
}

func (gs *GameService) GameID() string {
	return gs.game.ID
}

func (gs *GameService) RegisterPlayer(playerID string) (model.Color, error) {
	color, err := gs.game.RegisterPlayer(playerID)
	if err != nil {
		gs.log.Info("registration rejected",
			zap.String("playerId", playerID),
			zap.Error(err))
		return 0, err
	}
	return color, nil
}

func (gs *GameService) InitializeBoard(playerID string, grid model.Grid) error {
	if err := gs.game.InitializeBoard(playerID, grid); err != nil {
		gs.log.Info("board load rejected",
			zap.String("playerId", playerID),
			zap.Error(err))
		return err
	}
	return nil
}

func (gs *GameService) HandleMove(playerID string, claim model.MoveClaim) error {
	if err := gs.game.MakeMove(playerID, claim); err != nil {
		gs.log.Info("move rejected",
			zap.String("playerId", playerID),
			zap.Error(err))
		return err
	}
	return nil
}

func (gs *GameService) GetGameState() model.Snapshot {
	return gs.game.Snapshot()
}

func (gs *GameService) GetCurrentTurn() (model.Player, bool) {
	return gs.game.CurrentTurn()
}

func (gs *GameService) IsGameOver() bool {
	return gs.game.IsGameOver()
}

func (gs *GameService) GetWinner() (model.Player, bool) {
	return gs.game.Winner()
}

func (gs *GameService) RegisterConnection(playerID string, conn *ws.Client) error {
	return gs.game.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(playerID string, conn *ws.Client) {
	gs.game.UnregisterConnection(playerID, conn)
}
