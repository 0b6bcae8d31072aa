package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/quanvenc/BlindChess-Z/internal/controller"
	"github.com/quanvenc/BlindChess-Z/internal/middleware"
	"github.com/quanvenc/BlindChess-Z/internal/oracle"
	"github.com/quanvenc/BlindChess-Z/internal/service"
)

// devOracleKey keeps local development running without any setup. Real
// deployments must provide BLINDCHESS_ORACLE_KEY.
const devOracleKey = "blindchess-dev-oracle-key-0001"

type config struct {
	addr      string
	origins   string
	oracleKey []byte
	dev       bool
	devKey    bool
}

func loadConfig() (config, error) {
	// Values from .env never override variables already set in the
	// environment.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	cfg := config{
		addr:    ":3000",
		origins: "http://localhost:5173",
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.addr = ":" + port
	}
	if addr := os.Getenv("BLINDCHESS_ADDR"); addr != "" {
		cfg.addr = addr
	}
	if origins := os.Getenv("BLINDCHESS_ORIGINS"); origins != "" {
		cfg.origins = origins
	}
	cfg.dev = os.Getenv("BLINDCHESS_DEV") != ""

	if hexKey := os.Getenv("BLINDCHESS_ORACLE_KEY"); hexKey != "" {
		key, err := hex.DecodeString(hexKey)
		if err != nil {
			return config{}, fmt.Errorf("BLINDCHESS_ORACLE_KEY is not valid hex: %w", err)
		}
		cfg.oracleKey = key
	} else {
		cfg.oracleKey = []byte(devOracleKey)
		cfg.devKey = true
	}
	return cfg, nil
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.dev)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.devKey {
		logger.Warn("using built-in development oracle key, set BLINDCHESS_ORACLE_KEY for real deployments")
	}

	oracleService, err := oracle.NewService(cfg.oracleKey)
	if err != nil {
		logger.Fatal("oracle setup failed", zap.Error(err))
	}

	// Initialize services
	gameService := service.NewGameService(oracleService, logger)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService, logger)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.origins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		logger.Debug("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()))
		return err
	})

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         strings.Split(cfg.origins, ","),
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/register", gameController.RegisterPlayer)
	gameRoutes.Post("/board", gameController.InitializeBoard)
	gameRoutes.Post("/move", gameController.MakeMove)
	gameRoutes.Get("/turn", gameController.GetCurrentTurn)
	gameRoutes.Get("/over", gameController.GetGameOver)
	gameRoutes.Get("/", gameController.GetGameState)

	logger.Info("listening", zap.String("addr", cfg.addr))
	logger.Fatal("server exited", zap.Error(app.Listen(cfg.addr)))
}
