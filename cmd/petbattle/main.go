package main

import (
	"os"

	"github.com/pawhaven/petbattle/internal/api"
	"github.com/pawhaven/petbattle/internal/constants"
	"github.com/pawhaven/petbattle/internal/logging"
	"github.com/pawhaven/petbattle/internal/notify"

	"github.com/gin-gonic/gin"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Load the battle configuration file (required). Path may be provided
	// via PETBATTLE_CONFIG env var or defaults to ./petbattle_config.json
	// in the current working directory.
	configPath := os.Getenv("PETBATTLE_CONFIG")
	if configPath == "" {
		configPath = "./petbattle_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be overridden via PETBATTLE_DB for local
	// development and container mounts.
	dbPath := os.Getenv("PETBATTLE_DB")
	if dbPath == "" {
		dbPath = cfg.DatabasePath
	}
	repo := createRepositoryOrExit(dbPath)

	hub := notify.NewHub()
	handler := api.NewBattleHandler(repo, hub, cfg.Items, cfg.ActionTimeout)
	authHandler := api.NewAuthHandler(repo)

	// Background scanner: periodically expire battles whose action
	// deadline has passed. Expired battles complete with no winner and
	// pay nothing out.
	startTimeoutScanner(repo, hub, cfg.ScanInterval)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET("/version", api.Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RoutePets, handler.ListPets)
		protected.POST(constants.RoutePets, handler.CreatePet)
		protected.GET(constants.RouteInventory, handler.ListInventory)
		protected.GET(constants.RouteProfile, handler.GetProfile)

		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.GET(constants.RouteBattleByID, handler.GetBattle)
		protected.GET(constants.RouteBattleTurns, handler.ListTurns)
		protected.POST(constants.RouteBattleTurns, handler.SubmitTurn)
		protected.POST(constants.RouteBattleComplete, handler.CompleteBattle)
		protected.GET(constants.RouteBattleSocket, handler.WatchBattle)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
