package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/arjunrk/feeledger/internal/pkg/logger"
	"github.com/arjunrk/feeledger/internal/server"
)

// @title FeeLedger API
// @version 1.0
// @description Fee management backend for a college accounts office
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email accounts@college.edu

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A .env file is a local development convenience; absence is not an error.
	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("No .env file loaded")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives or startup fails.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
