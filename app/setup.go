package app

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dakshininfra/purchase-api/config"
	"github.com/dakshininfra/purchase-api/database"
	"github.com/dakshininfra/purchase-api/router"
)

// SetupAndRunApp handle app and database start and graceful shutdown
func SetupAndRunApp() error {
	if err := config.LoadENV(); err != nil {
		return err
	}

	// start databases
	if err := database.StartMongoDB(); err != nil {
		return err
	}
	defer database.CloseMongoDB()

	if err := database.StartRedis(); err != nil {
		return err
	}
	defer database.CloseRedis()

	// create app
	app := fiber.New()

	// attach middleware
	FiberMiddleware(app)

	// setup routes
	router.SetupRoutes(app)

	// attach swagger
	config.AddSwaggerRoutes(app)

	StartServerWithGracefulShutdown(app)

	return nil
}
