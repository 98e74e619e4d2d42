package devconnect

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewHTTPServer assembles the fiber app serving the API. Extra middleware
// (access logging, CORS) runs after recovery and request ids.
func NewHTTPServer(auther *Auther, logger Logger, middleware ...fiber.Handler) *fiber.App {
	if logger == nil {
		logger = defLogger()
	}

	app := fiber.New(fiber.Config{
		AppName:               "devconnect",
		ErrorHandler:          NewErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	for _, m := range middleware {
		if m != nil {
			app.Use(m)
		}
	}

	RegisterAuthRoutes(app, WithAuther(auther), WithControllerLogger(logger))

	return app
}
