package main

import (
	"log"
	"os"
	"strings"

	"github.com/benbeisheim/kingcapture-backend/internal/config"
	"github.com/benbeisheim/kingcapture-backend/internal/controller"
	"github.com/benbeisheim/kingcapture-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		log.Printf("%s %s", c.Method(), c.Path())
		return c.Next()
	})

	gameManager := service.NewGameManager(service.Settings{
		DefaultDepth: cfg.DefaultDepth,
		MaxDepth:     cfg.MaxDepth,
		MaxPlies:     cfg.MaxPlies,
	})
	gameService := service.NewGameService(gameManager)

	controller.RegisterRoutes(app, gameService, cfg.Origins)

	log.Printf("listening on %s (depth %d, max depth %d)", cfg.Addr, cfg.DefaultDepth, cfg.MaxDepth)
	log.Fatal(app.Listen(cfg.Addr))
}
