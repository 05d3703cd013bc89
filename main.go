package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/voguemanic/voguemanic-backend/config"
	"github.com/voguemanic/voguemanic-backend/database"
	"github.com/voguemanic/voguemanic-backend/handlers"
	"github.com/voguemanic/voguemanic-backend/outbox"
	"github.com/voguemanic/voguemanic-backend/realtime"
	"github.com/voguemanic/voguemanic-backend/routes"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Connect to MongoDB
	if err := database.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Resale side effects run through the outbox so order placement can
	// respond without waiting on them.
	resaleOutbox := outbox.New(outbox.NewMongoStore(), config.GetEnvInt("OUTBOX_BUFFER", 256))
	resaleOutbox.Start()

	sockets := realtime.NewRegistry()

	handlers.ResaleOutbox = resaleOutbox
	handlers.Sockets = sockets

	routes.SetupRoutes(e, sockets)

	port := config.GetEnv("PORT", "3000")

	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	// Stop accepting requests before stopping the outbox, so no handler is
	// still enqueueing transfers when the drain begins.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Println("Server shutdown:", err)
	}
	resaleOutbox.Stop()
}
