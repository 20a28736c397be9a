/*
Package main is the entry point for the classroom breakout server.

It loads configuration (optionally from a .env file), initializes the global logger,
builds the roster and the live hub, serves the HTTP API and gracefully handles
SIGINT and SIGTERM.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"classroom/internal/app/classroom"
	"classroom/internal/app/competition"
	"classroom/internal/app/live"
	"classroom/internal/app/roster"
	"classroom/internal/configs"
	"classroom/internal/handler"
	"classroom/internal/pkg/logx"
	"classroom/internal/pkg/randx"
)

func main() {
	// A missing .env file is normal outside local development.
	envErr := godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment(), cfg.LogLevel)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logx.Warn("Failed to read .env file", "error", envErr.Error())
	}

	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("teacher", cfg.TeacherName).
		Bool("seed_demo", cfg.SeedDemo).
		Msg("Configuration loaded successfully")

	state, err := initialRoster(cfg)
	if err != nil {
		logx.Fatal(err, "Failed to build the initial roster")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := live.NewHub()
	room := classroom.New(roster.NewStore(state, randx.NewSource()), competition.New(), hub)
	hub.SetInitSource(room)
	go hub.Run(ctx)

	deps := &handler.AppDeps{
		Classroom: room,
		Hub:       hub,
		Config:    cfg,
	}

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler.Router(ctx, deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Classroom Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	hub.Stop()
	<-hub.Done()

	logx.Info("Server gracefully stopped.")
}

func initialRoster(cfg *configs.AppConfig) (roster.State, error) {
	teacher := roster.NewParticipant(cfg.TeacherName, "")

	if cfg.SeedDemo {
		return roster.NewState(teacher, roster.DemoRooms(), roster.DemoPool())
	}

	return roster.NewState(teacher, roster.EmptyRooms(cfg.RoomNames), nil)
}
