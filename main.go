package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	app "github.com/rocketscienceinc/infinite-tictactoe/internal"
	"github.com/rocketscienceinc/infinite-tictactoe/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
// The only argument is an optional game server port.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	applyPortArg(logger, conf, os.Args[1:])

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// applyPortArg - overrides the game server port with the first argument, if valid.
func applyPortArg(logger *slog.Logger, conf *config.Config, args []string) {
	if len(args) == 0 {
		return
	}

	port, err := strconv.Atoi(args[0])
	if err != nil || port < 1 || port > 65535 {
		logger.Warn("invalid port argument, using configured port", "arg", args[0], "port", conf.SocketPort)
		return
	}

	conf.SocketPort = strconv.Itoa(port)
}
