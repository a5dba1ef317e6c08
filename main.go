package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-relay/internal"
	"github.com/rocketscienceinc/tictactoe-relay/internal/config"
)

const releaseVersion = "0.1.0"

// main - is the entry point of the application. It parses the command line and runs the relay.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	var configPath string

	serve := func(cmd *cobra.Command, _ []string) error {
		conf := initConfig(configPath)
		logger := initLogger(conf)

		if err := app.RunApp(cmd.Context(), logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	}

	root := &cobra.Command{
		Use:           "tictactoe-relay",
		Short:         "Matchmaking and move relay for two-player tic-tac-toe",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yml (default ./config.yml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the websocket and HTTP servers",
		RunE:  serve,
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("tictactoe-relay v" + releaseVersion)
		},
	})

	return root
}

// initialize config.
func initConfig(path string) *config.Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("failed to load .env: %w", err))
	}

	if path == "" {
		baseDir, err := os.Getwd()
		if err != nil {
			panic(fmt.Errorf("failed to get current directory: %w", err))
		}

		path = filepath.Join(baseDir, "./config.yml")
	}

	return config.MustLoad(path)
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
