package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avolkov/roomwire/internal/app"
	"github.com/avolkov/roomwire/internal/config"
	"github.com/avolkov/roomwire/internal/log"
)

var (
	flagConfig   string
	flagAddr     string
	flagUser     string
	flagAvatar   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "roomwire",
	Short: "Terminal chat client multiplexing one connection across rooms",
	RunE:  run,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "path to config file")
	flags.StringVar(&flagAddr, "addr", "", "WebSocket server address")
	flags.StringVar(&flagUser, "user", "", "username to connect as")
	flags.StringVar(&flagAvatar, "avatar", "", "avatar reference")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.New(flagLogLevel)

	cfg, path, err := config.Load(logger, flagConfig)
	if err != nil {
		return err
	}
	cfg.UpdateFrom(config.Config{
		ServerURL: flagAddr,
		Username:  flagUser,
		Avatar:    flagAvatar,
		LogLevel:  flagLogLevel,
	})
	if cfg.Username == "" {
		return fmt.Errorf("a username is required (--user or username in %s)", path)
	}
	if flagLogLevel == "" {
		logger = log.New(cfg.LogLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := newTermSink(os.Stdout)
	application := app.New(cfg, sink, logger)

	go readInput(ctx, cancel, application.Commands(), sink)

	logger.Info().Str("server", cfg.ServerURL).Str("user", cfg.Username).Msg("starting roomwire")
	return application.Run(ctx)
}
