package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/sienna/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	flagServeAddr     string
	flagServeShutdown time.Duration
	flagServeDebug    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the estimator as a JSON HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().DurationVar(&flagServeShutdown, "shutdown-timeout", 5*time.Second, "Graceful shutdown timeout")
	serveCmd.Flags().BoolVar(&flagServeDebug, "debug", false, "Log at debug level and run gin in debug mode")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := flagServeAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	level := slog.LevelInfo
	if flagServeDebug {
		level = slog.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat, stats, source, err := loadCatalog()
	if err != nil {
		return err
	}
	tmpl, err := loadTemplate()
	if err != nil {
		return err
	}

	svc := server.New(server.Config{
		Addr:            addr,
		ShutdownTimeout: flagServeShutdown,
		Logger:          logger,
		CatalogSource:   source,
	}, cat, stats, tmpl)

	fmt.Printf("  sienna listening on http://%s\n", addr)
	fmt.Printf("  Catalog: %s (%d entries)\n", source, cat.Len())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
