package weedtrack

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/selloa/weed-tracker/internal/app"
	"github.com/selloa/weed-tracker/internal/service"
	"github.com/selloa/weed-tracker/internal/store"
)

func resolveStorePath() (string, error) {
	if strings.TrimSpace(storePath) != "" {
		return storePath, nil
	}
	// A .env next to the binary may carry WEEDTRACK_DB / WEEDTRACK_LOG.
	_ = godotenv.Load()
	if env := os.Getenv("WEEDTRACK_DB"); env != "" {
		return env, nil
	}
	return app.DefaultStorePath()
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if level := os.Getenv("WEEDTRACK_LOG"); level != "" {
		if parsed, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func withTracker(run func(*service.Tracker) error) error {
	path, err := resolveStorePath()
	if err != nil {
		return err
	}
	if err := app.EnsureStoreDir(path); err != nil {
		return err
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	return run(service.NewTracker(st, logger))
}

func parseTimestampOrNow(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return service.ParseTimestamp(value)
}

func parseEntryIDArg(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entry id %q", value)
	}
	if id <= 0 {
		return 0, fmt.Errorf("entry id must be > 0")
	}
	return id, nil
}

func printJSON(cmd *cobra.Command, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
