package common

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Layr-Labs/vyperkit/pkg/common/iface"
	"github.com/Layr-Labs/vyperkit/pkg/common/logger"
	"github.com/Layr-Labs/vyperkit/pkg/common/progress"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// Embedded release version, overridden with -ldflags at build time
var embeddedReleaseVersion = "Development"

type loggerContextKey struct{}

type progressTrackerContextKey struct{}

type appEnvironmentContextKey struct{}

// WithShutdown creates a new context that will be cancelled on SIGTERM/SIGINT
func WithShutdown(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case <-sigChan:
			_, _ = fmt.Fprintln(os.Stderr, "caught interrupt, shutting down gracefully.")
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
		cancel()
	}()

	return ctx
}

// GetLogger picks the line logger on terminals and zap everywhere else
func GetLogger(verbose bool) (iface.Logger, iface.ProgressTracker) {
	if progress.IsTTY() {
		return logger.NewLogger(verbose), progress.NewTTYProgressTracker(MaxProgressRows, os.Stdout)
	}
	log := logger.NewZapLogger(verbose)
	return log, progress.NewLogProgressTracker(MaxProgressRows, log)
}

// WithLogger stores the logger in the context
func WithLogger(ctx context.Context, logger iface.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// WithProgressTracker stores the progress tracker in the context
func WithProgressTracker(ctx context.Context, tracker iface.ProgressTracker) context.Context {
	return context.WithValue(ctx, progressTrackerContextKey{}, tracker)
}

// LoggerFromContext retrieves the logger from the context
// If no logger is found, it returns a non-verbose logger as fallback
func LoggerFromContext(ctx context.Context) iface.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(iface.Logger); ok {
		return logger
	}
	log, _ := GetLogger(false)
	return log
}

// ProgressTrackerFromContext retrieves the progress tracker from the context
func ProgressTrackerFromContext(ctx context.Context) iface.ProgressTracker {
	if tracker, ok := ctx.Value(progressTrackerContextKey{}).(iface.ProgressTracker); ok {
		return tracker
	}
	_, tracker := GetLogger(false)
	return tracker
}

// AppEnvironment describes the running binary for telemetry
type AppEnvironment struct {
	CLIVersion string
	OS         string
	Arch       string
	UserUUID   string
}

func NewAppEnvironment(userUUID string) *AppEnvironment {
	return &AppEnvironment{
		CLIVersion: embeddedReleaseVersion,
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		UserUUID:   userUUID,
	}
}

// WithAppEnvironment attaches the environment, creating and persisting a
// user id on first use.
func WithAppEnvironment(cCtx *cli.Context) {
	user := ""
	if cfg, err := LoadGlobalConfig(); err == nil {
		user = cfg.UserUUID
		if user == "" {
			cfg.UserUUID = uuid.New().String()
			if err := SaveGlobalConfig(cfg); err == nil {
				user = cfg.UserUUID
			}
		}
	}
	if user == "" {
		user = uuid.New().String()
	}
	cCtx.Context = context.WithValue(cCtx.Context, appEnvironmentContextKey{}, NewAppEnvironment(user))
}

func AppEnvironmentFromContext(ctx context.Context) (*AppEnvironment, bool) {
	env, ok := ctx.Value(appEnvironmentContextKey{}).(*AppEnvironment)
	return env, ok
}

// Version returns the embedded release version
func Version() string {
	return embeddedReleaseVersion
}
