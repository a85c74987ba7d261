package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/cgpa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/cgpa-cli/internal/core/services"
	"github.com/custodia-labs/cgpa-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is normal; variables may come from the shell.
	_ = godotenv.Load()

	if v, err := strconv.ParseBool(os.Getenv("CGPA_VERBOSE")); err == nil && v {
		logger.SetVerbose(true)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open config: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config file: %s", configStore.Path())

	cli.SetVersion(version)
	cli.SetServices(
		services.NewGradeAverager(),
		services.NewSettingsService(configStore),
	)
	cli.SetTUIConfig(&cli.TUIConfig{
		Watch: func(ctx context.Context, onChange func()) error {
			return file.Watch(ctx, configStore, onChange)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
