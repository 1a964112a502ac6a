package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/clbarnes/yarqueue/internal/cmd"
	logpkg "github.com/clbarnes/yarqueue/pkg/log"
)

func main() {
	// YARQ_LOG_LEVEL / YARQ_LOG_FORMAT drive CLI logging.
	logger := logpkg.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCommand(logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("yarq failed", logpkg.Err(err))
		os.Exit(1)
	}
}
