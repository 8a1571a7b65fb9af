// Command invoicectl edits a local invoice workspace and renders it to PDF
// without a database or server.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"invoicegen/internal/config"
	"invoicegen/internal/logger"
)

var version = "dev"

func main() {
	if err := logger.Setup(config.LogConfig{Level: "warn", Format: "console"}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logger: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		log.Debug().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
