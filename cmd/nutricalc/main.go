// Command nutricalc runs the analytics engine against local YAML files
// without a database, and issues development tokens for the API.
package main

import (
	"os"

	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.NewDevelopment().Errorw("nutricalc failed", "error", err)
		os.Exit(1)
	}
}
