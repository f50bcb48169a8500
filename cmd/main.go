package main

import (
	"os"

	"github.com/senceapptr/SenceApp-sub004/internal/cli"
	"github.com/senceapptr/SenceApp-sub004/internal/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Default().WithError(err).Error("trivia-service failed")
		os.Exit(1)
	}
}
