package main

import (
	"club-api/core/logger"
	"club-api/core/server"
	"os"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		os.Exit(1)
	}
}
