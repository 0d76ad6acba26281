package main

import (
	"syndic-api/core/logger"
	"syndic-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
