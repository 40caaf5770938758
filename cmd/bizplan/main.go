package main

import (
	"bizplan/cmd/handlers"
	"bizplan/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
