package main

import (
	"github.com/legalmind/backend/internal/server"
	"github.com/legalmind/backend/internal/util"
	"github.com/legalmind/backend/pkg/logger"
	"github.com/legalmind/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
