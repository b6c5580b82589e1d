package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"github.com/unitycompany/fidelidade-fast/internal/config"
	"github.com/unitycompany/fidelidade-fast/internal/logger"
	"github.com/unitycompany/fidelidade-fast/internal/migration"
	"github.com/unitycompany/fidelidade-fast/internal/observability"
	"github.com/unitycompany/fidelidade-fast/internal/server"
	"github.com/unitycompany/fidelidade-fast/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
