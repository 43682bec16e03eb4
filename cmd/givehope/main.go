package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/givehope/internal/migration"
	"github.com/smallbiznis/givehope/internal/observability"
	"github.com/smallbiznis/givehope/internal/scheduler"
	"github.com/smallbiznis/givehope/internal/server"
	"github.com/smallbiznis/givehope/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		server.Module,

		// Functional Domains
		migration.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
