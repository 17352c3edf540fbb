package fx

import (
	"database/sql"

	"brawl-tracker/internal/api"
	"brawl-tracker/internal/config"
	"brawl-tracker/internal/database"
	"brawl-tracker/internal/db"
	"brawl-tracker/internal/logger"
	"brawl-tracker/internal/repository"
	"brawl-tracker/internal/server"
	"brawl-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewClubRepository),
	fx.Provide(repository.NewBattleRepository),
	// api clients
	fx.Provide(api.NewClient),
	fx.Provide(api.NewCompanionClient),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewBattleService),
	fx.Provide(service.NewClubService),
	fx.Provide(service.NewRankingService),
	fx.Provide(service.NewEventService),
	// server
	fx.Provide(server.NewTrackerServer),
)
