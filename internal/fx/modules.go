package fx

import (
	"go.uber.org/fx"

	"github.com/kenniky/ultrank-scoring/internal/config"
	"github.com/kenniky/ultrank-scoring/internal/database"
	"github.com/kenniky/ultrank-scoring/internal/geocode"
	"github.com/kenniky/ultrank-scoring/internal/logger"
	"github.com/kenniky/ultrank-scoring/internal/refdata"
	"github.com/kenniky/ultrank-scoring/internal/repository"
	"github.com/kenniky/ultrank-scoring/internal/server"
	"github.com/kenniky/ultrank-scoring/internal/service"
	"github.com/kenniky/ultrank-scoring/internal/startgg"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// reference data
	fx.Provide(refdata.Load),
	// repos
	fx.Provide(repository.NewResultRepository),
	// api clients
	fx.Provide(startgg.NewClient),
	fx.Provide(geocode.NewClient),
	// svc
	fx.Provide(service.NewTieringService),
	fx.Provide(func(s *service.TieringService) server.Tiering { return s }),
	// server
	fx.Provide(server.NewServer),
)
