package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/cache"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/api"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/connecting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if err := migration.EnsureSchema(ctx, pgConn); err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar o schema do banco")
	}

	connectionRepo := repository.NewConnectionRepository(pgConn)

	authenticator := authenticating.NewService(cfg)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(metaClient)

	responseCache := cache.New(cfg.Cache.MaxEntries)

	insightService := insighting.NewService(cfg, metaIntegrator, responseCache)
	connector := connecting.NewService(connectionRepo, metaIntegrator, cfg)

	cacheJanitorService := scheduler.NewCacheJanitorService(responseCache, cfg)
	if err := cacheJanitorService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza do cache")
	} else {
		logrus.Info("Agendador de limpeza do cache iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		insightService,
		connector,
		authenticator,
		cacheJanitorService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
