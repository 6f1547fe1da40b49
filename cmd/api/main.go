package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/channel-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/channel-sync-api/infrastructure/dispatch"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/googleads/googleadsclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/linkedin"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/linkedin/linkedinclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/meta"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/reddit"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/reddit/redditclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/tiktok"
	"github.com/vfg2006/channel-sync-api/infrastructure/integrator/tiktok/tiktokclient"
	"github.com/vfg2006/channel-sync-api/infrastructure/jobstore"
	"github.com/vfg2006/channel-sync-api/infrastructure/reconciler"
	"github.com/vfg2006/channel-sync-api/infrastructure/repository"
	"github.com/vfg2006/channel-sync-api/internal/api"
	"github.com/vfg2006/channel-sync-api/internal/config"
	"github.com/vfg2006/channel-sync-api/internal/scheduler"
	"github.com/vfg2006/channel-sync-api/internal/usecases/channeling"
	"github.com/vfg2006/channel-sync-api/internal/usecases/reporting"
	"github.com/vfg2006/channel-sync-api/pkg/crypto"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisClient := redisconn(ctx, cfg.Redis)
	defer redisClient.Close()

	integrationRepo := repository.NewIntegrationRepository(pgConn)
	adAccountRepo := repository.NewAdAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	adSetRepo := repository.NewAdSetRepository(pgConn)
	adRepo := repository.NewAdRepository(pgConn)
	creativeRepo := repository.NewCreativeRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)

	cipher, err := crypto.NewCipher(cfg.Crypto.SecretKey)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a criptografia de tokens")
	}

	rec := reconciler.New(adAccountRepo, campaignRepo, adSetRepo, adRepo, creativeRepo)
	insightWriter := reconciler.NewInsightWriter(insightRepo)

	registry := integrator.NewRegistry(
		meta.New(cfg, metaclient.NewClient(cfg), rec, insightWriter),
		linkedin.New(cfg, linkedinclient.NewClient(cfg), rec, insightWriter),
		tiktok.New(cfg, tiktokclient.NewClient(cfg), rec, insightWriter),
		googleads.New(cfg, googleadsclient.NewClient(cfg), rec, insightWriter),
		reddit.New(cfg, redditclient.NewClient(cfg), rec, insightWriter),
	)

	store := jobstore.NewRedisStore(redisClient)
	tracker := jobstore.NewReportJobTracker(store)

	orchestrator := reporting.NewOrchestrator(cfg, registry, tracker, integrationRepo, adAccountRepo, cipher)

	if cfg.Dispatch.Inline {
		orchestrator.SetDispatcher(dispatch.NewInlineDispatcher(orchestrator.ProcessReportMessage))
	} else {
		orchestrator.SetDispatcher(dispatch.NewQueueDispatcher(redisClient, cfg.Dispatch.QueueKey))
	}

	channelService := channeling.NewService(
		cfg,
		integrationRepo,
		adAccountRepo,
		adRepo,
		registry,
		cipher,
		store,
		orchestrator,
	)

	channelSyncService := scheduler.NewChannelSyncService(cfg, integrationRepo, channelService)
	reportPollerService := scheduler.NewReportPollerService(cfg, orchestrator)

	if err := channelSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de canais")
	} else {
		logrus.Info("Agendador de sincronização de canais iniciado com sucesso")
	}

	if err := reportPollerService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o poller de relatórios assíncronos")
	} else {
		logrus.Info("Poller de relatórios assíncronos iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		channelService,
		channelSyncService,
		reportPollerService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisconn cria o cliente Redis usado pelo conjunto de jobs e pela fila
func redisconn(ctx context.Context, redisConfig config.Redis) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com Redis")
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return client
}
