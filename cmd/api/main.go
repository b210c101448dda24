package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/ledgerline/crm-intelligence-api/infrastructure/database/postgres"
	"github.com/ledgerline/crm-intelligence-api/infrastructure/integrator/backend"
	"github.com/ledgerline/crm-intelligence-api/infrastructure/integrator/backend/backendclient"
	"github.com/ledgerline/crm-intelligence-api/infrastructure/messaging/natsfeed"
	"github.com/ledgerline/crm-intelligence-api/infrastructure/repository"
	"github.com/ledgerline/crm-intelligence-api/internal/api"
	"github.com/ledgerline/crm-intelligence-api/internal/api/handler"
	"github.com/ledgerline/crm-intelligence-api/internal/config"
	"github.com/ledgerline/crm-intelligence-api/internal/scheduler"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/authenticating"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
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

	source := aggregateSource(cfg, pgConn)

	notifiers := []scheduler.Notifier{scheduler.NewLogNotifier()}

	var feed intelligence.ChangeFeed
	switch cfg.ChangeFeed.Driver {
	case config.ChangeFeedPostgres:
		listenerFeed, err := postgres.Listen(cfg.Database.DSN)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao iniciar o LISTEN do change feed")
		}
		defer listenerFeed.Close()

		go listenerFeed.Run(ctx)
		feed = listenerFeed

	case config.ChangeFeedNATS:
		natsConn := natsconn(cfg.ChangeFeed.NATSURL)
		defer natsConn.Drain()

		feed = natsfeed.NewFeed(natsConn)
		notifiers = append(notifiers, natsfeed.NewMeetingPublisher(natsConn))

	default:
		logrus.Warn("Change feed desabilitado, os agregados só serão atualizados sob demanda")
	}

	registry := intelligence.NewRegistry(ctx, source, feed)

	meetingReminderService := scheduler.NewMeetingReminderService(
		repository.NewMeetingRepository(pgConn),
		cfg,
		notifiers...,
	)

	pulseRefreshService := scheduler.NewPulseRefreshService(registry, cfg)

	// Inicia os agendadores em background
	if err := meetingReminderService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de lembretes de reunião")
	} else {
		logrus.Info("Agendador de lembretes de reunião iniciado com sucesso")
	}

	if err := pulseRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização dos agregados")
	} else {
		logrus.Info("Agendador de atualização dos agregados iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		registry,
		authenticating.NewService(cfg),
		handler.CronJobServices{
			MeetingReminders: meetingReminderService,
			PulseRefresh:     pulseRefreshService,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	server.OnShutdown(registry.Close)
	server.OnShutdown(cancel)

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

// aggregateSource escolhe de onde vêm os agregados conforme AGGREGATE_SOURCE
func aggregateSource(cfg *config.Config, pgConn *postgres.Connection) intelligence.AggregateSource {
	if cfg.AggregateSource == config.AggregateSourcePostgres {
		logrus.Info("Agregados lidos diretamente do PostgreSQL")
		return backend.New(repository.NewAggregateRepository(pgConn))
	}

	logrus.WithField("url", cfg.Backend.URL).Info("Agregados lidos via RPC do backend hospedado")
	return backend.New(backendclient.NewClient(cfg.Backend))
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

// natsconn cria a conexão com o NATS usada pelo change feed e pelos lembretes
func natsconn(url string) *nats.Conn {
	conn, err := natsfeed.Connect(url)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao NATS")
	}

	return conn
}
