package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/database/postgres"
	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/repository"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/api"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/config"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/scheduler"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/usecases/authenticating"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/usecases/crediting"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/usecases/reporting"
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

	userRepo := repository.NewUserRepository(pgConn)
	orderRepo := repository.NewOrderRepository(pgConn)
	collectionRepo := repository.NewCollectionRepository(pgConn)
	visitRepo := repository.NewVisitRepository(pgConn)
	clinicRepo := repository.NewClinicRepository(pgConn)
	repRepo := repository.NewRepresentativeRepository(pgConn)
	snapshotRepo := repository.NewReportSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	reportService := reporting.NewService(orderRepo, collectionRepo, visitRepo, repRepo, clinicRepo)
	creditService := crediting.NewService(clinicRepo, orderRepo, collectionRepo)

	// Inicializa o agendador de snapshots diários do roster
	snapshotSyncService := scheduler.NewSnapshotSyncService(
		repRepo,
		orderRepo,
		collectionRepo,
		visitRepo,
		snapshotRepo,
		cfg,
	)

	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots do roster")
	} else {
		logrus.Info("Agendador de snapshots do roster iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportService,
		creditService,
		authenticator,
		snapshotSyncService,
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
