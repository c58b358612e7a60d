// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/repository"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/config"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/usecases/reporting"
)

type SnapshotSyncConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	RetentionDays int
}

// SnapshotSyncService materializa, uma vez por dia, a linha agregada de cada
// representante ativo referente ao dia anterior.
type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	repRepo             repository.RepresentativeRepository
	orderRepo           repository.OrderRepository
	collectionRepo      repository.CollectionRepository
	visitRepo           repository.VisitRepository
	snapshotRepo        repository.ReportSnapshotRepository
	config              SnapshotSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewSnapshotSyncService(
	repRepo repository.RepresentativeRepository,
	orderRepo repository.OrderRepository,
	collectionRepo repository.CollectionRepository,
	visitRepo repository.VisitRepository,
	snapshotRepo repository.ReportSnapshotRepository,
	cfg *config.Config,
) *SnapshotSyncService {
	syncConfig := SnapshotSyncConfig{
		CronSchedule:  cfg.SnapshotSync.CronSchedule,  // Default: 3h da manhã todos os dias
		SyncEnabled:   cfg.SnapshotSync.SyncEnabled,   // Default: desabilitado
		RetentionDays: cfg.SnapshotSync.RetentionDays, // Default: 90 dias
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"retention_days": syncConfig.RetentionDays,
	}).Info("Configuração do agendador de snapshots do roster carregada")

	return &SnapshotSyncService{
		scheduler:      scheduler,
		repRepo:        repRepo,
		orderRepo:      orderRepo,
		collectionRepo: collectionRepo,
		visitRepo:      visitRepo,
		snapshotRepo:   snapshotRepo,
		config:         syncConfig,
	}
}

func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de snapshots do roster desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de snapshots do roster")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunSnapshotSync(); err != nil {
			logrus.WithError(err).Error("Erro na sincronização de snapshots do roster")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de snapshots do roster")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SnapshotSyncService) RunSnapshotSync() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Sincronização de snapshots já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	return s.processSnapshotsWithDate(time.Now())
}

// processSnapshotsWithDate consolida o dia anterior a processingDate: uma
// linha agregada por representante ativo, persistida de forma idempotente.
func (s *SnapshotSyncService) processSnapshotsWithDate(processingDate time.Time) error {
	runID, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("erro ao gerar identificador da execução: %w", err)
	}

	yesterday := processingDate.UTC().AddDate(0, 0, -1)
	rng := &domain.DateRange{
		Start: time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC),
		End:   time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 23, 59, 59, 999000000, time.UTC),
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id": runID,
		"date":   rng.Start.Format(time.DateOnly),
	})

	logger.Info("Iniciando consolidação de snapshots do roster")

	reps, err := s.repRepo.ListActive()
	if err != nil {
		return fmt.Errorf("erro ao buscar representantes: %w", err)
	}

	if len(reps) == 0 {
		logger.Info("Nenhum representante ativo para consolidar")
		return nil
	}

	orders, err := s.orderRepo.List(rng)
	if err != nil {
		return fmt.Errorf("erro ao buscar pedidos: %w", err)
	}

	collections, err := s.collectionRepo.List(rng)
	if err != nil {
		return fmt.Errorf("erro ao buscar recebimentos: %w", err)
	}

	visits, err := s.visitRepo.List(rng)
	if err != nil {
		return fmt.Errorf("erro ao buscar visitas: %w", err)
	}

	ordersByRep := reporting.OrdersByRep(orders)
	collectionsByRep := reporting.CollectionsByRep(collections)
	visitsByRep := reporting.VisitsByRep(visits)

	saved := 0
	for _, rep := range reps {
		row := reporting.Aggregate(ordersByRep[rep.ID], collectionsByRep[rep.ID], visitsByRep[rep.ID], rng)
		row.EntityID = rep.ID
		row.EntityName = rep.FullName

		snapshot := &domain.ReportSnapshot{
			RepID: rep.ID,
			Date:  rng.Start,
			Row:   row,
		}

		if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
			logger.WithError(err).WithField("rep_id", rep.ID).Error("Erro ao salvar snapshot do representante")
			continue
		}
		saved++
	}

	if s.config.RetentionDays > 0 {
		deleted, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
		if err != nil {
			logger.WithError(err).Error("Erro ao remover snapshots antigos")
		} else if deleted > 0 {
			logger.WithField("deleted", deleted).Info("Snapshots antigos removidos")
		}
	}

	logger.WithFields(logrus.Fields{
		"representatives": len(reps),
		"saved":           saved,
	}).Info("Consolidação de snapshots do roster concluída")

	return nil
}

// SnapshotsForDate retorna as linhas consolidadas de um dia específico.
func (s *SnapshotSyncService) SnapshotsForDate(date time.Time) ([]*domain.ReportSnapshot, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return s.snapshotRepo.GetByDate(day)
}

// TriggerManualSync inicia manualmente uma consolidação de snapshots
func (s *SnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de snapshots do roster")
	go func() {
		if err := s.RunSnapshotSync(); err != nil {
			logrus.WithError(err).Error("Erro na sincronização manual de snapshots")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"retention_days":         s.config.RetentionDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
