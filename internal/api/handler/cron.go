package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/scheduler"
	"github.com/mafiaidolaa/medicalrep-sub003/pkg/apiErrors"
	"github.com/mafiaidolaa/medicalrep-sub003/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSnapshot = "snapshot"
	CronJobTypeAll      = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	SnapshotSyncService *scheduler.SnapshotSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSnapshot, CronJobTypeAll:
			if services.SnapshotSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de snapshots não disponível", nil)
				return
			}
			services.SnapshotSyncService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: snapshot, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetSnapshots retorna as linhas consolidadas de um dia pelo agendador.
// Sem o parâmetro date, retorna as do dia anterior.
func GetSnapshots(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := time.Now().UTC().AddDate(0, 0, -1)
		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			parsed, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida. Formato esperado: AAAA-MM-DD", nil)
				return
			}
			date = parsed
		}

		snapshots, err := services.SnapshotSyncService.SnapshotsForDate(date)
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar snapshots do roster")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshots", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"date":      date.Format(time.DateOnly),
			"snapshots": snapshots,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"snapshot": services.SnapshotSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
