package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/usecases/crediting"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/usecases/reporting"
	"github.com/mafiaidolaa/medicalrep-sub003/pkg/apiErrors"
	"github.com/mafiaidolaa/medicalrep-sub003/pkg/log"
)

type CreditCheckRequest struct {
	PendingOrderAmount float64 `json:"pending_order_amount"`
}

// ListClinics retorna o diretório de clínicas cadastradas
func ListClinics(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clinics, err := service.Clinics()
		if err != nil {
			logger.WithError(err).Error("clinics: failed to list clinics")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar clínicas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clinics); err != nil {
			logger.WithError(err).Error("clinics: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetClinicReport retorna o resumo financeiro da clínica com classificação de
// crédito e ranking de produtos do período
func GetClinicReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("clinic_id", id).Info("clinics: building clinic report")

		topN := reporting.DefaultTopProducts
		if nStr := r.URL.Query().Get("top_n"); nStr != "" {
			parsed, err := strconv.Atoi(nStr)
			if err != nil {
				logger.WithFields(log.Fields{
					"clinic_id": id,
					"top_n":     nStr,
					"error":     err.Error(),
				}).Warn("clinics: invalid top_n parameter")

				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro top_n inválido", nil)
				return
			}
			topN = parsed
		}

		token, custom := parsePeriodFilters(r)

		report, err := service.ClinicReport(id, token, custom, topN)
		if err != nil {
			logger.WithFields(log.Fields{
				"clinic_id": id,
				"error":     err.Error(),
			}).Warn("clinics: failed to build clinic report")

			if strings.Contains(err.Error(), "não encontrada") {
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, err.Error(), nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("clinics: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// CheckClinicCredit avalia a exposição de crédito da clínica projetando um
// pedido ainda não submetido
func CheckClinicCredit(service crediting.CreditService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req CreditCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithFields(log.Fields{
				"clinic_id": id,
				"error":     err.Error(),
			}).Warn("clinics: invalid credit check body")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.PendingOrderAmount < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Valor do pedido pendente não pode ser negativo", nil)
			return
		}

		logger.WithFields(log.Fields{
			"clinic_id":      id,
			"pending_amount": req.PendingOrderAmount,
		}).Info("clinics: checking clinic credit")

		check, err := service.CheckClinic(id, req.PendingOrderAmount)
		if err != nil {
			logger.WithFields(log.Fields{
				"clinic_id": id,
				"error":     err.Error(),
			}).Warn("clinics: failed to check clinic credit")

			if strings.Contains(err.Error(), "não encontrada") {
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, err.Error(), nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(check); err != nil {
			logger.WithError(err).Error("clinics: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
