package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/export"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/usecases/reporting"
	"github.com/mafiaidolaa/medicalrep-sub003/pkg/apiErrors"
	"github.com/mafiaidolaa/medicalrep-sub003/pkg/log"
	"github.com/mafiaidolaa/medicalrep-sub003/pkg/utils"
)

// Formatos aceitos pelo endpoint de exportação
const (
	ExportFormatCSV  = "csv"
	ExportFormatHTML = "html"
)

// parsePeriodFilters lê o período simbólico e os limites custom da query string.
func parsePeriodFilters(r *http.Request) (domain.PeriodToken, *domain.CustomRange) {
	token := domain.PeriodToken(r.URL.Query().Get("period"))
	if token == "" {
		token = domain.PeriodAll
	}

	var custom *domain.CustomRange
	if token == domain.PeriodCustom {
		custom = &domain.CustomRange{
			From: r.URL.Query().Get("from"),
			To:   r.URL.Query().Get("to"),
		}
	}

	return token, custom
}

// GetRepresentativesReport retorna o relatório agregado do roster de representantes
func GetRepresentativesReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		token, custom := parsePeriodFilters(r)
		logger.WithField("period", token).Info("reports: building representatives report")

		report, err := service.RepresentativesReport(token, custom)
		if err != nil {
			logger.WithFields(log.Fields{
				"period": token,
				"error":  err.Error(),
			}).Warn("reports: failed to build representatives report")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("reports: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// ExportRepresentativesReport devolve o relatório do roster como documento
// CSV ou HTML imprimível, pronto para download.
func ExportRepresentativesReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		format := r.URL.Query().Get("format")
		if format == "" {
			format = ExportFormatCSV
		}

		if format != ExportFormatCSV && format != ExportFormatHTML {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato inválido. Valores aceitos: csv, html", nil)
			return
		}

		token, custom := parsePeriodFilters(r)
		logger.WithFields(log.Fields{
			"period": token,
			"format": format,
		}).Info("reports: exporting representatives report")

		report, err := service.RepresentativesReport(token, custom)
		if err != nil {
			logger.WithError(err).Warn("reports: failed to build report for export")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		suffix, err := utils.GenerateID()
		if err != nil {
			logger.WithError(err).Error("reports: failed to generate export file name")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar nome do arquivo", nil)
			return
		}

		headers := export.AggregatedHeaders()
		cells := export.AggregatedCells(report.Rows)

		switch format {
		case ExportFormatCSV:
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="representatives-report-%s.csv"`, suffix))
			_, err = w.Write([]byte(export.ToCSV(headers, cells)))

		case ExportFormatHTML:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, err = w.Write([]byte(export.ToPrintableHTML("تقرير المندوبين", headers, cells)))
		}

		if err != nil {
			logger.WithError(err).Error("reports: failed to write export response")
		}
	})
}

// GetRepresentativeReport retorna o detalhamento de um único representante
func GetRepresentativeReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		topN := reporting.DefaultTopProducts
		if nStr := r.URL.Query().Get("top_n"); nStr != "" {
			parsed, err := strconv.Atoi(nStr)
			if err != nil {
				logger.WithFields(log.Fields{
					"rep_id": id,
					"top_n":  nStr,
					"error":  err.Error(),
				}).Warn("reports: invalid top_n parameter")

				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro top_n inválido", nil)
				return
			}
			topN = parsed
		}

		token, custom := parsePeriodFilters(r)
		logger.WithFields(log.Fields{
			"rep_id": id,
			"period": token,
		}).Info("reports: building representative report")

		report, err := service.RepresentativeReport(id, token, custom, topN)
		if err != nil {
			logger.WithFields(log.Fields{
				"rep_id": id,
				"error":  err.Error(),
			}).Warn("reports: failed to build representative report")

			if strings.Contains(err.Error(), "não encontrado") {
				apiErrors.WriteError(w, apiErrors.ErrUserNotFound, err.Error(), nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("reports: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetGroupedReport agrega o roster por área, linha ou gerente
func GetGroupedReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		groupBy := r.URL.Query().Get("group_by")
		if groupBy == "" {
			groupBy = reporting.GroupByArea
		}

		token, custom := parsePeriodFilters(r)
		logger.WithFields(log.Fields{
			"group_by": groupBy,
			"period":   token,
		}).Info("reports: building grouped report")

		report, err := service.GroupedReport(groupBy, token, custom)
		if err != nil {
			logger.WithFields(log.Fields{
				"group_by": groupBy,
				"error":    err.Error(),
			}).Warn("reports: failed to build grouped report")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("reports: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetTopProducts retorna os rankings de produtos por receita e por quantidade
func GetTopProducts(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		n := reporting.DefaultTopProducts
		if nStr := r.URL.Query().Get("n"); nStr != "" {
			parsed, err := strconv.Atoi(nStr)
			if err != nil {
				logger.WithFields(log.Fields{
					"n":     nStr,
					"error": err.Error(),
				}).Warn("reports: invalid n parameter")

				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro n inválido", nil)
				return
			}
			n = parsed
		}

		token, custom := parsePeriodFilters(r)
		logger.WithFields(log.Fields{
			"period": token,
			"n":      n,
		}).Info("reports: building top products report")

		leaderboards, err := service.TopProductsReport(token, custom, n)
		if err != nil {
			logger.WithError(err).Warn("reports: failed to build top products report")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(leaderboards); err != nil {
			logger.WithError(err).Error("reports: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
