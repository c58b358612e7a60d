package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/database/postgres"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

const (
	visitsTable = "visits v"
)

type VisitRepository interface {
	List(rng *domain.DateRange) ([]domain.Visit, error)
	ListByClinic(clinicID string, rng *domain.DateRange) ([]domain.Visit, error)
	ListByRep(repID string, rng *domain.DateRange) ([]domain.Visit, error)
}

type visitRepository struct {
	conn *postgres.Connection
}

func NewVisitRepository(conn *postgres.Connection) VisitRepository {
	return &visitRepository{
		conn: conn,
	}
}

func (r *visitRepository) List(rng *domain.DateRange) ([]domain.Visit, error) {
	return r.list(nil, rng)
}

func (r *visitRepository) ListByClinic(clinicID string, rng *domain.DateRange) ([]domain.Visit, error) {
	return r.list(squirrel.Eq{"v.clinic_id": clinicID}, rng)
}

func (r *visitRepository) ListByRep(repID string, rng *domain.DateRange) ([]domain.Visit, error) {
	return r.list(squirrel.Eq{"v.rep_id": repID}, rng)
}

func (r *visitRepository) list(where squirrel.Sqlizer, rng *domain.DateRange) ([]domain.Visit, error) {
	builder := squirrel.
		Select("v.id, v.rep_id, v.clinic_id, v.visit_date").
		From(visitsTable).
		OrderBy("v.visit_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		builder = builder.Where(where)
	}

	if rng != nil {
		builder = builder.
			Where(squirrel.GtOrEq{"v.visit_date": rng.Start}).
			Where(squirrel.LtOrEq{"v.visit_date": rng.End})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	visits := make([]domain.Visit, 0)
	for rows.Next() {
		var visit domain.Visit
		var clinicID sql.NullString
		var visitDate time.Time

		if err := rows.Scan(
			&visit.ID,
			&visit.RepID,
			&clinicID,
			&visitDate,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear visita: %w", err)
		}

		if clinicID.Valid {
			visit.ClinicID = clinicID.String
		}
		visit.VisitDate = visitDate.UTC()
		visits = append(visits, visit)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return visits, nil
}
