package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/database/postgres"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

const (
	representativesTable = "representatives"
)

type RepresentativeRepository interface {
	ListActive() ([]domain.Representative, error)
	GetByID(repID string) (*domain.Representative, error)
}

type representativeRepository struct {
	conn *postgres.Connection
}

func NewRepresentativeRepository(conn *postgres.Connection) RepresentativeRepository {
	return &representativeRepository{
		conn: conn,
	}
}

func (r *representativeRepository) ListActive() ([]domain.Representative, error) {
	query, args, err := squirrel.
		Select("id", "full_name", "monthly_sales_target", "monthly_visit_target", "area", "line", "manager_id", "active", "created_at", "updated_at").
		From(representativesTable).
		Where(squirrel.Eq{"active": true}).
		OrderBy("full_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reps := make([]domain.Representative, 0)
	for rows.Next() {
		rep, err := scanRepresentative(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear representante: %w", err)
		}
		reps = append(reps, *rep)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return reps, nil
}

func (r *representativeRepository) GetByID(repID string) (*domain.Representative, error) {
	query, args, err := squirrel.
		Select("id", "full_name", "monthly_sales_target", "monthly_visit_target", "area", "line", "manager_id", "active", "created_at", "updated_at").
		From(representativesTable).
		Where(squirrel.Eq{"id": repID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rep, err := scanRepresentative(r.conn.QueryRow(query, args...).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear representante: %w", err)
	}

	return rep, nil
}

func scanRepresentative(scan func(dest ...any) error) (*domain.Representative, error) {
	rep := &domain.Representative{}
	var salesTarget sql.NullFloat64
	var visitTarget sql.NullInt64
	var area, line, managerID sql.NullString

	err := scan(
		&rep.ID,
		&rep.FullName,
		&salesTarget,
		&visitTarget,
		&area,
		&line,
		&managerID,
		&rep.Active,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if salesTarget.Valid {
		rep.MonthlySalesTarget = &salesTarget.Float64
	}
	if visitTarget.Valid {
		target := int(visitTarget.Int64)
		rep.MonthlyVisitTarget = &target
	}
	rep.Area = area.String
	rep.Line = line.String
	rep.ManagerID = managerID.String

	return rep, nil
}
