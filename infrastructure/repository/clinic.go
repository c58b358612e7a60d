package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/database/postgres"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

const (
	clinicsTable = "clinics"
)

type ClinicRepository interface {
	GetByID(clinicID string) (*domain.Clinic, error)
	List() ([]domain.Clinic, error)
}

type clinicRepository struct {
	conn *postgres.Connection
}

func NewClinicRepository(conn *postgres.Connection) ClinicRepository {
	return &clinicRepository{
		conn: conn,
	}
}

func (r *clinicRepository) GetByID(clinicID string) (*domain.Clinic, error) {
	query, args, err := squirrel.
		Select("id", "name", "credit_limit", "payment_terms_days", "area", "line", "created_at", "updated_at").
		From(clinicsTable).
		Where(squirrel.Eq{"id": clinicID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	clinic, err := scanClinic(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear clínica: %w", err)
	}

	return clinic, nil
}

func (r *clinicRepository) List() ([]domain.Clinic, error) {
	query, args, err := squirrel.
		Select("id", "name", "credit_limit", "payment_terms_days", "area", "line", "created_at", "updated_at").
		From(clinicsTable).
		OrderBy("name ASC").
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

	clinics := make([]domain.Clinic, 0)
	for rows.Next() {
		clinic, err := scanClinic(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear clínica: %w", err)
		}
		clinics = append(clinics, *clinic)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clinics, nil
}

func scanClinic(scan func(dest ...any) error) (*domain.Clinic, error) {
	clinic := &domain.Clinic{}
	var creditLimit sql.NullFloat64
	var paymentTerms sql.NullInt64
	var area, line sql.NullString

	err := scan(
		&clinic.ID,
		&clinic.Name,
		&creditLimit,
		&paymentTerms,
		&area,
		&line,
		&clinic.CreatedAt,
		&clinic.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if creditLimit.Valid {
		clinic.CreditLimit = &creditLimit.Float64
	}
	if paymentTerms.Valid {
		days := int(paymentTerms.Int64)
		clinic.PaymentTermsDays = &days
	}
	clinic.Area = area.String
	clinic.Line = line.String

	return clinic, nil
}
