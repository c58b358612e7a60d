package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/database/postgres"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

const (
	collectionsTable = "collections c"
)

type CollectionRepository interface {
	List(rng *domain.DateRange) ([]domain.Collection, error)
	ListByClinic(clinicID string, rng *domain.DateRange) ([]domain.Collection, error)
	ListByRep(repID string, rng *domain.DateRange) ([]domain.Collection, error)
}

type collectionRepository struct {
	conn *postgres.Connection
}

func NewCollectionRepository(conn *postgres.Connection) CollectionRepository {
	return &collectionRepository{
		conn: conn,
	}
}

func (r *collectionRepository) List(rng *domain.DateRange) ([]domain.Collection, error) {
	return r.list(nil, rng)
}

func (r *collectionRepository) ListByClinic(clinicID string, rng *domain.DateRange) ([]domain.Collection, error) {
	return r.list(squirrel.Eq{"c.clinic_id": clinicID}, rng)
}

func (r *collectionRepository) ListByRep(repID string, rng *domain.DateRange) ([]domain.Collection, error) {
	return r.list(squirrel.Eq{"c.rep_id": repID}, rng)
}

func (r *collectionRepository) list(where squirrel.Sqlizer, rng *domain.DateRange) ([]domain.Collection, error) {
	builder := squirrel.
		Select("c.id, c.rep_id, c.clinic_id, c.collection_date, c.amount").
		From(collectionsTable).
		OrderBy("c.collection_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		builder = builder.Where(where)
	}

	if rng != nil {
		builder = builder.
			Where(squirrel.GtOrEq{"c.collection_date": rng.Start}).
			Where(squirrel.LtOrEq{"c.collection_date": rng.End})
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

	collections := make([]domain.Collection, 0)
	for rows.Next() {
		var collection domain.Collection
		var collectionDate time.Time

		if err := rows.Scan(
			&collection.ID,
			&collection.RepID,
			&collection.ClinicID,
			&collectionDate,
			&collection.Amount,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear recebimento: %w", err)
		}

		collection.CollectionDate = collectionDate.UTC()
		collections = append(collections, collection)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return collections, nil
}
