package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/database/postgres"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

const (
	reportSnapshotsTable = "report_snapshots rs"
)

type ReportSnapshotRepository interface {
	SaveOrUpdate(snapshot *domain.ReportSnapshot) error
	GetByDate(date time.Time) ([]*domain.ReportSnapshot, error)
	DeleteOlderThan(days int) (int64, error)
}

type reportSnapshotRepository struct {
	conn *postgres.Connection
}

func NewReportSnapshotRepository(conn *postgres.Connection) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

func (r *reportSnapshotRepository) SaveOrUpdate(snapshot *domain.ReportSnapshot) error {
	rowJSON, err := json.Marshal(snapshot.Row)
	if err != nil {
		return fmt.Errorf("erro ao serializar AggregatedRow para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("report_snapshots").
		Columns("rep_id", "date", "row").
		Values(
			snapshot.RepID,
			snapshot.Date.Format(time.DateOnly),
			rowJSON,
		).
		Suffix(`
			ON CONFLICT (rep_id, date) DO UPDATE SET
				row = EXCLUDED.row,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *reportSnapshotRepository) GetByDate(date time.Time) ([]*domain.ReportSnapshot, error) {
	query, args, err := squirrel.
		Select("rs.id, rs.rep_id, rs.date, rs.row, rs.created_at, rs.updated_at").
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"rs.date": date.Format(time.DateOnly)}).
		OrderBy("rs.rep_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.ReportSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *reportSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("report_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *reportSnapshotRepository) scanSnapshot(rows *sql.Rows) (*domain.ReportSnapshot, error) {
	snapshot := &domain.ReportSnapshot{}
	var rowJSON []byte

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.RepID,
		&snapshot.Date,
		&rowJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rowJSON != nil {
		if err := json.Unmarshal(rowJSON, &snapshot.Row); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de row: %w", err)
		}
	}

	return snapshot, nil
}
