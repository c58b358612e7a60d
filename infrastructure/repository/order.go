package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/database/postgres"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

const (
	ordersTable = "orders o"
)

type OrderRepository interface {
	List(rng *domain.DateRange) ([]domain.Order, error)
	ListByClinic(clinicID string, rng *domain.DateRange) ([]domain.Order, error)
	ListByRep(repID string, rng *domain.DateRange) ([]domain.Order, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) List(rng *domain.DateRange) ([]domain.Order, error) {
	return r.list(nil, rng)
}

func (r *orderRepository) ListByClinic(clinicID string, rng *domain.DateRange) ([]domain.Order, error) {
	return r.list(squirrel.Eq{"o.clinic_id": clinicID}, rng)
}

func (r *orderRepository) ListByRep(repID string, rng *domain.DateRange) ([]domain.Order, error) {
	return r.list(squirrel.Eq{"o.rep_id": repID}, rng)
}

func (r *orderRepository) list(where squirrel.Sqlizer, rng *domain.DateRange) ([]domain.Order, error) {
	builder := squirrel.
		Select("o.id, o.rep_id, o.clinic_id, o.order_date, o.items, o.total_amount, o.total").
		From(ordersTable).
		OrderBy("o.order_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		builder = builder.Where(where)
	}

	// O filtro de período no SQL é uma otimização; o motor de agregação
	// reaplica o mesmo intervalo em memória.
	if rng != nil {
		builder = builder.
			Where(squirrel.GtOrEq{"o.order_date": rng.Start}).
			Where(squirrel.LtOrEq{"o.order_date": rng.End})
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

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, *order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return orders, nil
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	order := &domain.Order{}
	var itemsJSON []byte
	var orderDate time.Time
	var totalAmount, total sql.NullFloat64

	err := rows.Scan(
		&order.ID,
		&order.RepID,
		&order.ClinicID,
		&orderDate,
		&itemsJSON,
		&totalAmount,
		&total,
	)
	if err != nil {
		return nil, err
	}

	order.OrderDate = orderDate.UTC()

	if totalAmount.Valid {
		order.TotalAmount = &totalAmount.Float64
	}
	if total.Valid {
		order.Total = &total.Float64
	}

	if itemsJSON != nil {
		items := make([]domain.LineItem, 0)
		if err := json.Unmarshal(itemsJSON, &items); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de items: %w", err)
		}
		order.Items = items
	}

	return order, nil
}
