package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

func float64Ptr(v float64) *float64 { return &v }

func TestAggregate(t *testing.T) {
	march := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	april := time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC)

	marchRange := &domain.DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 23, 59, 59, 999000000, time.UTC),
	}

	t.Run("consolida vendas, recebimentos e visitas do período", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "o1", OrderDate: march, TotalAmount: float64Ptr(1500.50)},
			{ID: "o2", OrderDate: march, Total: float64Ptr(500)},
			{ID: "o3", OrderDate: april, TotalAmount: float64Ptr(9999)}, // fora do período
		}
		collections := []domain.Collection{
			{ID: "c1", CollectionDate: march, Amount: 1000},
			{ID: "c2", CollectionDate: april, Amount: 9999}, // fora do período
		}
		visits := []domain.Visit{
			{ID: "v1", VisitDate: march},
			{ID: "v2", VisitDate: march},
			{ID: "v3", VisitDate: april}, // fora do período
		}

		row := Aggregate(orders, collections, visits, marchRange)

		assert.Equal(t, 2, row.InvoiceCount)
		assert.Equal(t, 2, row.Visits)
		assert.Equal(t, 2000.50, row.Sales)
		assert.Equal(t, 1000.0, row.Collected)
		assert.Equal(t, 1000.50, row.CurrentDebt)
	})

	t.Run("rng nil agrega o histórico completo", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "o1", OrderDate: march, TotalAmount: float64Ptr(100)},
			{ID: "o2", OrderDate: april, TotalAmount: float64Ptr(200)},
		}

		row := Aggregate(orders, nil, nil, nil)

		assert.Equal(t, 2, row.InvoiceCount)
		assert.Equal(t, 300.0, row.Sales)
	})

	t.Run("pedido sem totais conta como fatura de valor zero", func(t *testing.T) {
		orders := []domain.Order{{ID: "o1", OrderDate: march}}

		row := Aggregate(orders, nil, nil, marchRange)

		assert.Equal(t, 1, row.InvoiceCount)
		assert.Equal(t, 0.0, row.Sales)
	})

	t.Run("total_amount tem precedência sobre total", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "o1", OrderDate: march, TotalAmount: float64Ptr(100), Total: float64Ptr(999)},
		}

		row := Aggregate(orders, nil, nil, marchRange)

		assert.Equal(t, 100.0, row.Sales)
	})

	t.Run("dívida nunca é negativa quando o recebido supera as vendas", func(t *testing.T) {
		orders := []domain.Order{{ID: "o1", OrderDate: march, TotalAmount: float64Ptr(100)}}
		collections := []domain.Collection{{ID: "c1", CollectionDate: march, Amount: 500}}

		row := Aggregate(orders, collections, nil, marchRange)

		assert.Equal(t, 0.0, row.CurrentDebt)
		assert.Equal(t, 500.0, row.Collected)
	})

	t.Run("coorte vazio produz linha zerada", func(t *testing.T) {
		row := Aggregate(nil, nil, nil, marchRange)

		assert.Equal(t, domain.AggregatedRow{}, row)
	})

	t.Run("é idempotente sobre as mesmas entradas", func(t *testing.T) {
		orders := []domain.Order{{ID: "o1", OrderDate: march, TotalAmount: float64Ptr(123.45)}}
		collections := []domain.Collection{{ID: "c1", CollectionDate: march, Amount: 23.45}}

		first := Aggregate(orders, collections, nil, marchRange)
		second := Aggregate(orders, collections, nil, marchRange)

		assert.Equal(t, first, second)
	})

	t.Run("é aditiva: agregar coortes disjuntos soma vendas e contagens", func(t *testing.T) {
		ordersA := []domain.Order{{ID: "o1", OrderDate: march, TotalAmount: float64Ptr(100)}}
		ordersB := []domain.Order{{ID: "o2", OrderDate: march, TotalAmount: float64Ptr(250)}}

		combined := Aggregate(append(ordersA, ordersB...), nil, nil, marchRange)
		partA := Aggregate(ordersA, nil, nil, marchRange)
		partB := Aggregate(ordersB, nil, nil, marchRange)

		assert.Equal(t, partA.Sales+partB.Sales, combined.Sales)
		assert.Equal(t, partA.InvoiceCount+partB.InvoiceCount, combined.InvoiceCount)
	})

	t.Run("limites do período são inclusivos", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "start", OrderDate: marchRange.Start, TotalAmount: float64Ptr(10)},
			{ID: "end", OrderDate: marchRange.End, TotalAmount: float64Ptr(20)},
		}

		row := Aggregate(orders, nil, nil, marchRange)

		assert.Equal(t, 2, row.InvoiceCount)
		assert.Equal(t, 30.0, row.Sales)
	})
}

func TestIndexByOwner(t *testing.T) {
	t.Run("agrupa pelo dono preservando a ordem de inserção", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "o1", RepID: "rep-1"},
			{ID: "o2", RepID: "rep-2"},
			{ID: "o3", RepID: "rep-1"},
		}

		index := OrdersByRep(orders)

		assert.Len(t, index, 2)
		assert.Equal(t, []string{"o1", "o3"}, []string{index["rep-1"][0].ID, index["rep-1"][1].ID})
		assert.Len(t, index["rep-2"], 1)
	})

	t.Run("descarta registros sem dono", func(t *testing.T) {
		visits := []domain.Visit{
			{ID: "v1", RepID: "rep-1"},
			{ID: "v2", RepID: ""},
		}

		index := VisitsByRep(visits)

		assert.Len(t, index, 1)
		_, exists := index[""]
		assert.False(t, exists)
	})
}
