package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

func TestTopProducts(t *testing.T) {
	t.Run("acumula receita e quantidade por produto em todos os pedidos", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "o1", Items: []domain.LineItem{
				{ProductID: "p1", ProductName: "Panadol", UnitPrice: 10, Quantity: 3},
				{ProductID: "p2", ProductName: "Augmentin", UnitPrice: 50, Quantity: 1},
			}},
			{ID: "o2", Items: []domain.LineItem{
				{ProductID: "p1", ProductName: "Panadol", UnitPrice: 10, Quantity: 2},
			}},
		}

		boards := TopProducts(orders, 5)

		require.Len(t, boards.ByRevenue, 2)
		assert.Equal(t, "p1", boards.ByRevenue[0].ProductKey)
		assert.Equal(t, 50.0, boards.ByRevenue[0].Value)
		assert.Equal(t, "p2", boards.ByRevenue[1].ProductKey)
		assert.Equal(t, 50.0, boards.ByRevenue[1].Value)

		require.Len(t, boards.ByQuantity, 2)
		assert.Equal(t, "p1", boards.ByQuantity[0].ProductKey)
		assert.Equal(t, 5.0, boards.ByQuantity[0].Value)
	})

	t.Run("desconto do item não entra na receita do ranking", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "o1", Items: []domain.LineItem{
				{ProductID: "p1", UnitPrice: 100, Quantity: 2, Discount: 50},
			}},
		}

		boards := TopProducts(orders, 5)

		require.Len(t, boards.ByRevenue, 1)
		assert.Equal(t, 200.0, boards.ByRevenue[0].Value)
	})

	t.Run("empates mantêm a ordem de primeira aparição", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "o1", Items: []domain.LineItem{
				{ProductID: "A", UnitPrice: 100, Quantity: 1},
				{ProductID: "B", UnitPrice: 100, Quantity: 1},
			}},
		}

		boards := TopProducts(orders, 5)

		require.Len(t, boards.ByRevenue, 2)
		assert.Equal(t, "A", boards.ByRevenue[0].ProductKey)
		assert.Equal(t, "B", boards.ByRevenue[1].ProductKey)
	})

	t.Run("trunca cada ranking em n", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "o1", Items: []domain.LineItem{
				{ProductID: "p1", UnitPrice: 5, Quantity: 1},
				{ProductID: "p2", UnitPrice: 4, Quantity: 2},
				{ProductID: "p3", UnitPrice: 3, Quantity: 3},
			}},
		}

		boards := TopProducts(orders, 2)

		assert.Len(t, boards.ByRevenue, 2)
		assert.Len(t, boards.ByQuantity, 2)
	})

	t.Run("n inválido cai no tamanho padrão", func(t *testing.T) {
		items := make([]domain.LineItem, 0, 7)
		for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
			items = append(items, domain.LineItem{ProductID: id, UnitPrice: 1, Quantity: 1})
		}
		orders := []domain.Order{{ID: "o1", Items: items}}

		boards := TopProducts(orders, 0)

		assert.Len(t, boards.ByRevenue, DefaultTopProducts)
	})

	t.Run("item sem id agrupa pelo nome e sem nada agrupa em unknown", func(t *testing.T) {
		orders := []domain.Order{
			{ID: "o1", Items: []domain.LineItem{
				{ProductName: "Panadol", UnitPrice: 10, Quantity: 1},
				{UnitPrice: 5, Quantity: 1},
				{UnitPrice: 5, Quantity: 1},
			}},
		}

		boards := TopProducts(orders, 5)

		// Ambos somam 10 de receita; o empate mantém quem apareceu primeiro
		require.Len(t, boards.ByRevenue, 2)
		assert.Equal(t, "Panadol", boards.ByRevenue[0].ProductKey)
		assert.Equal(t, "unknown", boards.ByRevenue[1].ProductKey)
		assert.Equal(t, domain.NomeProdutoNaoInformado, boards.ByRevenue[1].ProductName)
		assert.Equal(t, 10.0, boards.ByRevenue[1].Value)
	})

	t.Run("sem pedidos produz rankings vazios", func(t *testing.T) {
		boards := TopProducts(nil, 5)

		assert.Empty(t, boards.ByRevenue)
		assert.Empty(t, boards.ByQuantity)
	})
}
