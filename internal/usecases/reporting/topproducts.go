package reporting

import (
	"sort"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
	"github.com/mafiaidolaa/medicalrep-sub003/pkg/utils"
)

// DefaultTopProducts é o tamanho padrão dos rankings de produtos.
const DefaultTopProducts = 5

// Acumulador por produto, na ordem em que cada chave foi vista pela
// primeira vez. A ordem de inserção é o critério de desempate do ranking.
type productAccumulator struct {
	key      string
	name     string
	revenue  float64
	quantity float64
}

// TopProducts percorre todos os itens de todos os pedidos do coorte em uma
// única passada e monta dois rankings independentes, por receita e por
// quantidade, decrescentes e truncados em n. A receita usa preço e
// quantidade do próprio item, não o total do pedido.
func TopProducts(orders []domain.Order, n int) domain.ProductLeaderboards {
	if n <= 0 {
		n = DefaultTopProducts
	}

	byKey := make(map[string]*productAccumulator)
	ordered := make([]*productAccumulator, 0)

	for _, order := range orders {
		for _, item := range order.Items {
			key := item.ProductKey()

			acc, exists := byKey[key]
			if !exists {
				// O nome exibido vem do primeiro item visto com esta chave
				acc = &productAccumulator{key: key, name: item.DisplayName()}
				byKey[key] = acc
				ordered = append(ordered, acc)
			}

			acc.revenue += item.Revenue()
			acc.quantity += float64(item.Quantity)
		}
	}

	return domain.ProductLeaderboards{
		ByRevenue:  rankProducts(ordered, n, func(a *productAccumulator) float64 { return utils.RoundWithTwoDecimalPlace(a.revenue) }),
		ByQuantity: rankProducts(ordered, n, func(a *productAccumulator) float64 { return a.quantity }),
	}
}

// rankProducts ordena os acumuladores decrescentemente pelo valor escolhido
// e trunca em n. Ordenação estável sobre a ordem de primeira aparição:
// empates mantêm quem apareceu primeiro.
func rankProducts(ordered []*productAccumulator, n int, value func(*productAccumulator) float64) []domain.LeaderboardRow {
	rows := make([]domain.LeaderboardRow, 0, len(ordered))
	for _, acc := range ordered {
		rows = append(rows, domain.LeaderboardRow{
			ProductKey:  acc.key,
			ProductName: acc.name,
			Value:       value(acc),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})

	if len(rows) > n {
		rows = rows[:n]
	}

	return rows
}
