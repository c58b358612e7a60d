package reporting

import (
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
	"github.com/mafiaidolaa/medicalrep-sub003/pkg/utils"
)

// Aggregate consolida o coorte de uma entidade (pedidos, recebimentos e
// visitas) dentro do período em uma única linha de resumo. rng nil significa
// histórico completo.
//
// Camada de cálculo sem erro por contrato: campos numéricos ausentes contam
// como zero e coorte vazio produz uma linha zerada. CurrentDebt nunca é
// negativo, mesmo quando o total recebido supera as vendas.
func Aggregate(
	orders []domain.Order,
	collections []domain.Collection,
	visits []domain.Visit,
	rng *domain.DateRange,
) domain.AggregatedRow {
	row := domain.AggregatedRow{}

	for _, order := range orders {
		if rng != nil && !rng.Contains(order.OrderDate) {
			continue
		}
		row.InvoiceCount++
		row.Sales += order.NetTotal()
	}

	for _, collection := range collections {
		if rng != nil && !rng.Contains(collection.CollectionDate) {
			continue
		}
		row.Collected += collection.Amount
	}

	for _, visit := range visits {
		if rng != nil && !rng.Contains(visit.VisitDate) {
			continue
		}
		row.Visits++
	}

	debt := row.Sales - row.Collected
	if debt < 0 {
		debt = 0
	}
	row.CurrentDebt = utils.RoundWithTwoDecimalPlace(debt)
	row.Sales = utils.RoundWithTwoDecimalPlace(row.Sales)
	row.Collected = utils.RoundWithTwoDecimalPlace(row.Collected)

	return row
}
