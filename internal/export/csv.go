// Package export renderiza linhas agregadas em CSV e em HTML imprimível.
// Formatação pura: nenhuma regra de negócio vive aqui.
package export

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

// utf8BOM prefixa o documento para que planilhas reconheçam UTF-8 (o
// conteúdo inclui texto em árabe).
const utf8BOM = "\uFEFF"

// ToCSV monta o documento CSV: BOM + linha de cabeçalho + uma linha por
// registro, separadas por \n e sem linha em branco ao final. Cada célula é
// escapada como string JSON, o que protege vírgulas, aspas e quebras de
// linha embutidas.
func ToCSV(headers []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvLine(headers))

	for _, row := range rows {
		lines = append(lines, csvLine(row))
	}

	return utf8BOM + strings.Join(lines, "\n")
}

func csvLine(cells []string) string {
	escaped := make([]string, 0, len(cells))
	for _, cell := range cells {
		escaped = append(escaped, escapeCell(cell))
	}
	return strings.Join(escaped, ",")
}

// escapeCell serializa a célula como string JSON ("..." com escapes).
func escapeCell(cell string) string {
	encoded, err := json.Marshal(cell)
	if err != nil {
		// json.Marshal de string não falha; o fallback existe só para
		// manter a camada sem pânico
		return strconv.Quote(cell)
	}
	return string(encoded)
}

// AggregatedHeaders é a ordem fixa de colunas dos relatórios de roster,
// com os títulos em árabe usados pelo front-end original.
func AggregatedHeaders() []string {
	return []string{"الاسم", "الزيارات", "عدد الفواتير", "المبيعات", "المحصل", "المديونية الحالية"}
}

// AggregatedCells converte linhas agregadas para células na mesma ordem de
// AggregatedHeaders.
func AggregatedCells(rows []domain.AggregatedRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.EntityName,
			strconv.Itoa(row.Visits),
			strconv.Itoa(row.InvoiceCount),
			formatAmount(row.Sales),
			formatAmount(row.Collected),
			formatAmount(row.CurrentDebt),
		})
	}
	return cells
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
