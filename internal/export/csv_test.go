package export_test

import (
	"strings"
	"testing"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/export"
	"github.com/stretchr/testify/assert"
)

func TestToCSV(t *testing.T) {
	t.Run("deve prefixar o documento com BOM UTF-8", func(t *testing.T) {
		got := export.ToCSV([]string{"a"}, nil)

		assert.True(t, strings.HasPrefix(got, "\uFEFF"))
	})

	t.Run("não deve terminar com quebra de linha", func(t *testing.T) {
		got := export.ToCSV([]string{"a"}, [][]string{{"1"}, {"2"}})

		assert.False(t, strings.HasSuffix(got, "\n"))
	})

	t.Run("deve escapar vírgulas, aspas e quebras de linha nas células", func(t *testing.T) {
		got := export.ToCSV(
			[]string{"name", "note"},
			[][]string{{`with, comma`, "line\nbreak"}, {`with "quotes"`, "plain"}},
		)

		lines := strings.Split(strings.TrimPrefix(got, "\uFEFF"), "\n")
		assert.Len(t, lines, 3)
		assert.Equal(t, `"name","note"`, lines[0])
		assert.Equal(t, `"with, comma","line\nbreak"`, lines[1])
		assert.Equal(t, `"with \"quotes\"","plain"`, lines[2])
	})

	t.Run("deve preservar texto em árabe", func(t *testing.T) {
		got := export.ToCSV([]string{"الاسم"}, [][]string{{"عيادة النور"}})

		assert.Contains(t, got, "عيادة النور")
	})

	t.Run("documento sem registros deve conter apenas o cabeçalho", func(t *testing.T) {
		got := export.ToCSV(export.AggregatedHeaders(), nil)

		lines := strings.Split(strings.TrimPrefix(got, "\uFEFF"), "\n")
		assert.Len(t, lines, 1)
	})
}

func TestAggregatedCells(t *testing.T) {
	rows := []domain.AggregatedRow{
		{
			EntityID:     "rep-1",
			EntityName:   "أحمد",
			Visits:       3,
			InvoiceCount: 2,
			Sales:        1500.5,
			Collected:    1000,
			CurrentDebt:  500.5,
		},
	}

	got := export.AggregatedCells(rows)

	assert.Equal(t, [][]string{
		{"أحمد", "3", "2", "1500.50", "1000.00", "500.50"},
	}, got)
}

func TestToPrintableHTML(t *testing.T) {
	got := export.ToPrintableHTML(
		"تقرير المندوبين",
		[]string{"الاسم", "المبيعات"},
		[][]string{{"<b>أحمد</b>", "1500.50"}},
	)

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, `dir="rtl"`)
	assert.Contains(t, got, "<title>تقرير المندوبين</title>")
	assert.Contains(t, got, "<th>الاسم</th>")
	// Conteúdo das células é escapado, nunca interpretado como HTML
	assert.Contains(t, got, "&lt;b&gt;أحمد&lt;/b&gt;")
	assert.NotContains(t, got, "<b>أحمد</b>")
}
