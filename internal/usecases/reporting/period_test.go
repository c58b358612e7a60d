package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

func TestResolvePeriod(t *testing.T) {
	// Instante de referência: 15 de março de 2024, meio do dia UTC
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	t.Run("all resolve para nil (sem filtro)", func(t *testing.T) {
		rng, err := resolvePeriodAt(domain.PeriodAll, nil, now)

		require.NoError(t, err)
		assert.Nil(t, rng)
	})

	t.Run("token vazio equivale a all", func(t *testing.T) {
		rng, err := resolvePeriodAt("", nil, now)

		require.NoError(t, err)
		assert.Nil(t, rng)
	})

	t.Run("this_month cobre o mês corrente inteiro", func(t *testing.T) {
		rng, err := resolvePeriodAt(domain.PeriodThisMonth, nil, now)

		require.NoError(t, err)
		require.NotNil(t, rng)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), rng.Start)
		assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999000000, time.UTC), rng.End)
	})

	t.Run("last_month cobre o mês anterior inteiro", func(t *testing.T) {
		rng, err := resolvePeriodAt(domain.PeriodLastMonth, nil, now)

		require.NoError(t, err)
		require.NotNil(t, rng)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), rng.Start)
		// 2024 é bissexto
		assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC), rng.End)
	})

	t.Run("last_3_months começa dois meses atrás e termina no fim do mês corrente", func(t *testing.T) {
		rng, err := resolvePeriodAt(domain.PeriodLast3Months, nil, now)

		require.NoError(t, err)
		require.NotNil(t, rng)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rng.Start)
		assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999000000, time.UTC), rng.End)
	})

	t.Run("ytd vai de primeiro de janeiro até o fim do dia atual", func(t *testing.T) {
		rng, err := resolvePeriodAt(domain.PeriodYTD, nil, now)

		require.NoError(t, err)
		require.NotNil(t, rng)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rng.Start)
		assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999000000, time.UTC), rng.End)
	})

	t.Run("custom usa os limites informados com fim de dia inclusivo", func(t *testing.T) {
		rng, err := resolvePeriodAt(domain.PeriodCustom, &domain.CustomRange{
			From: "2024-01-10",
			To:   "2024-02-20",
		}, now)

		require.NoError(t, err)
		require.NotNil(t, rng)
		assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), rng.Start)
		assert.Equal(t, time.Date(2024, 2, 20, 23, 59, 59, 999000000, time.UTC), rng.End)
	})

	t.Run("custom com limite ausente resolve para nil", func(t *testing.T) {
		rng, err := resolvePeriodAt(domain.PeriodCustom, &domain.CustomRange{From: "2024-01-10"}, now)

		require.NoError(t, err)
		assert.Nil(t, rng)

		rng, err = resolvePeriodAt(domain.PeriodCustom, nil, now)

		require.NoError(t, err)
		assert.Nil(t, rng)
	})

	t.Run("custom com data malformada retorna erro", func(t *testing.T) {
		_, err := resolvePeriodAt(domain.PeriodCustom, &domain.CustomRange{
			From: "10/01/2024",
			To:   "2024-02-20",
		}, now)

		assert.Error(t, err)
	})

	t.Run("token desconhecido retorna erro", func(t *testing.T) {
		_, err := resolvePeriodAt("quarter", nil, now)

		assert.Error(t, err)
	})
}

func TestDateRangeContains(t *testing.T) {
	rng := domain.DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 23, 59, 59, 999000000, time.UTC),
	}

	// Ambos os limites são inclusivos
	assert.True(t, rng.Contains(rng.Start))
	assert.True(t, rng.Contains(rng.End))
	assert.True(t, rng.Contains(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)))
	assert.False(t, rng.Contains(rng.Start.Add(-time.Millisecond)))
	assert.False(t, rng.Contains(rng.End.Add(time.Millisecond)))
}
