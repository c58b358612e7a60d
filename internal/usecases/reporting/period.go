package reporting

import (
	"fmt"
	"time"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

// ResolvePeriod converte um token de período em um intervalo concreto de
// datas, calculado em UTC contra o instante atual. Retorna nil para "all"
// (sem filtro) e para um período custom com limite ausente. Datas custom
// malformadas retornam erro em vez de filtrar tudo silenciosamente — o
// comportamento silencioso da origem era um bug latente.
func ResolvePeriod(token domain.PeriodToken, custom *domain.CustomRange) (*domain.DateRange, error) {
	return resolvePeriodAt(token, custom, time.Now().UTC())
}

// resolvePeriodAt é a variante com instante explícito, usada nos testes.
func resolvePeriodAt(token domain.PeriodToken, custom *domain.CustomRange, now time.Time) (*domain.DateRange, error) {
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch token {
	case domain.PeriodAll, "":
		return nil, nil

	case domain.PeriodThisMonth:
		return &domain.DateRange{
			Start: firstOfMonth,
			End:   endOfMonth(firstOfMonth),
		}, nil

	case domain.PeriodLastMonth:
		firstOfLastMonth := firstOfMonth.AddDate(0, -1, 0)
		return &domain.DateRange{
			Start: firstOfLastMonth,
			End:   endOfMonth(firstOfLastMonth),
		}, nil

	case domain.PeriodLast3Months:
		return &domain.DateRange{
			Start: firstOfMonth.AddDate(0, -2, 0),
			End:   endOfMonth(firstOfMonth),
		}, nil

	case domain.PeriodYTD:
		return &domain.DateRange{
			Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   endOfDay(now),
		}, nil

	case domain.PeriodCustom:
		// Limite ausente resolve para "sem filtro", preservando o contrato
		// permissivo da origem para entrada parcial.
		if custom == nil || custom.From == "" || custom.To == "" {
			return nil, nil
		}

		from, err := time.ParseInLocation(time.DateOnly, custom.From, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("data inicial inválida %q: %w", custom.From, err)
		}

		to, err := time.ParseInLocation(time.DateOnly, custom.To, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("data final inválida %q: %w", custom.To, err)
		}

		return &domain.DateRange{
			Start: from,
			End:   endOfDay(to),
		}, nil

	default:
		return nil, fmt.Errorf("período desconhecido: %q", token)
	}
}

// endOfMonth retorna o último instante (23:59:59.999) do mês de firstDay.
func endOfMonth(firstDay time.Time) time.Time {
	return firstDay.AddDate(0, 1, 0).Add(-time.Millisecond)
}

// endOfDay retorna o instante 23:59:59.999 do dia de t.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, time.UTC)
}
