package domain

import "time"

// PeriodToken é um período simbólico de relatório.
type PeriodToken string

const (
	PeriodAll         PeriodToken = "all"
	PeriodThisMonth   PeriodToken = "this_month"
	PeriodLastMonth   PeriodToken = "last_month"
	PeriodLast3Months PeriodToken = "last_3_months"
	PeriodYTD         PeriodToken = "ytd"
	PeriodCustom      PeriodToken = "custom"
)

// CustomRange são os limites explícitos de um período custom, no formato
// yyyy-mm-dd. Qualquer um dos dois vazio significa "sem filtro".
type CustomRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DateRange é o intervalo concreto resolvido de um período. Ambos os limites
// são inclusivos; End já vem em fim de dia (23:59:59.999).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains informa se o instante está dentro do intervalo.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
