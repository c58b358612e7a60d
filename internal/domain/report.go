package domain

import "time"

// AggregatedRow é o resumo financeiro de uma entidade (representante,
// clínica, área ou linha) dentro de um período. Valores são derivados a cada
// chamada e nunca persistidos como fonte de verdade.
//
// As somas usam acumulação em float64, sem aritmética decimal de moeda.
// A perda de precisão é aceitável nas magnitudes deste domínio e está
// documentada como limitação conhecida.
type AggregatedRow struct {
	EntityID     string  `json:"entity_id"`
	EntityName   string  `json:"entity_name"`
	Visits       int     `json:"visits"`
	InvoiceCount int     `json:"invoice_count"`
	Sales        float64 `json:"sales"`
	Collected    float64 `json:"collected"`
	CurrentDebt  float64 `json:"current_debt"` // max(0, Sales-Collected), nunca negativo
}

// RosterReport é a resposta do relatório por representante.
type RosterReport struct {
	Rows   []AggregatedRow `json:"rows"`
	Period PeriodToken     `json:"period"`
	Range  *DateRange      `json:"range,omitempty"`
}

// ClinicReport combina o resumo financeiro de uma clínica com sua
// classificação de crédito e os produtos mais vendidos no período.
type ClinicReport struct {
	Clinic      Clinic              `json:"clinic"`
	Row         AggregatedRow       `json:"row"`
	Credit      CreditCheck         `json:"credit"`
	TopProducts ProductLeaderboards `json:"top_products"`
	Range       *DateRange          `json:"range,omitempty"`
}

// RepReport é o detalhamento financeiro de um único representante: a linha
// agregada do período mais os produtos que ele mais vendeu.
type RepReport struct {
	Representative Representative      `json:"representative"`
	Row            AggregatedRow       `json:"row"`
	TopProducts    ProductLeaderboards `json:"top_products"`
	Range          *DateRange          `json:"range,omitempty"`
}

// ReportSnapshot é uma linha agregada pré-computada pelo agendador diário,
// armazenada por representante e data.
type ReportSnapshot struct {
	ID        int64         `json:"id"`
	RepID     string        `json:"rep_id"`
	Date      time.Time     `json:"date"`
	Row       AggregatedRow `json:"row"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
