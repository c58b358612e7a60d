package domain

// CreditStatus é a faixa de risco de crédito de uma clínica.
type CreditStatus string

const (
	CreditNone    CreditStatus = "none"
	CreditGood    CreditStatus = "good"
	CreditCaution CreditStatus = "caution"
	CreditWarning CreditStatus = "warning"
	CreditDanger  CreditStatus = "danger"
)

var creditSeverity = map[CreditStatus]int{
	CreditNone:    0,
	CreditGood:    1,
	CreditCaution: 2,
	CreditWarning: 3,
	CreditDanger:  4,
}

// Severity retorna a ordem de severidade da faixa
// (none < good < caution < warning < danger).
func (c CreditStatus) Severity() int {
	return creditSeverity[c]
}

// CreditCheck é o resultado de uma verificação de crédito, inclusive a
// pré-submissão de um pedido: Blocked indica que o pedido projetado
// estouraria o limite e não deve ser enviado.
type CreditCheck struct {
	Status      CreditStatus `json:"status"`
	Utilization float64      `json:"utilization"` // percentual do limite
	Blocked     bool         `json:"blocked"`
}

// ClassifyCredit mapeia a dívida (atual ou projetada) e o limite de crédito
// da clínica para uma faixa de risco. Função total: sem limite configurado
// (nil ou <= 0) a classificação é "none", nunca um erro de divisão.
func ClassifyCredit(debt float64, creditLimit *float64) CreditStatus {
	if creditLimit == nil || *creditLimit <= 0 {
		return CreditNone
	}

	utilization := debt / *creditLimit * 100

	switch {
	case utilization >= 90:
		return CreditDanger
	case utilization >= 70:
		return CreditWarning
	case utilization >= 50:
		return CreditCaution
	default:
		return CreditGood
	}
}

// CreditUtilization calcula o percentual do limite consumido pela dívida.
// Sem limite configurado retorna zero.
func CreditUtilization(debt float64, creditLimit *float64) float64 {
	if creditLimit == nil || *creditLimit <= 0 {
		return 0
	}
	return debt / *creditLimit * 100
}

// WouldExceed informa se a dívida projetada (dívida atual + pedido pendente)
// atinge ou ultrapassa 100% do limite. Usada para bloquear a submissão de um
// pedido antes de persistir. Sem limite configurado nada é bloqueado.
func WouldExceed(projectedDebt float64, creditLimit *float64) bool {
	if creditLimit == nil || *creditLimit <= 0 {
		return false
	}
	return projectedDebt >= *creditLimit
}
