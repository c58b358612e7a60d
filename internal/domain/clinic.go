package domain

import "time"

// Clinic representa uma clínica cadastrada. CreditLimit e PaymentTermsDays
// são opcionais: sem limite configurado não há classificação de crédito.
type Clinic struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CreditLimit      *float64  `json:"credit_limit,omitempty"`
	PaymentTermsDays *int      `json:"payment_terms_days,omitempty"`
	Area             string    `json:"area,omitempty"`
	Line             string    `json:"line,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
