package domain

import "time"

// Collection representa um recebimento (pagamento) de uma clínica.
// O motor apenas soma o valor; valores negativos não são validados aqui.
type Collection struct {
	ID             string    `json:"id"`
	RepID          string    `json:"rep_id"`
	ClinicID       string    `json:"clinic_id"`
	CollectionDate time.Time `json:"collection_date"`
	Amount         float64   `json:"amount"`
}
