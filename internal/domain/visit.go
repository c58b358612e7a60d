package domain

import "time"

// Visit representa uma visita de um representante. Usada apenas para
// contagem nos relatórios.
type Visit struct {
	ID        string    `json:"id"`
	RepID     string    `json:"rep_id"`
	ClinicID  string    `json:"clinic_id,omitempty"`
	VisitDate time.Time `json:"visit_date"`
}
