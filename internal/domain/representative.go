package domain

import "time"

// Representative representa um vendedor/representante do roster.
// Metas mensais são opcionais e usadas apenas como referência no relatório.
type Representative struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"full_name"`
	MonthlySalesTarget *float64  `json:"monthly_sales_target,omitempty"`
	MonthlyVisitTarget *int      `json:"monthly_visit_target,omitempty"`
	Area               string    `json:"area,omitempty"`
	Line               string    `json:"line,omitempty"`
	ManagerID          string    `json:"manager_id,omitempty"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
