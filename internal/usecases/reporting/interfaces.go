package reporting

import "github.com/mafiaidolaa/medicalrep-sub003/internal/domain"

// Reporter é a interface consumida pelos handlers de relatório.
type Reporter interface {
	RepresentativesReport(token domain.PeriodToken, custom *domain.CustomRange) (*domain.RosterReport, error)
	RepresentativeReport(repID string, token domain.PeriodToken, custom *domain.CustomRange, topN int) (*domain.RepReport, error)
	GroupedReport(groupBy string, token domain.PeriodToken, custom *domain.CustomRange) (*domain.RosterReport, error)
	ClinicReport(clinicID string, token domain.PeriodToken, custom *domain.CustomRange, topN int) (*domain.ClinicReport, error)
	TopProductsReport(token domain.PeriodToken, custom *domain.CustomRange, n int) (*domain.ProductLeaderboards, error)
	Clinics() ([]domain.Clinic, error)
}
