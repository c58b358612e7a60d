package crediting

import (
	"fmt"

	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/repository"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/usecases/reporting"
	"github.com/sirupsen/logrus"
)

// CreditService verifica a exposição de crédito de uma clínica, inclusive a
// projeção com um pedido ainda não persistido (pré-submissão).
type CreditService interface {
	CheckClinic(clinicID string, pendingOrderAmount float64) (*domain.CreditCheck, error)
}

type Service struct {
	clinicRepo     repository.ClinicRepository
	orderRepo      repository.OrderRepository
	collectionRepo repository.CollectionRepository
}

func NewService(
	clinicRepo repository.ClinicRepository,
	orderRepo repository.OrderRepository,
	collectionRepo repository.CollectionRepository,
) CreditService {
	return &Service{
		clinicRepo:     clinicRepo,
		orderRepo:      orderRepo,
		collectionRepo: collectionRepo,
	}
}

// CheckClinic calcula a dívida atual da clínica sobre o histórico completo e
// classifica a dívida projetada (atual + pedido pendente). Blocked indica
// que a projeção atinge 100% do limite e a submissão deve ser impedida.
func (s *Service) CheckClinic(clinicID string, pendingOrderAmount float64) (*domain.CreditCheck, error) {
	clinic, err := s.clinicRepo.GetByID(clinicID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clínica: %w", err)
	}
	if clinic == nil {
		return nil, fmt.Errorf("clínica não encontrada: %s", clinicID)
	}

	// A dívida considera o histórico completo, não um período
	orders, err := s.orderRepo.ListByClinic(clinicID, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos da clínica: %w", err)
	}

	collections, err := s.collectionRepo.ListByClinic(clinicID, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar recebimentos da clínica: %w", err)
	}

	row := reporting.Aggregate(orders, collections, nil, nil)
	projectedDebt := row.CurrentDebt + pendingOrderAmount

	check := &domain.CreditCheck{
		Status:      domain.ClassifyCredit(projectedDebt, clinic.CreditLimit),
		Utilization: domain.CreditUtilization(projectedDebt, clinic.CreditLimit),
		Blocked:     domain.WouldExceed(projectedDebt, clinic.CreditLimit),
	}

	if check.Blocked {
		logrus.WithFields(logrus.Fields{
			"clinic_id":      clinicID,
			"current_debt":   row.CurrentDebt,
			"pending_amount": pendingOrderAmount,
		}).Warn("Pedido bloqueado por limite de crédito")
	}

	return check, nil
}
