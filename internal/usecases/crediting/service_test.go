package crediting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/repository/mocks"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

func float64Ptr(v float64) *float64 { return &v }

func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockClinicRepository, *mocks.MockOrderRepository, *mocks.MockCollectionRepository) {
	ctrl := gomock.NewController(t)

	clinicRepo := mocks.NewMockClinicRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	collectionRepo := mocks.NewMockCollectionRepository(ctrl)

	service := &Service{
		clinicRepo:     clinicRepo,
		orderRepo:      orderRepo,
		collectionRepo: collectionRepo,
	}

	return service, clinicRepo, orderRepo, collectionRepo
}

func TestCheckClinic(t *testing.T) {
	day := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("projeta o pedido pendente sobre a dívida do histórico completo", func(t *testing.T) {
		service, clinicRepo, orderRepo, collectionRepo := newServiceWithMocks(t)

		clinicRepo.EXPECT().GetByID("cl-1").Return(&domain.Clinic{
			ID:          "cl-1",
			Name:        "عيادة النور",
			CreditLimit: float64Ptr(1000),
		}, nil)
		orderRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return([]domain.Order{
			{ID: "o1", ClinicID: "cl-1", OrderDate: day, TotalAmount: float64Ptr(700)},
		}, nil)
		collectionRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return([]domain.Collection{
			{ID: "c1", ClinicID: "cl-1", CollectionDate: day, Amount: 200},
		}, nil)

		// Dívida atual 500 + pedido 200 = 700 → warning, sem bloqueio
		check, err := service.CheckClinic("cl-1", 200)

		require.NoError(t, err)
		assert.Equal(t, domain.CreditWarning, check.Status)
		assert.InDelta(t, 70.0, check.Utilization, 0.001)
		assert.False(t, check.Blocked)
	})

	t.Run("bloqueia quando a projeção atinge 100% do limite", func(t *testing.T) {
		service, clinicRepo, orderRepo, collectionRepo := newServiceWithMocks(t)

		clinicRepo.EXPECT().GetByID("cl-1").Return(&domain.Clinic{
			ID:          "cl-1",
			CreditLimit: float64Ptr(1000),
		}, nil)
		orderRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return([]domain.Order{
			{ID: "o1", ClinicID: "cl-1", OrderDate: day, TotalAmount: float64Ptr(800)},
		}, nil)
		collectionRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return(nil, nil)

		check, err := service.CheckClinic("cl-1", 200)

		require.NoError(t, err)
		assert.Equal(t, domain.CreditDanger, check.Status)
		assert.True(t, check.Blocked)
	})

	t.Run("clínica sem limite nunca bloqueia", func(t *testing.T) {
		service, clinicRepo, orderRepo, collectionRepo := newServiceWithMocks(t)

		clinicRepo.EXPECT().GetByID("cl-1").Return(&domain.Clinic{ID: "cl-1"}, nil)
		orderRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return([]domain.Order{
			{ID: "o1", ClinicID: "cl-1", OrderDate: day, TotalAmount: float64Ptr(100000)},
		}, nil)
		collectionRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return(nil, nil)

		check, err := service.CheckClinic("cl-1", 50000)

		require.NoError(t, err)
		assert.Equal(t, domain.CreditNone, check.Status)
		assert.Equal(t, 0.0, check.Utilization)
		assert.False(t, check.Blocked)
	})

	t.Run("clínica inexistente retorna erro", func(t *testing.T) {
		service, clinicRepo, _, _ := newServiceWithMocks(t)

		clinicRepo.EXPECT().GetByID("missing").Return(nil, nil)

		_, err := service.CheckClinic("missing", 100)

		assert.Error(t, err)
	})

	t.Run("erro do repositório é propagado", func(t *testing.T) {
		service, clinicRepo, orderRepo, _ := newServiceWithMocks(t)

		clinicRepo.EXPECT().GetByID("cl-1").Return(&domain.Clinic{ID: "cl-1"}, nil)
		orderRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return(nil, errors.New("db down"))

		_, err := service.CheckClinic("cl-1", 100)

		assert.Error(t, err)
	})
}
