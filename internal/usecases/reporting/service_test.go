package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/repository/mocks"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

type serviceMocks struct {
	orderRepo      *mocks.MockOrderRepository
	collectionRepo *mocks.MockCollectionRepository
	visitRepo      *mocks.MockVisitRepository
	repRepo        *mocks.MockRepresentativeRepository
	clinicRepo     *mocks.MockClinicRepository
}

func newServiceWithMocks(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		orderRepo:      mocks.NewMockOrderRepository(ctrl),
		collectionRepo: mocks.NewMockCollectionRepository(ctrl),
		visitRepo:      mocks.NewMockVisitRepository(ctrl),
		repRepo:        mocks.NewMockRepresentativeRepository(ctrl),
		clinicRepo:     mocks.NewMockClinicRepository(ctrl),
	}

	service := &Service{
		orderRepo:      m.orderRepo,
		collectionRepo: m.collectionRepo,
		visitRepo:      m.visitRepo,
		repRepo:        m.repRepo,
		clinicRepo:     m.clinicRepo,
	}

	return service, m
}

func TestRepresentativesReport(t *testing.T) {
	day := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("uma linha por representante ativo, na ordem do roster", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.repRepo.EXPECT().ListActive().Return([]domain.Representative{
			{ID: "rep-1", FullName: "أحمد حسن"},
			{ID: "rep-2", FullName: "منى علي"},
		}, nil)

		m.orderRepo.EXPECT().List(gomock.Nil()).Return([]domain.Order{
			{ID: "o1", RepID: "rep-1", OrderDate: day, TotalAmount: float64Ptr(1000)},
			{ID: "o2", RepID: "rep-2", OrderDate: day, TotalAmount: float64Ptr(300)},
			{ID: "o3", RepID: "rep-1", OrderDate: day, TotalAmount: float64Ptr(500)},
		}, nil)
		m.collectionRepo.EXPECT().List(gomock.Nil()).Return([]domain.Collection{
			{ID: "c1", RepID: "rep-1", CollectionDate: day, Amount: 400},
		}, nil)
		m.visitRepo.EXPECT().List(gomock.Nil()).Return([]domain.Visit{
			{ID: "v1", RepID: "rep-2", VisitDate: day},
		}, nil)

		report, err := service.RepresentativesReport(domain.PeriodAll, nil)

		require.NoError(t, err)
		require.Len(t, report.Rows, 2)

		first := report.Rows[0]
		assert.Equal(t, "rep-1", first.EntityID)
		assert.Equal(t, "أحمد حسن", first.EntityName)
		assert.Equal(t, 2, first.InvoiceCount)
		assert.Equal(t, 1500.0, first.Sales)
		assert.Equal(t, 400.0, first.Collected)
		assert.Equal(t, 1100.0, first.CurrentDebt)

		second := report.Rows[1]
		assert.Equal(t, "rep-2", second.EntityID)
		assert.Equal(t, 1, second.Visits)
		assert.Equal(t, 300.0, second.Sales)
	})

	t.Run("representante sem eventos aparece com linha zerada", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.repRepo.EXPECT().ListActive().Return([]domain.Representative{
			{ID: "rep-1", FullName: "أحمد حسن"},
		}, nil)
		m.orderRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)
		m.collectionRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)
		m.visitRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)

		report, err := service.RepresentativesReport(domain.PeriodAll, nil)

		require.NoError(t, err)
		require.Len(t, report.Rows, 1)
		assert.Equal(t, 0.0, report.Rows[0].Sales)
		assert.Equal(t, 0, report.Rows[0].Visits)
	})

	t.Run("período inválido retorna erro sem tocar nos repositórios", func(t *testing.T) {
		service, _ := newServiceWithMocks(t)

		_, err := service.RepresentativesReport("quarter", nil)

		assert.Error(t, err)
	})
}

func TestRepresentativeReport(t *testing.T) {
	day := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("monta detalhamento com linha agregada e ranking de produtos", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.repRepo.EXPECT().GetByID("rep-1").Return(&domain.Representative{
			ID:       "rep-1",
			FullName: "أحمد حسن",
		}, nil)
		m.orderRepo.EXPECT().ListByRep("rep-1", gomock.Nil()).Return([]domain.Order{
			{ID: "o1", RepID: "rep-1", OrderDate: day, TotalAmount: float64Ptr(300), Items: []domain.LineItem{
				{ProductID: "p1", ProductName: "Panadol", UnitPrice: 30, Quantity: 10},
			}},
		}, nil)
		m.collectionRepo.EXPECT().ListByRep("rep-1", gomock.Nil()).Return([]domain.Collection{
			{ID: "c1", RepID: "rep-1", CollectionDate: day, Amount: 100},
		}, nil)
		m.visitRepo.EXPECT().ListByRep("rep-1", gomock.Nil()).Return([]domain.Visit{
			{ID: "v1", RepID: "rep-1", VisitDate: day},
		}, nil)

		report, err := service.RepresentativeReport("rep-1", domain.PeriodAll, nil, 5)

		require.NoError(t, err)
		assert.Equal(t, "أحمد حسن", report.Row.EntityName)
		assert.Equal(t, 300.0, report.Row.Sales)
		assert.Equal(t, 200.0, report.Row.CurrentDebt)
		assert.Equal(t, 1, report.Row.Visits)
		require.Len(t, report.TopProducts.ByRevenue, 1)
		assert.Equal(t, "Panadol", report.TopProducts.ByRevenue[0].ProductName)
	})

	t.Run("representante inexistente retorna erro", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.repRepo.EXPECT().GetByID("missing").Return(nil, nil)

		_, err := service.RepresentativeReport("missing", domain.PeriodAll, nil, 5)

		assert.Error(t, err)
	})
}

func TestClinics(t *testing.T) {
	service, m := newServiceWithMocks(t)

	m.clinicRepo.EXPECT().List().Return([]domain.Clinic{
		{ID: "cl-1", Name: "عيادة النور"},
		{ID: "cl-2", Name: "عيادة الشفاء"},
	}, nil)

	clinics, err := service.Clinics()

	require.NoError(t, err)
	require.Len(t, clinics, 2)
	assert.Equal(t, "عيادة النور", clinics[0].Name)
}

func TestGroupedReport(t *testing.T) {
	day := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("agrega por área somando os coortes dos representantes", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.repRepo.EXPECT().ListActive().Return([]domain.Representative{
			{ID: "rep-1", FullName: "أحمد", Area: "القاهرة"},
			{ID: "rep-2", FullName: "منى", Area: "الجيزة"},
			{ID: "rep-3", FullName: "كريم", Area: "القاهرة"},
		}, nil)
		m.orderRepo.EXPECT().List(gomock.Nil()).Return([]domain.Order{
			{ID: "o1", RepID: "rep-1", OrderDate: day, TotalAmount: float64Ptr(100)},
			{ID: "o2", RepID: "rep-3", OrderDate: day, TotalAmount: float64Ptr(200)},
			{ID: "o3", RepID: "rep-2", OrderDate: day, TotalAmount: float64Ptr(50)},
		}, nil)
		m.collectionRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)
		m.visitRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)

		report, err := service.GroupedReport(GroupByArea, domain.PeriodAll, nil)

		require.NoError(t, err)
		require.Len(t, report.Rows, 2)
		assert.Equal(t, "القاهرة", report.Rows[0].EntityID)
		assert.Equal(t, 300.0, report.Rows[0].Sales)
		assert.Equal(t, "الجيزة", report.Rows[1].EntityID)
		assert.Equal(t, 50.0, report.Rows[1].Sales)
	})

	t.Run("representante sem o atributo do agrupamento fica de fora", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.repRepo.EXPECT().ListActive().Return([]domain.Representative{
			{ID: "rep-1", FullName: "أحمد", Area: "القاهرة"},
			{ID: "rep-2", FullName: "منى", Area: ""},
		}, nil)
		m.orderRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)
		m.collectionRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)
		m.visitRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)

		report, err := service.GroupedReport(GroupByArea, domain.PeriodAll, nil)

		require.NoError(t, err)
		assert.Len(t, report.Rows, 1)
	})

	t.Run("agrupamento por gerente usa o nome do gerente na linha", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.repRepo.EXPECT().ListActive().Return([]domain.Representative{
			{ID: "mgr-1", FullName: "مدير المنطقة"},
			{ID: "rep-1", FullName: "أحمد", ManagerID: "mgr-1"},
		}, nil)
		m.orderRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)
		m.collectionRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)
		m.visitRepo.EXPECT().List(gomock.Nil()).Return(nil, nil)

		report, err := service.GroupedReport(GroupByManager, domain.PeriodAll, nil)

		require.NoError(t, err)
		require.Len(t, report.Rows, 1)
		assert.Equal(t, "mgr-1", report.Rows[0].EntityID)
		assert.Equal(t, "مدير المنطقة", report.Rows[0].EntityName)
	})

	t.Run("agrupamento desconhecido retorna erro", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.repRepo.EXPECT().ListActive().Return(nil, nil)

		_, err := service.GroupedReport("team", domain.PeriodAll, nil)

		assert.Error(t, err)
	})
}

func TestClinicReport(t *testing.T) {
	day := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("monta resumo financeiro com crédito e ranking de produtos", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.clinicRepo.EXPECT().GetByID("cl-1").Return(&domain.Clinic{
			ID:          "cl-1",
			Name:        "عيادة النور",
			CreditLimit: float64Ptr(1000),
		}, nil)
		m.orderRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return([]domain.Order{
			{ID: "o1", ClinicID: "cl-1", OrderDate: day, TotalAmount: float64Ptr(850), Items: []domain.LineItem{
				{ProductID: "p1", ProductName: "Panadol", UnitPrice: 85, Quantity: 10},
			}},
		}, nil)
		m.collectionRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return(nil, nil)
		m.visitRepo.EXPECT().ListByClinic("cl-1", gomock.Nil()).Return([]domain.Visit{
			{ID: "v1", ClinicID: "cl-1", VisitDate: day},
		}, nil)

		report, err := service.ClinicReport("cl-1", domain.PeriodAll, nil, 5)

		require.NoError(t, err)
		assert.Equal(t, "عيادة النور", report.Row.EntityName)
		assert.Equal(t, 850.0, report.Row.CurrentDebt)
		// 850/1000 = 85% do limite: warning, ainda sem bloqueio
		assert.Equal(t, domain.CreditWarning, report.Credit.Status)
		assert.InDelta(t, 85.0, report.Credit.Utilization, 0.001)
		assert.False(t, report.Credit.Blocked)
		require.Len(t, report.TopProducts.ByRevenue, 1)
		assert.Equal(t, "Panadol", report.TopProducts.ByRevenue[0].ProductName)
	})

	t.Run("clínica inexistente retorna erro", func(t *testing.T) {
		service, m := newServiceWithMocks(t)

		m.clinicRepo.EXPECT().GetByID("missing").Return(nil, nil)

		_, err := service.ClinicReport("missing", domain.PeriodAll, nil, 5)

		assert.Error(t, err)
	})
}

func TestTopProductsReport(t *testing.T) {
	day := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	service, m := newServiceWithMocks(t)

	m.orderRepo.EXPECT().List(gomock.Nil()).Return([]domain.Order{
		{ID: "o1", OrderDate: day, Items: []domain.LineItem{
			{ProductID: "p1", ProductName: "Panadol", UnitPrice: 10, Quantity: 2},
		}},
	}, nil)

	boards, err := service.TopProductsReport(domain.PeriodAll, nil, 5)

	require.NoError(t, err)
	require.Len(t, boards.ByRevenue, 1)
	assert.Equal(t, 20.0, boards.ByRevenue[0].Value)
}
