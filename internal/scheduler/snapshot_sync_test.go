package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/repository/mocks"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

func float64Ptr(v float64) *float64 { return &v }

func TestSnapshotSyncService_processSnapshotsWithDate(t *testing.T) {
	ctrl := gomock.NewController(t)

	repRepo := mocks.NewMockRepresentativeRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	collectionRepo := mocks.NewMockCollectionRepository(ctrl)
	visitRepo := mocks.NewMockVisitRepository(ctrl)
	snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)

	service := &SnapshotSyncService{
		repRepo:        repRepo,
		orderRepo:      orderRepo,
		collectionRepo: collectionRepo,
		visitRepo:      visitRepo,
		snapshotRepo:   snapshotRepo,
		config: SnapshotSyncConfig{
			RetentionDays: 90,
		},
	}

	// Processamento na madrugada do dia 16 consolida o dia 15
	processingDate := time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	repRepo.EXPECT().ListActive().Return([]domain.Representative{
		{ID: "rep-1", FullName: "أحمد حسن"},
		{ID: "rep-2", FullName: "منى علي"},
	}, nil)

	orderRepo.EXPECT().List(gomock.Any()).Return([]domain.Order{
		{ID: "o1", RepID: "rep-1", OrderDate: yesterday, TotalAmount: float64Ptr(500)},
	}, nil)
	collectionRepo.EXPECT().List(gomock.Any()).Return([]domain.Collection{
		{ID: "c1", RepID: "rep-1", CollectionDate: yesterday, Amount: 200},
	}, nil)
	visitRepo.EXPECT().List(gomock.Any()).Return([]domain.Visit{
		{ID: "v1", RepID: "rep-2", VisitDate: yesterday},
	}, nil)

	saved := make([]*domain.ReportSnapshot, 0, 2)
	snapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(snapshot *domain.ReportSnapshot) error {
		saved = append(saved, snapshot)
		return nil
	}).Times(2)

	snapshotRepo.EXPECT().DeleteOlderThan(90).Return(int64(0), nil)

	err := service.processSnapshotsWithDate(processingDate)

	require.NoError(t, err)
	require.Len(t, saved, 2)

	expectedDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	first := saved[0]
	assert.Equal(t, "rep-1", first.RepID)
	assert.Equal(t, expectedDate, first.Date)
	assert.Equal(t, 500.0, first.Row.Sales)
	assert.Equal(t, 200.0, first.Row.Collected)
	assert.Equal(t, 300.0, first.Row.CurrentDebt)

	second := saved[1]
	assert.Equal(t, "rep-2", second.RepID)
	assert.Equal(t, 1, second.Row.Visits)
	assert.Equal(t, 0.0, second.Row.Sales)
}

func TestSnapshotSyncService_processSnapshotsWithDate_EmptyRoster(t *testing.T) {
	ctrl := gomock.NewController(t)

	repRepo := mocks.NewMockRepresentativeRepository(ctrl)

	service := &SnapshotSyncService{
		repRepo: repRepo,
	}

	repRepo.EXPECT().ListActive().Return(nil, nil)

	// Sem representantes ativos nada é buscado nem persistido
	err := service.processSnapshotsWithDate(time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
}

func TestSnapshotSyncService_SnapshotsForDate(t *testing.T) {
	ctrl := gomock.NewController(t)

	snapshotRepo := mocks.NewMockReportSnapshotRepository(ctrl)

	service := &SnapshotSyncService{
		snapshotRepo: snapshotRepo,
	}

	// A consulta normaliza qualquer instante para a meia-noite UTC do dia
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	snapshotRepo.EXPECT().GetByDate(day).Return([]*domain.ReportSnapshot{
		{RepID: "rep-1", Date: day},
	}, nil)

	snapshots, err := service.SnapshotsForDate(time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "rep-1", snapshots[0].RepID)
}

func TestSnapshotSyncService_GetStatus(t *testing.T) {
	service := &SnapshotSyncService{
		config: SnapshotSyncConfig{
			CronSchedule:  "0 3 * * *",
			SyncEnabled:   true,
			RetentionDays: 90,
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, 90, status["retention_days"])
}
