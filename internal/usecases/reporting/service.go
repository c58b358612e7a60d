package reporting

import (
	"fmt"
	"sync"

	"github.com/mafiaidolaa/medicalrep-sub003/infrastructure/repository"
	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
	"github.com/sirupsen/logrus"
)

// Chaves de agrupamento aceitas por GroupedReport.
const (
	GroupByArea    = "area"
	GroupByLine    = "line"
	GroupByManager = "manager"
)

// Service implementa Reporter alimentando o motor puro de agregação com
// snapshots vindos dos repositórios.
type Service struct {
	orderRepo      repository.OrderRepository
	collectionRepo repository.CollectionRepository
	visitRepo      repository.VisitRepository
	repRepo        repository.RepresentativeRepository
	clinicRepo     repository.ClinicRepository
}

// NewService cria uma nova instância do serviço de relatórios
func NewService(
	orderRepo repository.OrderRepository,
	collectionRepo repository.CollectionRepository,
	visitRepo repository.VisitRepository,
	repRepo repository.RepresentativeRepository,
	clinicRepo repository.ClinicRepository,
) Reporter {
	return &Service{
		orderRepo:      orderRepo,
		collectionRepo: collectionRepo,
		visitRepo:      visitRepo,
		repRepo:        repRepo,
		clinicRepo:     clinicRepo,
	}
}

// snapshot é o conjunto imutável de eventos carregado para um relatório.
type snapshot struct {
	orders      []domain.Order
	collections []domain.Collection
	visits      []domain.Visit
}

// loadSnapshot busca pedidos, recebimentos e visitas do período em paralelo.
func (s *Service) loadSnapshot(rng *domain.DateRange) (*snapshot, error) {
	var (
		snap           snapshot
		ordersErr      error
		collectionsErr error
		visitsErr      error
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		snap.orders, ordersErr = s.orderRepo.List(rng)
	}()

	go func() {
		defer wg.Done()
		snap.collections, collectionsErr = s.collectionRepo.List(rng)
	}()

	go func() {
		defer wg.Done()
		snap.visits, visitsErr = s.visitRepo.List(rng)
	}()

	wg.Wait()

	if ordersErr != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos: %w", ordersErr)
	}
	if collectionsErr != nil {
		return nil, fmt.Errorf("erro ao buscar recebimentos: %w", collectionsErr)
	}
	if visitsErr != nil {
		return nil, fmt.Errorf("erro ao buscar visitas: %w", visitsErr)
	}

	return &snap, nil
}

// RepresentativesReport monta o relatório do roster: uma linha agregada por
// representante ativo, dentro do período resolvido.
func (s *Service) RepresentativesReport(token domain.PeriodToken, custom *domain.CustomRange) (*domain.RosterReport, error) {
	rng, err := ResolvePeriod(token, custom)
	if err != nil {
		return nil, err
	}

	reps, err := s.repRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar representantes: %w", err)
	}

	snap, err := s.loadSnapshot(rng)
	if err != nil {
		return nil, err
	}

	// Indexação única por representante, nunca um filtro por linha do roster
	ordersByRep := OrdersByRep(snap.orders)
	collectionsByRep := CollectionsByRep(snap.collections)
	visitsByRep := VisitsByRep(snap.visits)

	rows := make([]domain.AggregatedRow, 0, len(reps))
	for _, rep := range reps {
		row := Aggregate(ordersByRep[rep.ID], collectionsByRep[rep.ID], visitsByRep[rep.ID], rng)
		row.EntityID = rep.ID
		row.EntityName = rep.FullName
		rows = append(rows, row)
	}

	logrus.WithFields(logrus.Fields{
		"period": token,
		"rows":   len(rows),
	}).Debug("Relatório de representantes montado")

	return &domain.RosterReport{
		Rows:   rows,
		Period: token,
		Range:  rng,
	}, nil
}

// RepresentativeReport monta o detalhamento de um representante: linha
// agregada do período e ranking dos produtos vendidos por ele.
func (s *Service) RepresentativeReport(repID string, token domain.PeriodToken, custom *domain.CustomRange, topN int) (*domain.RepReport, error) {
	rep, err := s.repRepo.GetByID(repID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar representante: %w", err)
	}
	if rep == nil {
		return nil, fmt.Errorf("representante não encontrado: %s", repID)
	}

	rng, err := ResolvePeriod(token, custom)
	if err != nil {
		return nil, err
	}

	var (
		orders         []domain.Order
		collections    []domain.Collection
		visits         []domain.Visit
		ordersErr      error
		collectionsErr error
		visitsErr      error
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		orders, ordersErr = s.orderRepo.ListByRep(repID, rng)
	}()

	go func() {
		defer wg.Done()
		collections, collectionsErr = s.collectionRepo.ListByRep(repID, rng)
	}()

	go func() {
		defer wg.Done()
		visits, visitsErr = s.visitRepo.ListByRep(repID, rng)
	}()

	wg.Wait()

	if ordersErr != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos do representante: %w", ordersErr)
	}
	if collectionsErr != nil {
		return nil, fmt.Errorf("erro ao buscar recebimentos do representante: %w", collectionsErr)
	}
	if visitsErr != nil {
		return nil, fmt.Errorf("erro ao buscar visitas do representante: %w", visitsErr)
	}

	row := Aggregate(orders, collections, visits, rng)
	row.EntityID = rep.ID
	row.EntityName = rep.FullName

	return &domain.RepReport{
		Representative: *rep,
		Row:            row,
		TopProducts:    TopProducts(orders, topN),
		Range:          rng,
	}, nil
}

// GroupedReport agrega o roster por área, linha ou gerente. Os eventos são
// atribuídos ao grupo através do representante dono.
func (s *Service) GroupedReport(groupBy string, token domain.PeriodToken, custom *domain.CustomRange) (*domain.RosterReport, error) {
	rng, err := ResolvePeriod(token, custom)
	if err != nil {
		return nil, err
	}

	reps, err := s.repRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar representantes: %w", err)
	}

	groupKey, err := groupKeyFunc(groupBy)
	if err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(rng)
	if err != nil {
		return nil, err
	}

	ordersByRep := OrdersByRep(snap.orders)
	collectionsByRep := CollectionsByRep(snap.collections)
	visitsByRep := VisitsByRep(snap.visits)

	// Concatena os coortes dos representantes de cada grupo, preservando a
	// ordem do roster para saída determinística.
	type groupCohort struct {
		key  string
		snap snapshot
	}

	cohortsByKey := make(map[string]*groupCohort)
	orderedKeys := make([]string, 0)

	for _, rep := range reps {
		key := groupKey(rep)
		if key == "" {
			// Representante sem o atributo do agrupamento fica de fora,
			// mesma regra do indexador para donos ausentes
			continue
		}

		cohort, exists := cohortsByKey[key]
		if !exists {
			cohort = &groupCohort{key: key}
			cohortsByKey[key] = cohort
			orderedKeys = append(orderedKeys, key)
		}

		cohort.snap.orders = append(cohort.snap.orders, ordersByRep[rep.ID]...)
		cohort.snap.collections = append(cohort.snap.collections, collectionsByRep[rep.ID]...)
		cohort.snap.visits = append(cohort.snap.visits, visitsByRep[rep.ID]...)
	}

	repNames := make(map[string]string, len(reps))
	for _, rep := range reps {
		repNames[rep.ID] = rep.FullName
	}

	rows := make([]domain.AggregatedRow, 0, len(orderedKeys))
	for _, key := range orderedKeys {
		cohort := cohortsByKey[key]
		row := Aggregate(cohort.snap.orders, cohort.snap.collections, cohort.snap.visits, rng)
		row.EntityID = key
		row.EntityName = key
		if groupBy == GroupByManager {
			if name, ok := repNames[key]; ok {
				row.EntityName = name
			}
		}
		rows = append(rows, row)
	}

	return &domain.RosterReport{
		Rows:   rows,
		Period: token,
		Range:  rng,
	}, nil
}

func groupKeyFunc(groupBy string) (func(domain.Representative) string, error) {
	switch groupBy {
	case GroupByArea:
		return func(rep domain.Representative) string { return rep.Area }, nil
	case GroupByLine:
		return func(rep domain.Representative) string { return rep.Line }, nil
	case GroupByManager:
		return func(rep domain.Representative) string { return rep.ManagerID }, nil
	default:
		return nil, fmt.Errorf("agrupamento desconhecido: %q", groupBy)
	}
}

// ClinicReport monta o resumo financeiro de uma clínica com classificação de
// crédito e ranking de produtos do período.
func (s *Service) ClinicReport(clinicID string, token domain.PeriodToken, custom *domain.CustomRange, topN int) (*domain.ClinicReport, error) {
	clinic, err := s.clinicRepo.GetByID(clinicID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clínica: %w", err)
	}
	if clinic == nil {
		return nil, fmt.Errorf("clínica não encontrada: %s", clinicID)
	}

	rng, err := ResolvePeriod(token, custom)
	if err != nil {
		return nil, err
	}

	var (
		orders         []domain.Order
		collections    []domain.Collection
		visits         []domain.Visit
		ordersErr      error
		collectionsErr error
		visitsErr      error
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		orders, ordersErr = s.orderRepo.ListByClinic(clinicID, rng)
	}()

	go func() {
		defer wg.Done()
		collections, collectionsErr = s.collectionRepo.ListByClinic(clinicID, rng)
	}()

	go func() {
		defer wg.Done()
		visits, visitsErr = s.visitRepo.ListByClinic(clinicID, rng)
	}()

	wg.Wait()

	if ordersErr != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos da clínica: %w", ordersErr)
	}
	if collectionsErr != nil {
		return nil, fmt.Errorf("erro ao buscar recebimentos da clínica: %w", collectionsErr)
	}
	if visitsErr != nil {
		return nil, fmt.Errorf("erro ao buscar visitas da clínica: %w", visitsErr)
	}

	row := Aggregate(orders, collections, visits, rng)
	row.EntityID = clinic.ID
	row.EntityName = clinic.Name

	credit := domain.CreditCheck{
		Status:      domain.ClassifyCredit(row.CurrentDebt, clinic.CreditLimit),
		Utilization: domain.CreditUtilization(row.CurrentDebt, clinic.CreditLimit),
		Blocked:     domain.WouldExceed(row.CurrentDebt, clinic.CreditLimit),
	}

	return &domain.ClinicReport{
		Clinic:      *clinic,
		Row:         row,
		Credit:      credit,
		TopProducts: TopProducts(orders, topN),
		Range:       rng,
	}, nil
}

// TopProductsReport monta o ranking de produtos de todo o coorte do período.
func (s *Service) TopProductsReport(token domain.PeriodToken, custom *domain.CustomRange, n int) (*domain.ProductLeaderboards, error) {
	rng, err := ResolvePeriod(token, custom)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.List(rng)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos: %w", err)
	}

	leaderboards := TopProducts(orders, n)
	return &leaderboards, nil
}

// Clinics lista o diretório de clínicas cadastradas.
func (s *Service) Clinics() ([]domain.Clinic, error) {
	clinics, err := s.clinicRepo.List()
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clínicas: %w", err)
	}
	return clinics, nil
}
