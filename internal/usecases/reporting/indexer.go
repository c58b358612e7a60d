package reporting

import "github.com/mafiaidolaa/medicalrep-sub003/internal/domain"

// IndexByOwner agrupa registros pelo id da entidade dona em uma única
// passada, preservando a ordem de inserção. Registros sem dono são
// descartados para não criar um balde "desconhecido" com agregação falsa.
//
// Em páginas de roster isso substitui o antipadrão O(N·M) de filtrar o array
// completo uma vez por entidade.
func IndexByOwner[T any](records []T, ownerID func(T) string) map[string][]T {
	index := make(map[string][]T, len(records))
	for _, record := range records {
		id := ownerID(record)
		if id == "" {
			continue
		}
		index[id] = append(index[id], record)
	}
	return index
}

// OrdersByRep indexa pedidos pelo representante.
func OrdersByRep(orders []domain.Order) map[string][]domain.Order {
	return IndexByOwner(orders, func(o domain.Order) string { return o.RepID })
}

// OrdersByClinic indexa pedidos pela clínica.
func OrdersByClinic(orders []domain.Order) map[string][]domain.Order {
	return IndexByOwner(orders, func(o domain.Order) string { return o.ClinicID })
}

// CollectionsByRep indexa recebimentos pelo representante.
func CollectionsByRep(collections []domain.Collection) map[string][]domain.Collection {
	return IndexByOwner(collections, func(c domain.Collection) string { return c.RepID })
}

// CollectionsByClinic indexa recebimentos pela clínica.
func CollectionsByClinic(collections []domain.Collection) map[string][]domain.Collection {
	return IndexByOwner(collections, func(c domain.Collection) string { return c.ClinicID })
}

// VisitsByRep indexa visitas pelo representante.
func VisitsByRep(visits []domain.Visit) map[string][]domain.Visit {
	return IndexByOwner(visits, func(v domain.Visit) string { return v.RepID })
}
