package domain

// LeaderboardRow é uma posição no ranking de produtos.
type LeaderboardRow struct {
	ProductKey  string  `json:"product_key"`
	ProductName string  `json:"product_name"`
	Value       float64 `json:"value"`
}

// ProductLeaderboards são os dois rankings independentes de produtos de um
// coorte: por receita e por quantidade. Coorte vazio produz listas vazias,
// nunca nil.
type ProductLeaderboards struct {
	ByRevenue  []LeaderboardRow `json:"by_revenue"`
	ByQuantity []LeaderboardRow `json:"by_quantity"`
}
