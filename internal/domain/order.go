package domain

import "time"

// NomeProdutoNaoInformado é o texto exibido quando um item não tem nome de
// produto. O valor em árabe ("não especificado") vem do front-end original.
const NomeProdutoNaoInformado = "غير محدد"

// Order representa um pedido registrado por um representante para uma clínica.
// Registros são imutáveis: o motor de agregação nunca os modifica.
type Order struct {
	ID          string     `json:"id"`
	RepID       string     `json:"rep_id"`
	ClinicID    string     `json:"clinic_id"`
	OrderDate   time.Time  `json:"order_date"`
	Items       []LineItem `json:"items"`
	TotalAmount *float64   `json:"total_amount,omitempty"`
	Total       *float64   `json:"total,omitempty"`
}

// NetTotal resolve o valor do pedido com a cadeia de fallback da origem dos
// dados: total_amount, depois total, depois zero. A normalização acontece
// aqui, uma única vez, em vez de espalhada pelos pontos de uso.
func (o Order) NetTotal() float64 {
	if o.TotalAmount != nil {
		return *o.TotalAmount
	}
	if o.Total != nil {
		return *o.Total
	}
	return 0
}

// LineItem é um item de um pedido. Discount é um percentual por item e não
// participa do ranking de produtos; apenas o total do pedido já vem líquido.
type LineItem struct {
	ProductID   string  `json:"product_id,omitempty"`
	ProductName string  `json:"product_name,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Discount    float64 `json:"discount,omitempty"`
}

// ProductKey resolve a chave de agrupamento do item: product_id, depois
// product_name, depois "unknown".
func (li LineItem) ProductKey() string {
	if li.ProductID != "" {
		return li.ProductID
	}
	if li.ProductName != "" {
		return li.ProductName
	}
	return "unknown"
}

// DisplayName resolve o nome exibido do produto.
func (li LineItem) DisplayName() string {
	if li.ProductName != "" {
		return li.ProductName
	}
	return NomeProdutoNaoInformado
}

// Revenue é a receita do item (preço unitário vezes quantidade).
func (li LineItem) Revenue() float64 {
	return li.UnitPrice * float64(li.Quantity)
}
