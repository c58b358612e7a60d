package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mafiaidolaa/medicalrep-sub003/internal/domain"
)

func limit(v float64) *float64 { return &v }

func TestClassifyCredit(t *testing.T) {
	tests := []struct {
		name        string
		debt        float64
		creditLimit *float64
		expected    domain.CreditStatus
	}{
		{name: "sem limite configurado", debt: 5000, creditLimit: nil, expected: domain.CreditNone},
		{name: "limite zero", debt: 5000, creditLimit: limit(0), expected: domain.CreditNone},
		{name: "limite negativo", debt: 5000, creditLimit: limit(-100), expected: domain.CreditNone},
		{name: "utilização baixa", debt: 100, creditLimit: limit(1000), expected: domain.CreditGood},
		{name: "logo abaixo de 50%", debt: 499.99, creditLimit: limit(1000), expected: domain.CreditGood},
		{name: "exatamente 50%", debt: 500, creditLimit: limit(1000), expected: domain.CreditCaution},
		{name: "exatamente 70%", debt: 700, creditLimit: limit(1000), expected: domain.CreditWarning},
		{name: "85% fica em warning", debt: 850, creditLimit: limit(1000), expected: domain.CreditWarning},
		{name: "exatamente 90%", debt: 900, creditLimit: limit(1000), expected: domain.CreditDanger},
		{name: "acima do limite", debt: 1500, creditLimit: limit(1000), expected: domain.CreditDanger},
		{name: "dívida zero", debt: 0, creditLimit: limit(1000), expected: domain.CreditGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ClassifyCredit(tt.debt, tt.creditLimit))
		})
	}
}

func TestClassifyCreditMonotonic(t *testing.T) {
	// Com o mesmo limite, mais dívida nunca reduz a severidade
	creditLimit := limit(1000)

	previous := domain.ClassifyCredit(0, creditLimit)
	for debt := 50.0; debt <= 1200; debt += 50 {
		current := domain.ClassifyCredit(debt, creditLimit)
		assert.GreaterOrEqual(t, current.Severity(), previous.Severity(),
			"severidade regrediu com dívida %.0f", debt)
		previous = current
	}
}

func TestCreditUtilization(t *testing.T) {
	assert.Equal(t, 0.0, domain.CreditUtilization(500, nil))
	assert.Equal(t, 0.0, domain.CreditUtilization(500, limit(0)))
	assert.Equal(t, 50.0, domain.CreditUtilization(500, limit(1000)))
	assert.Equal(t, 150.0, domain.CreditUtilization(1500, limit(1000)))
}

func TestWouldExceed(t *testing.T) {
	assert.False(t, domain.WouldExceed(5000, nil))
	assert.False(t, domain.WouldExceed(999.99, limit(1000)))
	// Atingir 100% já bloqueia
	assert.True(t, domain.WouldExceed(1000, limit(1000)))
	assert.True(t, domain.WouldExceed(1500, limit(1000)))
}
