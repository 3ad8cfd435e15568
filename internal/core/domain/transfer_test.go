package domain_test

import (
	"testing"
	"time"

	"github.com/fiterunited/fineract-template/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccountRef(t *testing.T) {
	assert.True(t, domain.LoanAccount(1).IsLoan())
	assert.True(t, domain.SavingsAccount(1).IsSavings())
	assert.False(t, domain.LoanAccount(0).Valid())
	assert.False(t, domain.AccountRef{Kind: "CLIENT", ID: 3}.Valid())
	assert.NotEqual(t, domain.LoanAccount(5), domain.SavingsAccount(5))
	assert.Equal(t, "SAVINGS:9", domain.SavingsAccount(9).String())
}

func TestAccountTransferTransaction_InvolvesLoan(t *testing.T) {
	tr := domain.AccountTransferTransaction{From: domain.LoanAccount(4), To: domain.SavingsAccount(8)}

	assert.True(t, tr.InvolvesLoan(4))
	assert.False(t, tr.InvolvesLoan(8))
	assert.True(t, tr.IsActive())
	tr.Reversed = true
	assert.False(t, tr.IsActive())
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2024, 3, 9, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	next := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, domain.SameCalendarDay(morning, evening))
	assert.False(t, domain.SameCalendarDay(evening, next))
	assert.Equal(t, time.UTC, domain.CalendarDay(evening).Location())
}
