package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
)

// Balance is the per-user token balance aggregate. It is the only shared
// mutable resource in the ledger; all writes go through LedgerService under a
// row lock, so these methods never need to synchronize themselves.
//
// BonusBalance is an informational running total of bonus credits ever
// received. It is a subset of Balance, not a separate spendable pool.
type Balance struct {
	UserID           uint64
	Balance          decimal.Decimal
	BonusBalance     decimal.Decimal
	TotalSpent       decimal.Decimal
	TotalDeposited   decimal.Decimal
	ReferralCode     string
	ReferredByID     *uint64
	ReferralEarnings decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewBalance creates a zero balance for the user with a fresh referral code.
func NewBalance(userID uint64, timeProvider coreport.TimeProvider) *Balance {
	now := timeProvider.Now()
	return &Balance{
		UserID:           userID,
		Balance:          decimal.Zero,
		BonusBalance:     decimal.Zero,
		TotalSpent:       decimal.Zero,
		TotalDeposited:   decimal.Zero,
		ReferralCode:     GenerateReferralCode(),
		ReferralEarnings: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// GenerateReferralCode returns a short unique referral code.
func GenerateReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// CanAfford reports whether the balance covers the given cost.
func (b *Balance) CanAfford(cost decimal.Decimal) bool {
	return b.Balance.GreaterThanOrEqual(cost)
}

// ApplyCredit adds a positive amount to the balance and updates the aggregate
// matching the transaction type: deposits grow TotalDeposited, bonuses and
// referrals grow BonusBalance, refunds shrink TotalSpent (floored at zero).
func (b *Balance) ApplyCredit(amount decimal.Decimal, transactionType TransactionType, now time.Time) error {
	if !amount.IsPositive() {
		return errs.ErrInvalidAmount
	}

	b.Balance = b.Balance.Add(amount)
	switch transactionType {
	case TransactionTypeDeposit:
		b.TotalDeposited = b.TotalDeposited.Add(amount)
	case TransactionTypeBonus, TransactionTypeReferral:
		b.BonusBalance = b.BonusBalance.Add(amount)
	case TransactionTypeRefund:
		b.TotalSpent = decimal.Max(b.TotalSpent.Sub(amount), decimal.Zero)
	}
	b.UpdatedAt = now
	return nil
}

// ApplyDebit subtracts a positive amount from the balance and grows
// TotalSpent. Fails without mutation when funds are insufficient.
func (b *Balance) ApplyDebit(amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return errs.ErrInvalidAmount
	}
	if !b.CanAfford(amount) {
		return errs.NewInsufficientBalanceError(b.UserID, b.Balance, amount)
	}

	b.Balance = b.Balance.Sub(amount)
	b.TotalSpent = b.TotalSpent.Add(amount)
	b.UpdatedAt = now
	return nil
}

// AddReferralEarnings records referral income on the referrer's balance.
// The credit itself is applied separately via ApplyCredit.
func (b *Balance) AddReferralEarnings(amount decimal.Decimal, now time.Time) {
	b.ReferralEarnings = b.ReferralEarnings.Add(amount)
	b.UpdatedAt = now
}
