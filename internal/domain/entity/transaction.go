package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeGeneration TransactionType = "generation"
	TransactionTypeBonus      TransactionType = "bonus"
	TransactionTypeReferral   TransactionType = "referral"
	TransactionTypeRefund     TransactionType = "refund"
	TransactionTypeAdmin      TransactionType = "admin"
)

// BonusKind marks promotional transactions that must be granted at most once
// per user. Kept as a dedicated field (with a unique index per user) instead
// of matching description substrings.
type BonusKind string

const (
	BonusKindWelcome        BonusKind = "welcome"
	BonusKindFirstDeposit   BonusKind = "first_deposit"
	BonusKindReferralSignup BonusKind = "referral_signup"
	BonusKindDailyReward    BonusKind = "daily_reward"
)

// CompletionStatus is the terminal status requested for a pending transaction.
type CompletionStatus string

const (
	CompletionStatusCompleted CompletionStatus = "completed"
	CompletionStatusFailed    CompletionStatus = "failed"
)

// Transaction is an append-only ledger entry. Amount is signed: positive
// amounts credit the balance, negative amounts debit it.
//
// A pending transaction holds BalanceAfter at the balance BEFORE application
// (the funds are not yet available); it is corrected when the transaction
// completes. A transaction created non-pending is immediately completed.
type Transaction struct {
	ID                   uint64
	UserID               uint64
	Type                 TransactionType
	Amount               decimal.Decimal
	BalanceAfter         decimal.Decimal
	IsPending            bool
	IsCompleted          bool
	BonusKind            BonusKind
	Description          string
	PaymentMethod        string
	PaymentID            string
	PaymentData          map[string]any
	RelatedTransactionID *uint64
	GenerationRequestID  *uint64
	CreatedAt            time.Time
}

// NewTransaction creates a ledger entry in the pending state.
func NewTransaction(
	userID uint64,
	transactionType TransactionType,
	amount decimal.Decimal,
	description string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if amount.IsZero() {
		return nil, errs.ErrInvalidAmount
	}

	return &Transaction{
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		IsPending:   true,
		CreatedAt:   timeProvider.Now(),
	}, nil
}

// IsCredit reports whether this entry increases the balance.
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// IsDebit reports whether this entry decreases the balance.
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// Resolved reports whether the transaction reached a terminal state.
func (t *Transaction) Resolved() bool {
	return !t.IsPending
}

// MarkCompleted resolves the transaction as applied, recording the balance
// after application.
func (t *Transaction) MarkCompleted(balanceAfter decimal.Decimal) {
	t.IsPending = false
	t.IsCompleted = true
	t.BalanceAfter = balanceAfter
}

// MarkFailed resolves the transaction as never applied.
func (t *Transaction) MarkFailed() {
	t.IsPending = false
	t.IsCompleted = false
}
