package dto

// BalanceResponse represents the API response for a user's balance snapshot
type BalanceResponse struct {
	UserID           uint64 `json:"userId"`
	ChatID           int64  `json:"chatId"`
	Balance          string `json:"balance"`
	BonusBalance     string `json:"bonusBalance"`
	TotalSpent       string `json:"totalSpent"`
	TotalDeposited   string `json:"totalDeposited"`
	ReferralCode     string `json:"referralCode"`
	ReferralEarnings string `json:"referralEarnings"`
}

// TransactionResponse represents one ledger entry in API responses
type TransactionResponse struct {
	ID           uint64 `json:"id"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balanceAfter"`
	IsPending    bool   `json:"isPending"`
	IsCompleted  bool   `json:"isCompleted"`
	Description  string `json:"description"`
	CreatedAt    string `json:"createdAt"`
}

// DepositRequest represents the API request to start a pending deposit
type DepositRequest struct {
	Amount        string `json:"amount" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PaymentID     string `json:"paymentId"`
}

// WebhookRequest represents the payment gateway callback payload
type WebhookRequest struct {
	TransactionID uint64 `json:"transactionId" binding:"required"`
	Status        string `json:"status" binding:"required,oneof=completed failed"`
}

// DailyRewardResponse represents the result of a daily reward claim
type DailyRewardResponse struct {
	Claimed bool   `json:"claimed"`
	Amount  string `json:"amount,omitempty"`
	Streak  int    `json:"streak"`
}
