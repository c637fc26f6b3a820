package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	domainerr "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/bonus"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/ledger"
	userUseCase "github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/user"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/api/dto"
)

// UserHandler handles user-facing balance and bonus HTTP requests
type UserHandler struct {
	userService   *userUseCase.Service
	ledgerService *ledger.Service
	bonusService  *bonus.Service
	logger        coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userService *userUseCase.Service,
	ledgerService *ledger.Service,
	bonusService *bonus.Service,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userService:   userService,
		ledgerService: ledgerService,
		bonusService:  bonusService,
		logger:        logger,
	}
}

func parseChatID(c *gin.Context) (int64, bool) {
	chatID, err := strconv.ParseInt(c.Param("chatId"), 10, 64)
	if err != nil || chatID == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidChatID),
			Message: "Invalid chat ID format",
		})
		return 0, false
	}
	return chatID, true
}

// GetBalance handles the GET /user/:chatId/balance endpoint. The user and
// their balance are created on first contact.
func (h *UserHandler) GetBalance(c *gin.Context) {
	chatID, ok := parseChatID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetOrCreate(
		c.Request.Context(), chatID, c.Query("username"), c.Query("ref"))
	if err != nil {
		respondError(c, err)
		return
	}

	balance, err := h.ledgerService.EnsureBalance(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:           user.ID,
		ChatID:           user.ChatID,
		Balance:          balance.Balance.StringFixed(entity.TokenDecimalPlaces),
		BonusBalance:     balance.BonusBalance.StringFixed(entity.TokenDecimalPlaces),
		TotalSpent:       balance.TotalSpent.StringFixed(entity.TokenDecimalPlaces),
		TotalDeposited:   balance.TotalDeposited.StringFixed(entity.TokenDecimalPlaces),
		ReferralCode:     balance.ReferralCode,
		ReferralEarnings: balance.ReferralEarnings.StringFixed(entity.TokenDecimalPlaces),
	})
}

// GetTransactions handles the GET /user/:chatId/transactions endpoint
func (h *UserHandler) GetTransactions(c *gin.Context) {
	chatID, ok := parseChatID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByChatID(c.Request.Context(), chatID)
	if err != nil {
		respondError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	transactions, err := h.ledgerService.GetUserTransactions(c.Request.Context(), user.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, dto.TransactionResponse{
			ID:           tx.ID,
			Type:         string(tx.Type),
			Amount:       tx.Amount.StringFixed(entity.TokenDecimalPlaces),
			BalanceAfter: tx.BalanceAfter.StringFixed(entity.TokenDecimalPlaces),
			IsPending:    tx.IsPending,
			IsCompleted:  tx.IsCompleted,
			Description:  tx.Description,
			CreatedAt:    tx.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// Deposit handles the POST /user/:chatId/deposit endpoint. The deposit is
// recorded pending; funds arrive when the payment webhook confirms it.
func (h *UserHandler) Deposit(c *gin.Context) {
	chatID, ok := parseChatID(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	amount, err := entity.ParseTokenAmount(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.GetOrCreate(c.Request.Context(), chatID, "", "")
	if err != nil {
		respondError(c, err)
		return
	}

	tx, err := h.ledgerService.CreateTransaction(c.Request.Context(), ledger.CreateTransactionInput{
		UserID:        user.ID,
		Amount:        amount,
		Type:          entity.TransactionTypeDeposit,
		Description:   "Deposit via " + req.PaymentMethod,
		PaymentMethod: req.PaymentMethod,
		PaymentID:     req.PaymentID,
		Pending:       true,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TransactionResponse{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      tx.Amount.StringFixed(entity.TokenDecimalPlaces),
		IsPending:   tx.IsPending,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	})
}

// ClaimDailyReward handles the POST /user/:chatId/daily-reward endpoint
func (h *UserHandler) ClaimDailyReward(c *gin.Context) {
	chatID, ok := parseChatID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetOrCreate(c.Request.Context(), chatID, "", "")
	if err != nil {
		respondError(c, err)
		return
	}

	tx, streak, err := h.bonusService.ClaimDailyReward(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.DailyRewardResponse{Streak: streak}
	if tx != nil {
		resp.Claimed = true
		resp.Amount = tx.Amount.StringFixed(entity.TokenDecimalPlaces)
	}
	c.JSON(http.StatusOK, resp)
}
