package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	domainerr "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/ledger"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/api/dto"
)

// PaymentHandler handles payment gateway callbacks
type PaymentHandler struct {
	ledgerService *ledger.Service
	logger        coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(ledgerService *ledger.Service, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Webhook handles the POST /payment/webhook endpoint. The gateway verifies
// its own signatures before calling in; duplicate deliveries are safe because
// transaction completion is idempotent.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	tx, err := h.ledgerService.CompleteTransaction(
		c.Request.Context(), req.TransactionID, entity.CompletionStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionResponse{
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
