package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	domainerr "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/port/persistence"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/generation"
	userUseCase "github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/user"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/api/dto"
)

// GenerationHandler handles generation lifecycle HTTP requests
type GenerationHandler struct {
	generationService *generation.Service
	userService       *userUseCase.Service
	uow               persistence.UnitOfWork
	logger            coreport.Logger
}

// NewGenerationHandler creates a new generation handler instance
func NewGenerationHandler(
	generationService *generation.Service,
	userService *userUseCase.Service,
	uow persistence.UnitOfWork,
	logger coreport.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		userService:       userService,
		uow:               uow,
		logger:            logger,
	}
}

func generationToResponse(r *entity.GenRequest) dto.GenerationResponse {
	return dto.GenerationResponse{
		ID:             r.ID,
		RunCode:        r.RunCode,
		UserID:         r.UserID,
		ChatID:         r.ChatID,
		Model:          r.ModelSlug,
		Status:         string(r.Status),
		Quantity:       r.Quantity,
		Cost:           r.Cost.StringFixed(entity.TokenDecimalPlaces),
		CostUSD:        r.CostUSD.StringFixed(entity.UsdDecimalPlaces),
		ResultURLs:     r.ResultURLs,
		ErrorMessage:   r.ErrorMessage,
		ProcessingTime: r.ProcessingTime,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
}

func parseRequestID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request ID format",
		})
		return 0, false
	}
	return id, true
}

// Create handles the POST /generation endpoint
func (h *GenerationHandler) Create(c *gin.Context) {
	var req dto.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	user, err := h.userService.GetOrCreate(c.Request.Context(), req.ChatID, req.Username, "")
	if err != nil {
		respondError(c, err)
		return
	}

	model, err := h.uow.GetModelRepository(c.Request.Context()).GetBySlug(c.Request.Context(), req.Model)
	if err != nil {
		respondError(c, err)
		return
	}

	request, err := h.generationService.CreateGenerationRequest(c.Request.Context(), generation.CreateRequestInput{
		UserID:           user.ID,
		ChatID:           req.ChatID,
		Model:            model,
		Prompt:           req.Prompt,
		Quantity:         req.Quantity,
		GenerationType:   req.GenerationType,
		InputImages:      req.InputImages,
		GenerationParams: req.GenerationParams,
		Duration:         req.Duration,
		VideoResolution:  req.VideoResolution,
		AspectRatio:      req.AspectRatio,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, generationToResponse(request))
}

// Start handles the POST /generation/:id/start endpoint
func (h *GenerationHandler) Start(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}

	request, err := h.generationService.StartGeneration(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generationToResponse(request))
}

// Complete handles the POST /generation/:id/complete endpoint
func (h *GenerationHandler) Complete(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}

	var req dto.CompleteGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	request, err := h.generationService.CompleteGeneration(c.Request.Context(), id, generation.CompleteInput{
		ResultURLs: req.ResultURLs,
		FileSizes:  req.FileSizes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generationToResponse(request))
}

// Fail handles the POST /generation/:id/fail endpoint
func (h *GenerationHandler) Fail(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}

	var req dto.FailGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	// Failed runs refund unless the worker says otherwise
	refund := true
	if req.Refund != nil {
		refund = *req.Refund
	}

	request, err := h.generationService.FailGeneration(c.Request.Context(), id, req.ErrorMessage, refund)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generationToResponse(request))
}

// Cancel handles the POST /generation/:id/cancel endpoint
func (h *GenerationHandler) Cancel(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}

	var req dto.CancelGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	refund := true
	if req.Refund != nil {
		refund = *req.Refund
	}

	request, err := h.generationService.CancelGeneration(c.Request.Context(), id, refund)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generationToResponse(request))
}

// Retry handles the POST /generation/:id/retry endpoint
func (h *GenerationHandler) Retry(c *gin.Context) {
	id, ok := parseRequestID(c)
	if !ok {
		return
	}

	request, err := h.generationService.RetryFailedGeneration(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, generationToResponse(request))
}

// Queue handles the GET /generation/queue endpoint for the worker
func (h *GenerationHandler) Queue(c *gin.Context) {
	requests, err := h.generationService.GetPendingGenerations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.GenerationResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, generationToResponse(r))
	}
	c.JSON(http.StatusOK, responses)
}

// History handles the GET /user/:chatId/generations endpoint
func (h *GenerationHandler) History(c *gin.Context) {
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
	requests, err := h.generationService.GetUserGenerations(c.Request.Context(), user.ID, persistence.GenRequestFilter{
		Status:         entity.RequestStatus(c.Query("status")),
		GenerationType: c.Query("type"),
		Limit:          limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.GenerationResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, generationToResponse(r))
	}
	c.JSON(http.StatusOK, responses)
}
