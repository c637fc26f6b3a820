package generation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
)

func queuedRequest(id uint64) *entity.GenRequest {
	transactionID := uint64(9)
	return &entity.GenRequest{
		ID:            id,
		RunCode:       "run-abc",
		UserID:        42,
		ChatID:        123456,
		ModelID:       1,
		ModelSlug:     "nano-banana",
		Quantity:      2,
		Cost:          decimal.RequireFromString("3.12"),
		Status:        entity.StatusQueued,
		TransactionID: &transactionID,
		CreatedAt:     fixedTime.Add(-time.Minute),
	}
}

func TestService_StartGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("moves a queued request into processing", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)
		f.requestRepo.On("Update", mock.Anything, request).Return(nil)

		got, err := f.service.StartGeneration(ctx, 55)

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusProcessing, got.Status)
		assert.Equal(t, fixedTime, *got.StartedAt)
	})

	t.Run("rejects a request that is not queued", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)
		request.Status = entity.StatusDone

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)

		_, err := f.service.StartGeneration(ctx, 55)

		assert.ErrorIs(t, err, errs.ErrValidation)
		f.requestRepo.AssertNotCalled(t, "Update")
	})

	t.Run("propagates a missing request", func(t *testing.T) {
		f := newGenerationFixture()

		f.requestRepo.On("GetByID", mock.Anything, uint64(99)).Return(nil, errs.ErrRequestNotFound)

		_, err := f.service.StartGeneration(ctx, 99)

		assert.ErrorIs(t, err, errs.ErrRequestNotFound)
	})
}

func TestService_CompleteGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("stores results, folds model statistics and awards experience", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)
		startedAt := fixedTime.Add(-30 * time.Second)
		request.Status = entity.StatusProcessing
		request.StartedAt = &startedAt

		model := nanoBananaModel()
		model.TotalGenerations = 1
		settings := &entity.UserSettings{UserID: 42}

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)
		f.requestRepo.On("Update", mock.Anything, request).Return(nil)
		f.modelRepo.On("GetByID", mock.Anything, uint64(1)).Return(model, nil)
		f.modelRepo.On("UpdateStatistics", mock.Anything, model).Return(nil)
		f.settingsRepo.On("GetOrCreate", mock.Anything, uint64(42)).Return(settings, nil)
		f.settingsRepo.On("Update", mock.Anything, settings).Return(nil)

		got, err := f.service.CompleteGeneration(ctx, 55, CompleteInput{
			ResultURLs: []string{"https://cdn.example/a.png", "https://cdn.example/b.png"},
			FileSizes:  []int64{1024, 2048},
		})

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusDone, got.Status)
		assert.InDelta(t, 30.0, got.ProcessingTime, 0.001)
		assert.InDelta(t, 30.0, model.AverageGenerationTime, 0.001)
		// 10 XP per generated unit
		assert.Equal(t, 20, settings.ExperiencePoints)
	})

	t.Run("skips model statistics when the request never started", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)
		settings := &entity.UserSettings{UserID: 42}

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)
		f.requestRepo.On("Update", mock.Anything, request).Return(nil)
		f.settingsRepo.On("GetOrCreate", mock.Anything, uint64(42)).Return(settings, nil)
		f.settingsRepo.On("Update", mock.Anything, settings).Return(nil)

		_, err := f.service.CompleteGeneration(ctx, 55, CompleteInput{})

		assert.NoError(t, err)
		f.modelRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("rejects an already resolved request", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)
		request.Status = entity.StatusCancelled

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)

		_, err := f.service.CompleteGeneration(ctx, 55, CompleteInput{})

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestService_FailGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("records the error and refunds the charge", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)
		request.Status = entity.StatusProcessing

		model := nanoBananaModel()
		requestID := request.ID
		original := &entity.Transaction{
			ID:                  9,
			UserID:              42,
			Type:                entity.TransactionTypeGeneration,
			Amount:              decimal.RequireFromString("-3.12"),
			GenerationRequestID: &requestID,
		}
		balance := &entity.Balance{
			UserID:     42,
			Balance:    decimal.RequireFromString("96.88"),
			TotalSpent: decimal.RequireFromString("3.12"),
		}

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)
		f.requestRepo.On("Update", mock.Anything, request).Return(nil)
		f.modelRepo.On("GetByID", mock.Anything, uint64(1)).Return(model, nil)
		f.modelRepo.On("UpdateStatistics", mock.Anything, model).Return(nil)
		f.txRepo.On("GetByID", mock.Anything, uint64(9)).Return(original, nil)
		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(42)).Return(balance, nil)
		f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)

		var refund *entity.Transaction
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) {
				refund = args.Get(1).(*entity.Transaction)
			}).
			Return(nil)

		got, err := f.service.FailGeneration(ctx, 55, "provider timeout", true)

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusError, got.Status)
		assert.Equal(t, "provider timeout", got.ErrorMessage)
		assert.Equal(t, uint64(1), model.TotalErrors)

		assert.NotNil(t, refund)
		assert.Equal(t, entity.TransactionTypeRefund, refund.Type)
		assert.Equal(t, "3.12", refund.Amount.StringFixed(2))
		assert.Equal(t, "100.00", balance.Balance.StringFixed(2))
	})

	t.Run("skips the refund when not requested", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)
		model := nanoBananaModel()

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)
		f.requestRepo.On("Update", mock.Anything, request).Return(nil)
		f.modelRepo.On("GetByID", mock.Anything, uint64(1)).Return(model, nil)
		f.modelRepo.On("UpdateStatistics", mock.Anything, model).Return(nil)

		_, err := f.service.FailGeneration(ctx, 55, "provider timeout", false)

		assert.NoError(t, err)
		f.txRepo.AssertNotCalled(t, "GetByID")
		f.txRepo.AssertNotCalled(t, "Create")
	})

	t.Run("tolerates a request without a linked charge", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)
		request.TransactionID = nil
		model := nanoBananaModel()

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)
		f.requestRepo.On("Update", mock.Anything, request).Return(nil)
		f.modelRepo.On("GetByID", mock.Anything, uint64(1)).Return(model, nil)
		f.modelRepo.On("UpdateStatistics", mock.Anything, model).Return(nil)

		_, err := f.service.FailGeneration(ctx, 55, "provider timeout", true)

		assert.NoError(t, err)
		f.txRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestService_CancelGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels a queued request with a refund", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)

		original := &entity.Transaction{
			ID:     9,
			UserID: 42,
			Type:   entity.TransactionTypeGeneration,
			Amount: decimal.RequireFromString("-3.12"),
		}
		balance := &entity.Balance{
			UserID:     42,
			Balance:    decimal.RequireFromString("96.88"),
			TotalSpent: decimal.RequireFromString("3.12"),
		}

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)
		f.requestRepo.On("Update", mock.Anything, request).Return(nil)
		f.txRepo.On("GetByID", mock.Anything, uint64(9)).Return(original, nil)
		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, uint64(42)).Return(balance, nil)
		f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		got, err := f.service.CancelGeneration(ctx, 55, true)

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusCancelled, got.Status)
		assert.Equal(t, "100.00", balance.Balance.StringFixed(2))
	})

	t.Run("rejects an already resolved request", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)
		request.Status = entity.StatusDone

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)

		_, err := f.service.CancelGeneration(ctx, 55, true)

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestService_RetryFailedGeneration(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a fresh charged request linked to the failed one", func(t *testing.T) {
		f := newGenerationFixture()
		failed := queuedRequest(55)
		failed.Status = entity.StatusError
		failed.Prompt = "a banana on the moon"
		failed.GenerationType = entity.GenerationTypeText2Image

		balance := &entity.Balance{UserID: 42, Balance: decimal.RequireFromString("100.00")}
		f.expectSuccessfulCreate(42, balance)

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(failed, nil)
		f.modelRepo.On("GetByID", mock.Anything, uint64(1)).Return(nanoBananaModel(), nil)

		retried, err := f.service.RetryFailedGeneration(ctx, 55)

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusQueued, retried.Status)
		assert.Equal(t, failed.ID, *retried.ParentRequestID)
		assert.Equal(t, failed.Prompt, retried.Prompt)
		assert.NotEqual(t, failed.RunCode, retried.RunCode)
	})

	t.Run("only failed requests can be retried", func(t *testing.T) {
		f := newGenerationFixture()
		request := queuedRequest(55)

		f.requestRepo.On("GetByID", mock.Anything, uint64(55)).Return(request, nil)

		_, err := f.service.RetryFailedGeneration(ctx, 55)

		assert.ErrorIs(t, err, errs.ErrValidation)
		f.txRepo.AssertNotCalled(t, "Create")
	})
}
