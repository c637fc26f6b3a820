package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
)

func TestRequestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusQueued.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusDone.Terminal())
	assert.True(t, StatusError.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestGenRequest_Start(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("moves a queued request into processing", func(t *testing.T) {
		request := &GenRequest{Status: StatusQueued}

		err := request.Start(now)

		assert.NoError(t, err)
		assert.Equal(t, StatusProcessing, request.Status)
		assert.Equal(t, now, *request.StartedAt)
	})

	t.Run("rejects non-queued requests", func(t *testing.T) {
		for _, status := range []RequestStatus{StatusProcessing, StatusDone, StatusError, StatusCancelled} {
			request := &GenRequest{Status: status}

			err := request.Start(now)

			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.Equal(t, status, request.Status)
		}
	})
}

func TestGenRequest_Complete(t *testing.T) {
	startedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	completedAt := startedAt.Add(42 * time.Second)

	t.Run("stores results and derives processing time", func(t *testing.T) {
		request := &GenRequest{Status: StatusProcessing, StartedAt: &startedAt}

		err := request.Complete([]string{"https://cdn.example/a.png"}, []int64{1024}, completedAt)

		assert.NoError(t, err)
		assert.Equal(t, StatusDone, request.Status)
		assert.Equal(t, []string{"https://cdn.example/a.png"}, request.ResultURLs)
		assert.Equal(t, []int64{1024}, request.FileSizes)
		assert.Equal(t, completedAt, *request.CompletedAt)
		assert.InDelta(t, 42.0, request.ProcessingTime, 0.001)
	})

	t.Run("leaves processing time zero when never started", func(t *testing.T) {
		request := &GenRequest{Status: StatusQueued}

		err := request.Complete(nil, nil, completedAt)

		assert.NoError(t, err)
		assert.Zero(t, request.ProcessingTime)
	})

	t.Run("rejects already resolved requests", func(t *testing.T) {
		request := &GenRequest{Status: StatusDone}

		err := request.Complete(nil, nil, completedAt)

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestGenRequest_Fail(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("records the error message", func(t *testing.T) {
		request := &GenRequest{Status: StatusProcessing}

		err := request.Fail("provider timeout", now)

		assert.NoError(t, err)
		assert.Equal(t, StatusError, request.Status)
		assert.Equal(t, "provider timeout", request.ErrorMessage)
		assert.Equal(t, now, *request.CompletedAt)
	})

	t.Run("rejects already resolved requests", func(t *testing.T) {
		request := &GenRequest{Status: StatusCancelled}

		err := request.Fail("too late", now)

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, StatusCancelled, request.Status)
	})
}

func TestGenRequest_Cancel(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("cancels a queued request", func(t *testing.T) {
		request := &GenRequest{Status: StatusQueued}

		err := request.Cancel(now)

		assert.NoError(t, err)
		assert.Equal(t, StatusCancelled, request.Status)
	})

	t.Run("rejects already resolved requests", func(t *testing.T) {
		request := &GenRequest{Status: StatusDone}

		err := request.Cancel(now)

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestNewRunCode(t *testing.T) {
	assert.NotEqual(t, NewRunCode(), NewRunCode())
}
