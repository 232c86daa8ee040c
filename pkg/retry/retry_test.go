package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/talentmap/talentmap-api/pkg/errors"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		Multiplier:      2,
		RetryableErrors: IsRetryable,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		attempts++
		return errors.New("still down")
	})

	assert.Error(t, err)
	assert.Equal(t, 4, attempts)
}

func TestDo_DomainErrorsAreNotRetried(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		attempts++
		return apperrors.NotFoundError("profile", "p1")
	})

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, 1, attempts)
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	attempts := 0
	v, err := DoWithResult(context.Background(), fastConfig(), "test", func() (int, error) {
		attempts++
		if attempts == 1 {
			return 0, errors.New("timeout")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestDo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, fastConfig(), "test", func() error { return nil })

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(errors.New("io timeout")))
	assert.False(t, IsRetryable(apperrors.StoreConflictError("collaboration", "c1")))
	assert.False(t, IsRetryable(context.DeadlineExceeded))
}
