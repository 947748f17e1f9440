package extract

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtractor() *Extractor {
	return New(Options{Retries: 2, RetryBase: time.Millisecond})
}

func TestWithRetryRecoversFromTransientErrors(t *testing.T) {
	attempts := 0
	fn := func(path string) (*int, error) {
		attempts++
		if attempts < 3 {
			return nil, &os.PathError{Op: "read", Path: path, Err: fmt.Errorf("device busy")}
		}
		v := 42
		return &v, nil
	}

	v, err := withRetry(context.Background(), testExtractor(), "/x", fn)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 42, *v)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	attempts := 0
	fn := func(path string) (*int, error) {
		attempts++
		return nil, fmt.Errorf("malformed header")
	}

	_, err := withRetry(context.Background(), testExtractor(), "/x", fn)
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "parse failures must not be retried")
}

func TestWithRetryDoesNotRetryMissingFiles(t *testing.T) {
	attempts := 0
	fn := func(path string) (*int, error) {
		attempts++
		return nil, os.ErrNotExist
	}

	_, err := withRetry(context.Background(), testExtractor(), "/x", fn)
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetryHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	fn := func(path string) (*int, error) {
		attempts++
		cancel()
		return nil, &os.PathError{Op: "read", Path: path, Err: fmt.Errorf("flaky")}
	}

	e := New(Options{Retries: 5, RetryBase: time.Hour})
	_, err := withRetry(ctx, e, "/x", fn)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
