package transcribe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

const defaultMaxAttempts = 4

// retryableStatus reports whether an HTTP status is worth another attempt:
// rate limits and server-side failures are, client errors are not.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// permanentError classifies provider failures. Anything carrying an HTTP
// status outside the retryable set will not improve on retry; unclassified
// errors (timeouts, connection resets) stay retryable.
func permanentError(err error) bool {
	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return !retryableStatus(openaiErr.StatusCode)
	}

	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return !retryableStatus(geminiErr.Code)
	}

	var scribeErr *elevenLabsError
	if errors.As(err, &scribeErr) {
		return !retryableStatus(scribeErr.status)
	}

	return false
}

// withRetry runs op with bounded attempts and exponential backoff, and a
// fresh per-attempt deadline when RequestTimeout is set. Permanent failures
// stop immediately.
func withRetry(
	ctx context.Context,
	opts Options,
	op func(ctx context.Context) error,
) error {
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second
	policy.MaxInterval = 30 * time.Second

	attempt := func() error {
		attemptCtx := ctx
		if opts.RequestTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, opts.RequestTimeout)
			defer cancel()
		}

		err := op(attemptCtx)
		if err == nil {
			return nil
		}
		if permanentError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(
		attempt,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx),
	)
}
