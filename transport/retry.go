package transport

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RetryPolicy configures the backoff loop. It is configuration, not runtime
// state: each round trip keeps its own attempt counter and current delay.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first one.
	// Values below 1 mean a single attempt.
	MaxAttempts int

	// InitialDelay is the wait between the first and second attempt.
	InitialDelay time.Duration

	// BackoffMultiplier scales the delay after every retry. Values <= 0 mean 2.
	BackoffMultiplier float64
}

// DefaultRetryPolicy is one call plus five retries, starting at one second and
// doubling.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       6,
		InitialDelay:      time.Second,
		BackoffMultiplier: 2,
	}
}

// Attempts returns the normalized attempt budget.
func (p RetryPolicy) Attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) multiplier() float64 {
	if p.BackoffMultiplier <= 0 {
		return 2
	}
	return p.BackoffMultiplier
}

// Delay returns the wait between attempt k and attempt k+1 (k starts at 1):
// InitialDelay * BackoffMultiplier^(k-1).
func (p RetryPolicy) Delay(k int) time.Duration {
	if k < 1 {
		k = 1
	}
	return time.Duration(float64(p.InitialDelay) * math.Pow(p.multiplier(), float64(k-1)))
}

// SleepFunc waits for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Transport is an http.RoundTripper that retries throttled or failed
// connections according to Policy.
//
// A request whose body cannot be replayed (a non-empty Body with no GetBody)
// is sent exactly once; its outcome is returned without retrying.
// http.NewRequest sets GetBody for bytes, strings and bytes.Buffer readers.
type Transport struct {
	Base   http.RoundTripper
	Policy RetryPolicy
	Sleep  SleepFunc
	Logger zerolog.Logger
}

// New wraps base (http.DefaultTransport when nil) with policy.
func New(base http.RoundTripper, policy RetryPolicy) *Transport {
	return &Transport{
		Base:   base,
		Policy: policy,
		Sleep:  Sleep,
		Logger: zerolog.Nop(),
	}
}

// NewClient returns an *http.Client whose transport retries with policy.
// No client timeout is set; callers bound latency with their context.
func NewClient(policy RetryPolicy) *http.Client {
	return &http.Client{Transport: New(nil, policy)}
}

// RoundTrip implements http.RoundTripper.
//
// When the attempt budget is exhausted the last outcome is returned as is: the
// final 429 response with its body intact, or the final connection error.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	remaining := t.Policy.Attempts()
	delay := t.Policy.InitialDelay
	multiplier := t.Policy.multiplier()
	replayable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil

	for attempt := 1; ; attempt++ {
		attemptReq, err := rewind(req, attempt)
		if err != nil {
			return nil, err
		}

		resp, err := t.base().RoundTrip(attemptReq)
		remaining--

		if !retryable(resp, err) || remaining <= 0 || !replayable {
			return resp, err
		}

		t.Logger.Debug().
			Int("attempt", attempt).
			Int("remaining", remaining).
			Dur("delay", delay).
			Str("reason", reason(resp, err)).
			Msg("retrying upstream request")

		discard(resp)

		if err := t.sleep()(ctx, delay); err != nil {
			return nil, err
		}
		delay = time.Duration(float64(delay) * multiplier)
	}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) sleep() SleepFunc {
	if t.Sleep != nil {
		return t.Sleep
	}
	return Sleep
}

// retryable reports whether the outcome is transient throttling or a
// connection-level failure.
func retryable(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && resp.StatusCode == http.StatusTooManyRequests
}

func reason(resp *http.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	return resp.Status
}

// rewind returns the request to send for the given attempt. The first attempt
// uses req itself; later attempts get a clone with a fresh body.
func rewind(req *http.Request, attempt int) (*http.Request, error) {
	if attempt == 1 || req.GetBody == nil {
		return req, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone := req.Clone(req.Context())
	clone.Body = body
	return clone, nil
}

// discard drains and closes a response that is about to be retried so the
// underlying connection can be reused.
func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

// IsThrottled reports whether resp is a 429 that survived the retry budget.
func IsThrottled(resp *http.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusTooManyRequests
}
