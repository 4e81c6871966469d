// Package transport provides the resilient HTTP layer used by every tutoring
// backend.
//
// A Transport wraps a base http.RoundTripper and retries a request only when
// the upstream signals throttling (HTTP 429) or the connection itself fails.
// Every other response, including other 4xx and 5xx statuses, is returned to
// the caller on the first attempt. Between attempts the delay grows by a fixed
// ratio, starting from the policy's initial delay, with no jitter.
//
// # Usage
//
//	client := transport.NewClient(transport.DefaultRetryPolicy())
//	resp, err := client.Do(req)
//
// SDK-backed providers receive the same *http.Client with their own retry
// logic disabled, so the policy applies uniformly.
package transport
