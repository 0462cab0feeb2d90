package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrRateLimited marks a provider response that reported quota
	// exhaustion at the application layer. The fetch executor cools down
	// and retries on it.
	ErrRateLimited = errors.New("provider rate limited")
	// ErrEmptyPayload marks a fetched or cached payload whose response
	// list is empty; the unit of work it belongs to is skipped, never
	// retried within the run.
	ErrEmptyPayload = errors.New("empty provider payload")
	// ErrRetriesExhausted is returned instead of silently dropping a
	// fetch when a bounded retry policy runs out of attempts.
	ErrRetriesExhausted = errors.New("retries exhausted")
)
