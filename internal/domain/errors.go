package domain

import "errors"

var (
	// ErrProductNotFound is returned when a source has no record for an id
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSourceUnavailable is returned when a source is not configured
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSearchAPIFailure is returned when the web search API request fails
	ErrSearchAPIFailure = errors.New("search API request failed")

	// ErrGenerativeAPIFailure is returned when the text generation request fails
	ErrGenerativeAPIFailure = errors.New("generative API request failed")

	// ErrMalformedResponse is returned when a source answers with data we cannot use
	ErrMalformedResponse = errors.New("malformed source response")

	// ErrDetailsUnavailable is the only error the detail lookup surfaces
	ErrDetailsUnavailable = errors.New("failed to load product details")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
