package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() so callers can match them with
// errors.Is() while still printing a readable message.
var (
	// ErrNoBaseURL is returned when the base URL is empty.
	ErrNoBaseURL = errors.New("no base URL specified")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Zero is allowed and means no explicit timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidReminderPath is returned when the reminder path does not start with "/".
	ErrInvalidReminderPath = errors.New("invalid reminder path: must start with /")

	// ErrNoReminderEmail is returned when the reminder email is empty.
	ErrNoReminderEmail = errors.New("no reminder email specified")

	// ErrEmptySelector is returned when one of the page selectors is empty.
	ErrEmptySelector = errors.New("empty selector")
)
