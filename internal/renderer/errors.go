package renderer

import (
	"context"
	"errors"
	"fmt"
)

// NavigationError indicates the target page could not be reached or
// rendered: DNS failures, refused connections, chrome-level load errors.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// TimeoutError indicates the page did not reach a ready state within the
// configured navigation timeout.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out loading %s: %v", e.URL, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// classify maps a raw chromedp error onto the renderer's error taxonomy.
func classify(targetURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{URL: targetURL, Err: err}
	}
	return &NavigationError{URL: targetURL, Err: err}
}

// IsTimeout reports whether err is a renderer timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
