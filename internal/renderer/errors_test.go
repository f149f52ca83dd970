package renderer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantTimeout bool
	}{
		{"deadline_exceeded", context.DeadlineExceeded, true},
		{"wrapped_deadline", fmt.Errorf("running actions: %w", context.DeadlineExceeded), true},
		{"dns_failure", errors.New("net::ERR_NAME_NOT_RESOLVED"), false},
		{"connection_refused", errors.New("net::ERR_CONNECTION_REFUSED"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("https://example.com", tt.err)

			if IsTimeout(got) != tt.wantTimeout {
				t.Errorf("IsTimeout(%v) = %v, want %v", got, IsTimeout(got), tt.wantTimeout)
			}
			if !tt.wantTimeout {
				var ne *NavigationError
				if !errors.As(got, &ne) {
					t.Errorf("classify() = %T, want NavigationError", got)
				}
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("classify() lost the underlying cause %v", tt.err)
			}
		})
	}
}

func TestErrorMessagesCarryURL(t *testing.T) {
	nav := &NavigationError{URL: "https://a.example.com", Err: errors.New("refused")}
	if got := nav.Error(); got == "" || !strings.Contains(got, "a.example.com") {
		t.Errorf("NavigationError.Error() = %q", got)
	}

	to := &TimeoutError{URL: "https://b.example.com", Err: context.DeadlineExceeded}
	if got := to.Error(); got == "" || !strings.Contains(got, "b.example.com") {
		t.Errorf("TimeoutError.Error() = %q", got)
	}
}

func TestPageClose_Idempotent(t *testing.T) {
	calls := 0
	p := &Page{cancel: func() { calls++ }}

	for i := 0; i < 3; i++ {
		if err := p.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("browser context cancelled %d times, want exactly 1", calls)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"simple", "<html><head><title>Widget Reviews</title></head></html>", "Widget Reviews"},
		{"whitespace", "<html><head><title>\n  Widget  \n</title></head></html>", "Widget"},
		{"missing", "<html><body>no title</body></html>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTitle(tt.html); got != tt.want {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

