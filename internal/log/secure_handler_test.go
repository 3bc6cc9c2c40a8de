package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// TestSecureHandler_SanitizesSensitiveKeys tests that credential keys are replaced.
func TestSecureHandler_SanitizesSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{
			name:     "cookie key is sanitized",
			key:      "cookie",
			value:    "session=abc123",
			wantMask: true,
		},
		{
			name:     "Cookie key (uppercase) is sanitized",
			key:      "Cookie",
			value:    "session=abc123",
			wantMask: true,
		},
		{
			name:     "authorization key is sanitized",
			key:      "authorization",
			value:    "Bearer token123",
			wantMask: true,
		},
		{
			name:     "x-api-key header is sanitized",
			key:      "x-api-key",
			value:    "apikey123",
			wantMask: true,
		},
		{
			name:     "url key is not sanitized",
			key:      "url",
			value:    "http://shop.test/months/march",
			wantMask: false,
		},
		{
			name:     "month key is not sanitized",
			key:      "month",
			value:    "March",
			wantMask: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, true)
			logger.Info("test", tt.key, tt.value)

			output := buf.String()
			if tt.wantMask {
				if strings.Contains(output, tt.value) {
					t.Errorf("expected value to be masked, but found in output: %s", output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("expected mask value in output, but not found: %s", output)
				}
			} else if !strings.Contains(output, tt.value) {
				t.Errorf("expected value %q to be present in output, but not found: %s", tt.value, output)
			}
		})
	}
}

// TestSecureHandler_MasksEmails tests partial masking of email addresses.
func TestSecureHandler_MasksEmails(t *testing.T) {
	t.Parallel()

	t.Run("email key is partially masked", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)
		logger.Info("posting reminder", "email", "test153928647@gmail.com")

		output := buf.String()
		if strings.Contains(output, "test153928647") {
			t.Errorf("expected local part to be masked: %s", output)
		}
		if !strings.Contains(output, "t***@gmail.com") {
			t.Errorf("expected masked address in output: %s", output)
		}
	})

	t.Run("embedded address in value is masked", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)
		logger.Info("request", "body", "email=qa.team@shop.test")

		output := buf.String()
		if strings.Contains(output, "qa.team@") {
			t.Errorf("expected address to be masked: %s", output)
		}
		if !strings.Contains(output, "q***@shop.test") {
			t.Errorf("expected masked address in output: %s", output)
		}
	})

	t.Run("address inside error is masked", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)
		logger.Warn("post failed", "error", errors.New("rejected user@example.com"))

		output := buf.String()
		if strings.Contains(output, "user@example.com") {
			t.Errorf("expected address in error to be masked: %s", output)
		}
	})

	t.Run("address in message is masked", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)
		logger.Info("sending to someone@example.com")

		if strings.Contains(buf.String(), "someone@example.com") {
			t.Errorf("expected address in message to be masked: %s", buf.String())
		}
	})
}

// TestMaskEmails tests the string masking helper directly.
func TestMaskEmails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"test153928647@gmail.com", "t***@gmail.com"},
		{"email=a@b.io&x=1", "email=a***@b.io&x=1"},
		{"no address here", "no address here"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := MaskEmails(tt.in); got != tt.want {
			t.Errorf("MaskEmails(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestSecureHandler_LogLevels tests that log levels are respected.
func TestSecureHandler_LogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		verbose    bool
		logLevel   slog.Level
		shouldShow bool
	}{
		{"debug message shown in verbose mode", true, slog.LevelDebug, true},
		{"debug message hidden in non-verbose mode", false, slog.LevelDebug, false},
		{"info message hidden in non-verbose mode", false, slog.LevelInfo, false},
		{"warn message shown in non-verbose mode", false, slog.LevelWarn, true},
		{"error message shown in non-verbose mode", false, slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, tt.verbose)

			testMsg := "test_unique_message_12345"
			logger.Log(t.Context(), tt.logLevel, testMsg)

			hasMessage := strings.Contains(buf.String(), testMsg)
			if tt.shouldShow && !hasMessage {
				t.Errorf("expected message to be shown, but not found in output: %s", buf.String())
			}
			if !tt.shouldShow && hasMessage {
				t.Errorf("expected message to be hidden, but found in output: %s", buf.String())
			}
		})
	}
}

// TestSecureHandler_WithAttrs tests that WithAttrs sanitizes attributes.
func TestSecureHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, true)

	childLogger := logger.With("cookie", "session=secret123")
	childLogger.Info("test message")

	output := buf.String()
	if strings.Contains(output, "secret123") {
		t.Errorf("expected cookie to be masked in WithAttrs, but found in output: %s", output)
	}
}

// TestSecureHandler_WithGroup tests that grouped attributes are sanitized.
func TestSecureHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, true)

	groupLogger := logger.WithGroup("request")
	groupLogger.Info("test message", "url", "http://shop.test/remind", "cookie", "session=abc")

	output := buf.String()
	if !strings.Contains(output, "http://shop.test/remind") {
		t.Errorf("expected url to be visible, but not found in output: %s", output)
	}
	if strings.Contains(output, "session=abc") {
		t.Errorf("expected cookie to be masked, but found in output: %s", output)
	}
}

// TestNewSecureHandler_NilHandler tests fallback to the default handler.
func TestNewSecureHandler_NilHandler(t *testing.T) {
	t.Parallel()

	h := NewSecureHandler(nil)
	if h.handler == nil {
		t.Error("expected default handler to be used")
	}
}
