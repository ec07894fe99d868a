package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func signRequest(req *http.Request, body, secret string, ts int64) {
	timestamp := strconv.FormatInt(ts, 10)
	base := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(base))

	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
}

func echoBodyHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("handler failed to read body: %v", err)
		}
		w.Write(body)
	})
}

func TestSlackAuth_ValidSignature(t *testing.T) {
	const secret = "test-secret"
	const body = "payload=%7B%22type%22%3A%22block_actions%22%7D"

	mw := SlackAuth(secret, slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := mw(echoBodyHandler(t))

	req := httptest.NewRequest(http.MethodPost, "/webhook/slack/interactions", strings.NewReader(body))
	signRequest(req, body, secret, time.Now().Unix())
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	// The body must be restored for downstream form parsing.
	if w.Body.String() != body {
		t.Errorf("expected body to be restored, got %q", w.Body.String())
	}
}

func TestSlackAuth_InvalidSignature(t *testing.T) {
	mw := SlackAuth("test-secret", slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := mw(echoBodyHandler(t))

	req := httptest.NewRequest(http.MethodPost, "/webhook/slack/interactions", strings.NewReader("body"))
	signRequest(req, "body", "wrong-secret", time.Now().Unix())
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestSlackAuth_MissingHeaders(t *testing.T) {
	mw := SlackAuth("test-secret", slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := mw(echoBodyHandler(t))

	req := httptest.NewRequest(http.MethodPost, "/webhook/slack/interactions", strings.NewReader("body"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestSlackAuth_StaleTimestamp(t *testing.T) {
	mw := SlackAuth("test-secret", slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := mw(echoBodyHandler(t))

	req := httptest.NewRequest(http.MethodPost, "/webhook/slack/interactions", strings.NewReader("body"))
	signRequest(req, "body", "test-secret", time.Now().Add(-10*time.Minute).Unix())
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestSlackAuth_NoSecretSkipsVerification(t *testing.T) {
	mw := SlackAuth("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := mw(echoBodyHandler(t))

	req := httptest.NewRequest(http.MethodPost, "/webhook/slack/interactions", strings.NewReader("body"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}
