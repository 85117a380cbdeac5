package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/rma-portal/internal/auth"
)

type stubArchiver struct {
	count int
	err   error
	runs  int
}

func (s *stubArchiver) ArchiveOldTickets(ctx context.Context) (int, error) {
	s.runs++
	return s.count, s.err
}

func newCronApp(archiver *stubArchiver, secret string) *fiber.App {
	app := fiber.New()
	schedulerAuth := auth.NewSchedulerAuth(secret)
	handler := NewCronHandler(archiver, zap.NewNop())
	app.Post("/api/cron/archive-tickets", schedulerAuth.Handle, handler.ArchiveTickets)
	return app
}

func doCron(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/cron/archive-tickets", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return resp, body
}

func TestCronArchiveSuccess(t *testing.T) {
	archiver := &stubArchiver{count: 3}
	app := newCronApp(archiver, "s3cret")

	resp, body := doCron(t, app, "Bearer s3cret")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["success"] != true {
		t.Fatalf("expected success=true, got %v", body)
	}
	if body["archivedCount"] != float64(3) {
		t.Fatalf("expected archivedCount=3, got %v", body["archivedCount"])
	}
	if _, ok := body["timestamp"].(string); !ok {
		t.Fatalf("missing timestamp: %v", body)
	}
}

func TestCronArchiveRejectsBadSecret(t *testing.T) {
	for _, header := range []string{"", "Bearer wrong", "Basic s3cret", "s3cret"} {
		archiver := &stubArchiver{count: 3}
		app := newCronApp(archiver, "s3cret")

		resp, body := doCron(t, app, header)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.StatusCode)
		}
		if body["error"] != "Unauthorized" {
			t.Fatalf("header %q: unexpected body %v", header, body)
		}
		if archiver.runs != 0 {
			t.Fatalf("header %q: unauthorized request reached the archiver", header)
		}
	}
}

func TestCronArchiveRejectsWhenSecretUnset(t *testing.T) {
	archiver := &stubArchiver{}
	app := newCronApp(archiver, "")

	resp, _ := doCron(t, app, "Bearer anything")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with unset secret, got %d", resp.StatusCode)
	}
	if archiver.runs != 0 {
		t.Fatal("request reached the archiver with no secret configured")
	}
}

func TestCronArchiveFailure(t *testing.T) {
	archiver := &stubArchiver{err: errors.New("store unavailable")}
	app := newCronApp(archiver, "s3cret")

	resp, body := doCron(t, app, "Bearer s3cret")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body)
	}
	if body["error"] != "store unavailable" {
		t.Fatalf("error detail missing: %v", body)
	}
}
