package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/goident/internal/pkg/pkgerror"
)

type listResult struct {
	Items []string `json:"items"`
}

func (listResult) Message() string { return "listed" }
func (listResult) Meta() map[string]any { return map[string]any{"total": 2} }
func (listResult) StatusCode() int { return http.StatusCreated }

func serve(t *testing.T, ro *Router, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestRouterEnvelope(t *testing.T) {
	ro := NewRouter(&staticGenerator{value: "cid-1"})
	ro.GET("/items/:id", func(ctx context.Context, _ *http.Request) (any, error) {
		return listResult{Items: []string{GetParam(ctx, "id"), "b"}}, nil
	})

	rec, out := serve(t, ro, http.MethodGet, "/items/a", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if out["message"] != "listed" {
		t.Fatalf("unexpected message %v", out["message"])
	}
	if out["meta"].(map[string]any)["total"] != float64(2) {
		t.Fatalf("unexpected meta %v", out["meta"])
	}
	items := out["data"].(map[string]any)["items"].([]any)
	if items[0] != "a" {
		t.Fatalf("expected path param in data, got %v", items)
	}
	if got := rec.Header().Get(HeaderCorrelationID); got != "cid-1" {
		t.Fatalf("expected generated correlation id, got %q", got)
	}
}

func TestRouterErrors(t *testing.T) {
	ro := NewRouter(nil)
	ro.GET("/missing", func(context.Context, *http.Request) (any, error) {
		return nil, pkgerror.NewNotFound("uuid not found")
	})
	ro.GET("/invalid", func(context.Context, *http.Request) (any, error) {
		return nil, pkgerror.NewInvalidInput(errors.New("unknown platform"))
	})
	ro.GET("/plain", func(context.Context, *http.Request) (any, error) {
		return nil, errors.New("leaky detail")
	})
	ro.GET("/panic", func(context.Context, *http.Request) (any, error) {
		panic("boom")
	})

	rec, out := serve(t, ro, http.MethodGet, "/missing", "")
	if rec.Code != http.StatusNotFound || out["message"] != "uuid not found" {
		t.Fatalf("unexpected not found response %d %v", rec.Code, out)
	}
	if out["error"].(map[string]any)["code"] != "ERROR_CODE_NOT_FOUND" {
		t.Fatalf("unexpected error detail %v", out["error"])
	}

	rec, out = serve(t, ro, http.MethodGet, "/invalid", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if out["error"].(map[string]any)["detail"] != "unknown platform" {
		t.Fatalf("expected validation detail, got %v", out["error"])
	}

	rec, out = serve(t, ro, http.MethodGet, "/plain", "")
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "leaky") {
		t.Fatalf("unexpected plain error response %d %v", rec.Code, out)
	}

	rec, _ = serve(t, ro, http.MethodGet, "/panic", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}

	rec, out = serve(t, ro, http.MethodGet, "/nowhere", "")
	if rec.Code != http.StatusNotFound || out["message"] != "endpoint not found" {
		t.Fatalf("unexpected 404 response %d %v", rec.Code, out)
	}

	rec, _ = serve(t, ro, http.MethodPost, "/missing", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRouterHealth(t *testing.T) {
	rec, out := serve(t, NewRouter(nil), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || out["message"] != "server is running well" {
		t.Fatalf("unexpected health response %d %v", rec.Code, out)
	}
	if out["data"] != nil {
		t.Fatalf("expected no data, got %v", out["data"])
	}
}

func TestInternalFrames(t *testing.T) {
	stack := "goroutine 1 [running]:\n" +
		"main.main()\n" +
		"\t/src/goident/internal/identity/usecase/derive.go:42 +0x1d\n" +
		"\t/usr/local/go/src/runtime/proc.go:250 +0x2\n"
	frames := internalFrames(stack)
	if len(frames) != 1 || frames[0] != "internal/identity/usecase/derive.go:42" {
		t.Fatalf("unexpected frames %v", frames)
	}
}
