package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptforge/promptforge/internal/advisor"
	"github.com/promptforge/promptforge/internal/api"
	"github.com/promptforge/promptforge/internal/auth"
	"github.com/promptforge/promptforge/internal/catalog"
	"github.com/promptforge/promptforge/internal/classify"
	"github.com/promptforge/promptforge/internal/generate"
	"github.com/promptforge/promptforge/internal/llm"
	"github.com/promptforge/promptforge/internal/store"
	"github.com/promptforge/promptforge/internal/testutil"
)

// stubCompleter answers every completion with a fixed reply.
type stubCompleter struct{ reply string }

func (s stubCompleter) Complete(context.Context, llm.Request) (string, error) {
	return s.reply, nil
}

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router       http.Handler
	HistoryStore *store.HistoryStore
	TokenStore   *auth.SQLTokenStore
}

type envOptions struct {
	requireToken bool
	completer    llm.Completer
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real stores.
func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	hs := store.NewHistoryStore(db)
	ts := auth.NewSQLTokenStore(db)
	deps := api.Deps{
		Advisor:      advisor.New(classify.Default(), catalog.Default()),
		Generator:    generate.New(opts.completer, "stub"),
		HistoryStore: hs,
		TokenStore:   ts,
	}
	if opts.requireToken {
		deps.BearerAuth = auth.NewBearerTokenMiddleware(ts)
	}
	return &testEnv{Router: api.NewAPIRouter(deps), HistoryStore: hs, TokenStore: ts}
}

// seedToken creates a real API token and returns the plaintext Bearer value.
func seedToken(t *testing.T, env *testEnv) string {
	t.Helper()
	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := env.TokenStore.Create(context.Background(), "test-token", hash, nil); err != nil {
		t.Fatalf("create token: %v", err)
	}
	return plaintext
}

// do sends a request with an optional JSON body and bearer token.
func do(t *testing.T, env *testEnv, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v; body: %s", err, rec.Body.String())
	}
}

func wantError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, status, rec.Body.String())
	}
	var body api.ErrorResponse
	decode(t, rec, &body)
	if body.Code != code {
		t.Errorf("code = %q, want %q", body.Code, code)
	}
	if body.Error == "" {
		t.Error("expected an error message")
	}
}
