package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"desaportal/internal/models"
	"desaportal/internal/session"
)

func withSession(r *http.Request, data *session.Data) *http.Request {
	ctx := context.WithValue(r.Context(), SessionKey, data)
	return r.WithContext(ctx)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	h := RequireAuth(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/articles/x", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message in the envelope")
	}
}

func TestRequireAuthRejectsPending2FA(t *testing.T) {
	h := RequireAuth(okHandler())

	req := withSession(httptest.NewRequest("GET", "/", nil), &session.Data{
		UserID:    uuid.New(),
		Role:      models.RoleAdmin,
		TwoFADone: false,
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 while 2FA is pending", w.Code)
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	h := RequireAuth(okHandler())

	req := withSession(httptest.NewRequest("GET", "/", nil), &session.Data{
		UserID:    uuid.New(),
		Role:      models.RoleEditor,
		TwoFADone: true,
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(okHandler())

	// Editor is rejected.
	req := withSession(httptest.NewRequest("GET", "/", nil), &session.Data{
		UserID: uuid.New(), Role: models.RoleEditor, TwoFADone: true,
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("editor status = %d, want 403", w.Code)
	}

	// Admin passes.
	req = withSession(httptest.NewRequest("GET", "/", nil), &session.Data{
		UserID: uuid.New(), Role: models.RoleAdmin, TwoFADone: true,
	})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}

func TestSessionFromCtxEmpty(t *testing.T) {
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}
