package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tastebase/tastebase/internal/auth"
	"github.com/tastebase/tastebase/internal/model"
	"github.com/tastebase/tastebase/internal/repository"
)

type fakeUserFinder struct {
	user *model.User
	err  error
}

func (f *fakeUserFinder) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		identity   *model.Identity
		finder     *fakeUserFinder
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "no identity",
			identity:   nil,
			finder:     &fakeUserFinder{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "admin user",
			identity:   &model.Identity{UserID: "admin-1"},
			finder:     &fakeUserFinder{user: &model.User{ID: "admin-1", IsAdmin: true}},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "regular user",
			identity:   &model.Identity{UserID: "user-1"},
			finder:     &fakeUserFinder{user: &model.User{ID: "user-1", IsAdmin: false}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "user row missing",
			identity:   &model.Identity{UserID: "ghost"},
			finder:     &fakeUserFinder{err: repository.ErrUserNotFound},
			wantStatus: http.StatusForbidden,
		},
		{
			// Fail closed: a store failure must never grant access.
			name:       "store error",
			identity:   &model.Identity{UserID: "user-1"},
			finder:     &fakeUserFinder{err: errors.New("connection reset")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := RequireAdmin(AdminConfig{Logger: discardLogger(), Users: tt.finder})

			nextCalled := false
			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/get_all_users", nil)
			if tt.identity != nil {
				req = req.WithContext(auth.ContextWithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNext {
				t.Errorf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
		})
	}
}
