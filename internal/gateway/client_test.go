package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return New(Config{
		BaseURL:        ts.URL,
		AnonKey:        "anon-key",
		ServiceRoleKey: "service-key",
	})
}

func TestVerifyToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("path = %q, want /auth/v1/user", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer good-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("apikey = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "user-1", "email": "a@b.com"})
	})

	identity, err := client.VerifyToken(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if identity.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", identity.UserID)
	}
	if identity.Email != "a@b.com" {
		t.Errorf("Email = %q, want a@b.com", identity.Email)
	}
}

func TestVerifyTokenRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"msg": "token is expired"})
	})

	_, err := client.VerifyToken(context.Background(), "expired-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
	if !strings.Contains(err.Error(), "token is expired") {
		t.Errorf("error %q should carry gateway detail", err)
	}
}

func TestVerifyTokenEmptySubject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"email": "a@b.com"})
	})

	_, err := client.VerifyToken(context.Background(), "weird-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("error = %v, want ErrInvalidToken", err)
	}
}

func TestSignUp(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/signup" {
			t.Errorf("path = %q, want /auth/v1/signup", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "new@b.com" {
			t.Errorf("email = %q", body["email"])
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "user-2", "email": "new@b.com"})
	})

	identity, err := client.SignUp(context.Background(), "new@b.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if identity.UserID != "user-2" {
		t.Errorf("UserID = %q, want user-2", identity.UserID)
	}
}

func TestSignUpRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"msg": "password too weak"})
	})

	_, err := client.SignUp(context.Background(), "new@b.com", "123")
	if !errors.Is(err, ErrSignUpRejected) {
		t.Fatalf("error = %v, want ErrSignUpRejected", err)
	}
	if !strings.Contains(err.Error(), "password too weak") {
		t.Errorf("error %q should carry gateway detail", err)
	}
}

func TestSignInWithPassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("path = %q, want /auth/v1/token", r.URL.Path)
		}
		if got := r.URL.Query().Get("grant_type"); got != "password" {
			t.Errorf("grant_type = %q, want password", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "jwt-token",
			"user":         map[string]string{"id": "user-1"},
		})
	})

	session, err := client.SignInWithPassword(context.Background(), "a@b.com", "hunter22")
	if err != nil {
		t.Fatalf("SignInWithPassword() error = %v", err)
	}
	if session.AccessToken != "jwt-token" {
		t.Errorf("AccessToken = %q", session.AccessToken)
	}
	if session.UserID != "user-1" {
		t.Errorf("UserID = %q", session.UserID)
	}
}

func TestSignInInvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
	})

	_, err := client.SignInWithPassword(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAdminUpdatePassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %q, want PUT", r.Method)
		}
		if r.URL.Path != "/auth/v1/admin/users/user-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "service-key" {
			t.Errorf("apikey = %q, want service-key", got)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.AdminUpdatePassword(context.Background(), "user-1", "newpass"); err != nil {
		t.Fatalf("AdminUpdatePassword() error = %v", err)
	}
}

func TestAdminDeleteUserNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"msg": "user not found"})
	})

	err := client.AdminDeleteUser(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("error = %v, want ErrUserNotFound", err)
	}
}

func TestReadErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"msg field", `{"msg":"token expired"}`, "token expired"},
		{"message field", `{"message":"bad request"}`, "bad request"},
		{"error_description", `{"error_description":"invalid grant"}`, "invalid grant"},
		{"error field", `{"error":"server_error"}`, "server_error"},
		{"msg wins over error", `{"msg":"first","error":"second"}`, "first"},
		{"not json", `plain text error`, "plain text error"},
		{"empty", ``, "no detail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readErrorDetail(strings.NewReader(tt.body))
			if got != tt.want {
				t.Errorf("readErrorDetail() = %q, want %q", got, tt.want)
			}
		})
	}
}
