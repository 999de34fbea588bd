package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rogerio-castellano/commerce-admin/internal/http"
	handler "github.com/rogerio-castellano/commerce-admin/internal/http/handlers"
)

func registerCustomer(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()

	body, _ := json.Marshal(handler.CredentialsRequest{Email: email, Password: password, Name: "Test Buyer"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created registering %s, got %d: %s", email, w.Code, w.Body.String())
	}

	var resp handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding register response: %v", err)
	}
	return resp.Token
}

func TestRegisterHandler(t *testing.T) {
	resetRateLimiter()
	r := api.NewRouter()

	token := registerCustomer(t, r, "newbie@example.com", "password123")
	if token == "" {
		t.Fatal("expected a token for the new user")
	}

	// registering the same email again conflicts
	body, _ := json.Marshal(handler.CredentialsRequest{Email: "newbie@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d", w.Code)
	}
}

func TestRegisterHandler_Invalid(t *testing.T) {
	resetRateLimiter()
	r := api.NewRouter()

	tests := []struct {
		name    string
		payload handler.CredentialsRequest
	}{
		{"Missing email", handler.CredentialsRequest{Password: "password123"}},
		{"Missing password", handler.CredentialsRequest{Email: "a@example.com"}},
		{"Not an email", handler.CredentialsRequest{Email: "not-an-email", Password: "password123"}},
		{"Short password", handler.CredentialsRequest{Email: "a@example.com", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.payload)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 Bad Request, got %d", w.Code)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	resetRateLimiter()
	r := api.NewRouter()

	body, _ := json.Marshal(handler.CredentialsRequest{Email: "admin@example.com", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Fatalf("expected both token and refresh token, got %+v", resp)
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	resetRateLimiter()
	r := api.NewRouter()

	body, _ := json.Marshal(handler.CredentialsRequest{Email: "admin@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestRefreshHandler(t *testing.T) {
	resetRateLimiter()
	r := api.NewRouter()

	body, _ := json.Marshal(handler.CredentialsRequest{Email: "admin@example.com", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var login handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&login); err != nil {
		t.Fatalf("error decoding login response: %v", err)
	}

	refreshBody, _ := json.Marshal(handler.RefreshRequest{RefreshToken: login.RefreshToken})
	req = httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewReader(refreshBody))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w2.Code)
	}

	var refreshed handler.LoginResult
	if err := json.NewDecoder(w2.Body).Decode(&refreshed); err != nil {
		t.Fatalf("error decoding refresh response: %v", err)
	}
	if refreshed.Token == "" || refreshed.RefreshToken == "" {
		t.Fatalf("expected rotated tokens, got %+v", refreshed)
	}

	// rotation revokes the old refresh token
	req = httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewReader(refreshBody))
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req)

	if w3.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on reused refresh token, got %d", w3.Code)
	}
}

func TestRegisterAsAdminHandler(t *testing.T) {
	resetRateLimiter()
	r := api.NewRouter()

	payload, _ := json.Marshal(handler.RegisterAsAdminRequest{
		Email:    "staff@example.com",
		Password: "password123",
		Role:     "admin",
	})
	req := authedRequest(http.MethodPost, "/admin/users", payload)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterAsAdminHandler_ForbiddenForCustomers(t *testing.T) {
	resetRateLimiter()
	r := api.NewRouter()

	customerToken := registerCustomer(t, r, "plain@example.com", "password123")

	payload, _ := json.Marshal(handler.RegisterAsAdminRequest{
		Email:    "sneaky@example.com",
		Password: "password123",
		Role:     "admin",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/users", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+customerToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d", w.Code)
	}
}

func TestGetCustomersHandler(t *testing.T) {
	resetRateLimiter()
	r := api.NewRouter()

	registerCustomer(t, r, "customerlist@example.com", "password123")

	req := authedRequest(http.MethodGet, "/customers", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp []handler.CustomerResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	for _, c := range resp {
		if c.Email == "admin@example.com" {
			t.Error("admin accounts must not appear in the customer listing")
		}
	}
	found := false
	for _, c := range resp {
		if c.Email == "customerlist@example.com" {
			found = true
		}
	}
	if !found {
		t.Error("expected the registered customer in the listing")
	}
}
