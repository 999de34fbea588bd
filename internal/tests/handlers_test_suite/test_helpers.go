package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	api "github.com/rogerio-castellano/commerce-admin/internal/http"
	handler "github.com/rogerio-castellano/commerce-admin/internal/http/handlers"
	rl "github.com/rogerio-castellano/commerce-admin/internal/http/rate_limiter"
	"github.com/rogerio-castellano/commerce-admin/internal/models"
	"github.com/rogerio-castellano/commerce-admin/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	token       string
	productRepo *repo.InMemoryProductRepository
	orderRepo   *repo.InMemoryOrderRepository
	userRepo    *repo.InMemoryUserRepository
	bannerRepo  *repo.InMemoryBannerRepository
	adminUser   models.User
)

func init() {
	setupTestRepos("secret123")
	r := api.NewRouter()

	var err error
	token, err = generateToken(r, "admin@example.com", "secret123")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	orderRepo = repo.NewInMemoryOrderRepository()
	handler.SetOrderRepo(orderRepo)

	bannerRepo = repo.NewInMemoryBannerRepository()
	handler.SetBannerRepo(bannerRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	adminUser, _ = userRepo.CreateUser(models.User{
		Email:        "admin@example.com",
		Name:         "Admin",
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	})
}

func clearAllProducts() {
	productRepo.Clear()
}

func clearAllOrders() {
	orderRepo.Clear()
}

func clearAllBanners() {
	bannerRepo.Clear()
}

// resetRateLimiter empties the per-IP buckets so auth tests never trip the
// brute-force limiter from the shared httptest client address.
func resetRateLimiter() {
	rl.CleanupAllVisitors()
}

func generateToken(r http.Handler, email, password string) (string, error) {
	payload := handler.CredentialsRequest{Email: email, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createBanner(r http.Handler, b handler.BannerRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(b)
	req := httptest.NewRequest(http.MethodPost, "/banners", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addOrder(o models.Order) models.Order {
	created, _ := orderRepo.Create(o)
	return created
}

func moneyPtr(v float64) *models.Money {
	m := models.Money(v)
	return &m
}

func daysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n)
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
