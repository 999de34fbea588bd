package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/rogerio-castellano/commerce-admin/internal/http"
	handler "github.com/rogerio-castellano/commerce-admin/internal/http/handlers"
	"github.com/rogerio-castellano/commerce-admin/internal/models"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{Name: "Laptop", Price: 1500.0, Stock: models.StockOf(3)})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Name != "Laptop" {
		t.Errorf("expected name 'Laptop', got %v", resp.Name)
	}
	if resp.Price != 1500.0 {
		t.Errorf("expected price 1500.0, got %v", resp.Price)
	}
	if resp.TotalStock != 3 {
		t.Errorf("expected total stock 3, got %v", resp.TotalStock)
	}
	if !resp.LowStock {
		t.Error("expected product with stock 3 to be flagged low stock")
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	negative := -1
	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectCode     int
		expectedErrors []string
	}{
		{
			name:           "Empty name and price",
			payload:        handler.ProductRequest{Name: "", Price: 0.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Name", "Price"},
		},
		{
			name:           "Empty name only",
			payload:        handler.ProductRequest{Name: "", Price: 100.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Name"},
		},
		{
			name:           "Invalid price only",
			payload:        handler.ProductRequest{Name: "Mouse", Price: -5.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Price"},
		},
		{
			name:           "Negative stock count",
			payload:        handler.ProductRequest{Name: "Keyboard", Price: 50.0, Stock: models.Stock{Count: &negative}},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Stock"},
		},
		{
			name:           "Negative stock size",
			payload:        handler.ProductRequest{Name: "Hat", Price: 20.0, Stock: models.Stock{Sizes: []int{2, -1}}},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Stock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, w.Code)
			}

			var errs []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&errs); err != nil {
				t.Fatalf("error decoding validation errors: %v", err)
			}
			for _, field := range tt.expectedErrors {
				found := false
				for _, ve := range errs {
					if ve.Field == field {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected a validation error for field %q, got %v", field, errs)
				}
			}
		})
	}
}

func TestCreateProductHandler_RequiresAuth(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	body := `{"name":"Laptop","price":10}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestGetProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Name: "Laptop", Price: 1500.0, Stock: models.StockOf(3)})
	createProduct(r, handler.ProductRequest{Name: "Mouse", Price: 25.0, Stock: models.StockOf(100)})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp []handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 products, got %d", len(resp))
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{Name: "Laptop", Price: 1500.0, Stock: models.StockOf(3)})
	var created handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/products/"+created.Id, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w2.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/products/no-such-id", nil)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req)

	if w3.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", w3.Code)
	}
}

func TestUpdateProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{Name: "Laptop", Price: 1500.0, Stock: models.StockOf(3)})
	var created handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	payload, _ := json.Marshal(handler.ProductRequest{Name: "Laptop Pro", Price: 1800.0, Stock: models.StockOf(7)})
	req := authedRequest(http.MethodPut, "/products/"+created.Id, payload)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w2.Code)
	}

	var updated handler.ProductResponse
	if err := json.NewDecoder(w2.Body).Decode(&updated); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if updated.Name != "Laptop Pro" || updated.Price != 1800.0 {
		t.Errorf("unexpected updated product: %+v", updated)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	w := createProduct(r, handler.ProductRequest{Name: "Laptop", Price: 1500.0, Stock: models.StockOf(3)})
	var created handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	req := authedRequest(http.MethodDelete, "/products/"+created.Id, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	if w2.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w2.Code)
	}

	req = authedRequest(http.MethodDelete, "/products/"+created.Id, nil)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req)

	if w3.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found on second delete, got %d", w3.Code)
	}
}

func TestFilterProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	createProduct(r, handler.ProductRequest{Name: "Laptop", Price: 1500.0, Category: "electronics", Stock: models.StockOf(3)})
	createProduct(r, handler.ProductRequest{Name: "Mouse", Price: 25.0, Category: "electronics", Stock: models.StockOf(100)})
	createProduct(r, handler.ProductRequest{Name: "Desk", Price: 300.0, Category: "furniture", Stock: models.StockOf(5)})

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"By category", "?category=electronics", 2},
		{"By name", "?name=lap", 1},
		{"By price range", "?minPrice=100&maxPrice=500", 1},
		{"Paginated", "?limit=2", 2},
		{"No match", "?name=zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products/search"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}

			var resp handler.ProductsSearchResult
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if len(resp.Data) != tt.expected {
				t.Errorf("expected %d products, got %d", tt.expected, len(resp.Data))
			}
		})
	}

	t.Run("Invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/search?limit=0", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 Bad Request, got %d", w.Code)
		}
	})
}

func TestFilterProductsHandler_Meta(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := api.NewRouter()

	for i := 0; i < 5; i++ {
		createProduct(r, handler.ProductRequest{Name: fmt.Sprintf("Gadget %d", i), Price: 10.0, Stock: models.StockOf(1)})
	}

	req := httptest.NewRequest(http.MethodGet, "/products/search?limit=2&offset=4", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.ProductsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Meta.TotalCount != 5 {
		t.Errorf("expected total count 5, got %d", resp.Meta.TotalCount)
	}
	if len(resp.Data) != 1 {
		t.Errorf("expected 1 product on last page, got %d", len(resp.Data))
	}
}
