package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/commerce-admin/internal/models"
	repo "github.com/rogerio-castellano/commerce-admin/internal/repo"
)

// GetOrdersHandler godoc
// @Summary List orders with optional filters
// @Tags orders
// @Produce json
// @Param status query string false "Filter by order status"
// @Param since query string false "Filter orders from this timestamp (RFC3339)"
// @Param until query string false "Filter orders until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} OrdersSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /orders [get]
// @Security BearerAuth
func GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	sinceStr := r.URL.Query().Get("since")
	untilStr := r.URL.Query().Get("until")

	// Reverse the substitution from + for space in the date parameters, otherwise
	// time.Parse will fail with an error.
	// This is necessary because URL query parameters replace + with a space.
	// Example: 2025-07-03T17:44:03+02:00 becomes 2025-07-03T17:44:03 02:00 on r.URL.Query().Get()
	if len(sinceStr) == len(time.RFC3339) && sinceStr[len(sinceStr)-6] == ' ' {
		sinceStr = sinceStr[:len(sinceStr)-6] + "+" + sinceStr[len(sinceStr)-5:]
	}
	if len(untilStr) == len(time.RFC3339) && untilStr[len(untilStr)-6] == ' ' {
		untilStr = untilStr[:len(untilStr)-6] + "+" + untilStr[len(untilStr)-5:]
	}

	var since, until *time.Time
	if sinceStr != "" {
		if ts, err := time.Parse(time.RFC3339, sinceStr); err == nil {
			since = &ts
		} else {
			log.Printf("could not parse since date %s: %v", sinceStr, err)
			http.Error(w, "invalid since date format", http.StatusBadRequest)
			return
		}
	}
	if untilStr != "" {
		if ts, err := time.Parse(time.RFC3339, untilStr); err == nil {
			until = &ts
		} else {
			log.Printf("could not parse until date %s: %v", untilStr, err)
			http.Error(w, "invalid until date format", http.StatusBadRequest)
			return
		}
	}

	var limit, offset *int

	limitStr := r.URL.Query().Get("limit")
	if limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil {
			limit = &v
		} else {
			log.Printf("could not parse limit %s: %v", limitStr, err)
			http.Error(w, "invalid limit format", http.StatusBadRequest)
			return
		}
	}

	if limit != nil && *limit <= 0 {
		log.Printf("invalid limit %d, must be greater than zero", *limit)
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}

	offsetStr := r.URL.Query().Get("offset")
	if offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil {
			offset = &v
		} else {
			log.Printf("could not parse offset %s: %v", offsetStr, err)
			http.Error(w, "invalid offset format", http.StatusBadRequest)
			return
		}
	}

	if offset != nil && *offset < 0 {
		log.Printf("invalid offset %d, must be zero or positive", *offset)
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" {
		status = models.NormalizeStatus(status)
	}

	orders, total, err := orderRepo.Filter(repo.OrderFilter{
		Status: status,
		Since:  since,
		Until:  until,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		log.Printf("could not retrieve orders: %v", err)
		http.Error(w, "could not retrieve orders", http.StatusInternalServerError)
		return
	}

	response := OrdersSearchResult{
		Data: make([]OrderResponse, len(orders)),
		Meta: Meta{TotalCount: total},
	}
	for i, o := range orders {
		response.Data[i] = newOrderResponse(o)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("failed to encode response: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// GetOrderByIDHandler godoc
// @Summary Get order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /orders/{id} [get]
// @Security BearerAuth
func GetOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		log.Printf("could not fetch order %s: %v", id, err)
		http.Error(w, "could not fetch order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newOrderResponse(order))
}

// UpdateOrderStatusHandler godoc
// @Summary Update an order's status
// @Description Moves an order to a new status. Legacy statuses (paid, completed, confirmed) are folded into their canonical equivalents.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body OrderStatusUpdateRequest true "New status"
// @Success 200 {object} OrderResponse
// @Failure 400 {string} string "Invalid status"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /orders/{id}/status [put]
// @Security BearerAuth
func UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req OrderStatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	status := models.NormalizeStatus(req.Status)
	if !models.IsCanonicalStatus(status) {
		http.Error(w, "invalid order status", http.StatusBadRequest)
		return
	}

	order, err := orderRepo.UpdateStatus(id, status)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		log.Printf("could not update order %s status: %v", id, err)
		http.Error(w, "could not update order status", http.StatusInternalServerError)
		return
	}

	if cache != nil {
		if err := cache.Delete(r.Context(), dashboardCacheKey); err != nil {
			log.Printf("could not invalidate dashboard cache: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newOrderResponse(order))
}

// CreateOrderHandler godoc
// @Summary Record a new order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body models.Order true "Order to record"
// @Success 201 {object} OrderResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /orders [post]
// @Security BearerAuth
func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := readJSON(w, r, &order); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	order.Status = models.NormalizeStatus(order.Status)
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	if !models.IsCanonicalStatus(order.Status) {
		http.Error(w, "invalid order status", http.StatusBadRequest)
		return
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	created, err := orderRepo.Create(order)
	if err != nil {
		log.Printf("could not create order: %v", err)
		http.Error(w, "could not create order", http.StatusInternalServerError)
		return
	}

	if cache != nil {
		if err := cache.Delete(r.Context(), dashboardCacheKey); err != nil {
			log.Printf("could not invalidate dashboard cache: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newOrderResponse(created))
}

// DeleteOrderHandler godoc
// @Summary Delete an order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /orders/{id} [delete]
// @Security BearerAuth
func DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := orderRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		log.Printf("could not delete order %s: %v", id, err)
		http.Error(w, "could not delete order", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
