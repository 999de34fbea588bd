package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/rogerio-castellano/commerce-admin/internal/report"
)

const dashboardCacheKey = "dashboard:summary"

// GetDashboardStatsHandler godoc
// @Summary Landing-page dashboard summary
// @Description All-time totals, 30-day growth, pending orders, this month's top product and the ten most recent orders
// @Tags reports
// @Produce json
// @Success 200 {object} report.DashboardSummary
// @Failure 500 {string} string "Internal error"
// @Router /api/dashboard/stats [get]
func GetDashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	if cache != nil {
		var cached report.DashboardSummary
		if ok, err := cache.FetchJSON(dashboardCacheKey, &cached); err == nil && ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	orders, err := orderRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch orders: %v", err)
		http.Error(w, "could not fetch orders", http.StatusInternalServerError)
		return
	}
	users, err := userRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch customers: %v", err)
		http.Error(w, "could not fetch customers", http.StatusInternalServerError)
		return
	}

	summary := aggregator.Dashboard(orders, users, time.Now(), userRepo)

	if cache != nil {
		if err := cache.CacheJSON(dashboardCacheKey, summary, cacheTTL); err != nil {
			log.Printf("failed to cache dashboard summary: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, summary)
}

// GetReportsHandler godoc
// @Summary Full sales/inventory/customer/order-status report
// @Tags reports
// @Produce json
// @Param range query string false "Report range (7days, 30days, 90days, all)"
// @Success 200 {object} report.Report
// @Failure 400 {string} string "Invalid range"
// @Failure 500 {string} string "Internal error"
// @Router /api/reports [get]
func GetReportsHandler(w http.ResponseWriter, r *http.Request) {
	rng := report.Range(r.URL.Query().Get("range"))

	orders, err := orderRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch orders: %v", err)
		http.Error(w, "could not fetch orders", http.StatusInternalServerError)
		return
	}
	users, err := userRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch customers: %v", err)
		http.Error(w, "could not fetch customers", http.StatusInternalServerError)
		return
	}
	products, err := productRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch products: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	full, err := aggregator.Full(orders, users, products, rng, time.Now())
	if err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			http.Error(w, "range must be one of 7days, 30days, 90days, all", http.StatusBadRequest)
			return
		}
		http.Error(w, "could not build report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, full)
}

// GetStatisticsHandler godoc
// @Summary Storefront-wide statistics
// @Description Totals plus the current year's monthly revenue series
// @Tags reports
// @Produce json
// @Success 200 {object} report.Statistics
// @Failure 500 {string} string "Internal error"
// @Router /api/statistics [get]
func GetStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := orderRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch orders: %v", err)
		http.Error(w, "could not fetch orders", http.StatusInternalServerError)
		return
	}
	users, err := userRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch customers: %v", err)
		http.Error(w, "could not fetch customers", http.StatusInternalServerError)
		return
	}
	products, err := productRepo.GetAll()
	if err != nil {
		log.Printf("could not fetch products: %v", err)
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, report.BuildStatistics(orders, users, products, time.Now()))
}
