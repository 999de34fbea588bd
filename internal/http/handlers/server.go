package handlers

import (
	"time"

	"github.com/rogerio-castellano/commerce-admin/internal/redissvc"
	"github.com/rogerio-castellano/commerce-admin/internal/report"
	repo "github.com/rogerio-castellano/commerce-admin/internal/repo"
)

var (
	orderRepo   repo.OrderRepository
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	bannerRepo  repo.BannerRepository

	// cache is optional; without Redis every dashboard request recomputes
	cache    *redissvc.RedisService
	cacheTTL = 30 * time.Second

	aggregator = report.Aggregator{FallbackToAllTime: true}
)

func SetOrderRepo(r repo.OrderRepository) {
	orderRepo = r
}

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetBannerRepo(r repo.BannerRepository) {
	bannerRepo = r
}

func SetRedisService(rs *redissvc.RedisService) {
	cache = rs
}

func SetDashboardCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		cacheTTL = ttl
	}
}

// SetReportPolicy swaps the aggregator policies, e.g. to disable the
// sales-report all-time fallback.
func SetReportPolicy(a report.Aggregator) {
	aggregator = a
}
