package main

import (
	"context"
	"flag"
	"log"
	nethttp "net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/commerce-admin/internal/auth"
	"github.com/rogerio-castellano/commerce-admin/internal/config"
	"github.com/rogerio-castellano/commerce-admin/internal/db"
	adminhttp "github.com/rogerio-castellano/commerce-admin/internal/http"
	"github.com/rogerio-castellano/commerce-admin/internal/http/ban"
	"github.com/rogerio-castellano/commerce-admin/internal/http/handlers"
	rl "github.com/rogerio-castellano/commerce-admin/internal/http/rate_limiter"
	"github.com/rogerio-castellano/commerce-admin/internal/redissvc"
	"github.com/rogerio-castellano/commerce-admin/internal/report"
	"github.com/rogerio-castellano/commerce-admin/internal/repo"
)

// @title Commerce Admin API
// @version 1.0
// @description REST API for the e-commerce admin dashboard: catalog, orders, customers and reporting.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfgFile := flag.String("config", "", "path to config file")
	flag.Parse()

	// .env is a development convenience; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}

	auth.SetSecret(cfg.JWTSecret)
	ban.Configure(cfg)

	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go ban.StartDailyBanSummary(time.Hour * 24)
	go rl.StartVisitorCleanupLoop()

	ctx := context.Background()

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Could not connect to Redis: %v", err)
		}
		defer rdb.Close()

		redisService := redissvc.NewRedisService(rdb, ctx)
		handlers.SetRedisService(redisService)
		ban.SetRedisService(redisService)
		log.Println("✅ Redis connected, dashboard caching enabled")
	} else {
		log.Println("⚠️ Redis not configured, dashboard caching and ban tracking disabled")
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetOrderRepo(repo.NewPostgresOrderRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetBannerRepo(repo.NewPostgresBannerRepository(database))

	handlers.SetDashboardCacheTTL(cfg.DashboardCacheTTL)
	handlers.SetReportPolicy(report.Aggregator{FallbackToAllTime: cfg.SalesReportFallback})

	r := adminhttp.NewRouter()
	log.Printf("✅ Server running on %s", cfg.Addr)
	if err := nethttp.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
