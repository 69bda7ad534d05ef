package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"waste-ops-service/internal/adapters/cache"
	"waste-ops-service/internal/adapters/notify"
	"waste-ops-service/internal/adapters/repositories"
	"waste-ops-service/internal/api"
	"waste-ops-service/internal/config"
	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/platform/db"
	"waste-ops-service/internal/ports"
	"waste-ops-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/demo.json")
	port := config.Get("PORT", "8080")

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(sqlDB); err != nil {
		log.Fatal(err)
	}
	if err := repositories.SeedFromJSON(sqlDB, seedPath); err != nil {
		log.Fatal(err)
	}

	routeRepo := repositories.NewSQLRouteRepository(sqlDB)
	waypointRepo := repositories.NewSQLWaypointRepository(sqlDB)
	collectionRepo := repositories.NewSQLCollectionRecordRepository(sqlDB)
	attendanceRepo := repositories.NewSQLAttendanceRepository(sqlDB)
	performanceRepo := repositories.NewSQLPerformanceRepository(sqlDB)
	complaintRepo := repositories.NewSQLComplaintRepository(sqlDB)
	binRepo := repositories.NewSQLBinRepository(sqlDB)
	directory := repositories.NewSQLEmployeeDirectory(sqlDB)

	notifier := notify.NewLogNotifier()

	// Redis is optional; without it dashboard stats are recomputed per
	// request.
	var statsCache ports.StatsCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		statsCache = cache.NewRedisStatsCache(client)
		log.Printf("Stats cache enabled addr=%s", addr)
	}

	attendanceSvc := services.NewAttendanceService(attendanceRepo, directory)
	routeSvc := services.NewRouteService(routeRepo, waypointRepo, collectionRepo, notifier)
	gamificationSvc := services.NewGamificationService(performanceRepo, notifier)
	complaintSvc := services.NewComplaintService(complaintRepo, directory, notifier)
	binSvc := services.NewBinService(binRepo, notifier)

	adminStats := &services.AdminStatsProvider{
		Collections: collectionRepo,
		Routes:      routeRepo,
		Complaints:  complaintRepo,
		Directory:   directory,
		Performance: performanceRepo,
	}
	employeeStats := &services.EmployeeStatsProvider{
		Routes:      routeRepo,
		Collections: collectionRepo,
		Complaints:  complaintRepo,
		Performance: performanceRepo,
		Attendance:  attendanceSvc,
	}
	citizenStats := &services.CitizenStatsProvider{
		Complaints:  complaintRepo,
		Routes:      routeRepo,
		Performance: performanceRepo,
	}
	statsSvc := services.NewStatsService(map[domain.Role]services.StatsProvider{
		domain.RoleAdmin:      adminStats,
		domain.RoleSupervisor: adminStats,
		domain.RoleEmployee:   employeeStats,
		domain.RoleCitizen:    citizenStats,
	}, statsCache, 30*time.Second)

	router := api.NewRouter(api.Deps{
		Attendance:   attendanceSvc,
		Routes:       routeSvc,
		Gamification: gamificationSvc,
		Complaints:   complaintSvc,
		Bins:         binSvc,
		Stats:        statsSvc,
		Collections:  collectionRepo,
		Directory:    directory,
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
