package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/config"
	"github.com/nordbooks/leadtrack/handlers"
	"github.com/nordbooks/leadtrack/metrics"
	"github.com/nordbooks/leadtrack/middleware"
	"github.com/nordbooks/leadtrack/store"
	"github.com/nordbooks/leadtrack/utils"
)

// Deps bundles everything the routes need. Built once in main, so handlers
// never reach for globals.
type Deps struct {
	Config  *config.Config
	Store   *store.Store
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	GeoIP   *geoip2.Reader
	Limiter *middleware.RateLimiter
	Mailer  *utils.Mailer
}

func SetupRouter(d *Deps) *mux.Router {

	router := mux.NewRouter()

	admin := middleware.AdminMiddleware(d.Config.JWTSecret)

	// public collector routes
	router.Handle("/api/contact",
		d.Limiter.Limit(handlers.CreateLead(d.Store, d.GeoIP, d.Mailer, d.Metrics, d.Logger))).Methods("POST")
	router.HandleFunc("/api/track", handlers.CreateEvent(d.Store, d.Metrics, d.Logger)).Methods("POST")

	// admin auth
	router.HandleFunc("/api/admin/login",
		handlers.AdminLogin(d.Config.AdminPasswordHash, d.Config.JWTSecret, d.Logger)).Methods("POST")

	// dashboard routes
	router.Handle("/api/dashboard", admin(handlers.GetDashboard(d.Store, d.Logger))).Methods("GET")

	// lead routes
	router.Handle("/api/leads", admin(handlers.GetLeads(d.Store, d.Logger))).Methods("GET")
	router.Handle("/api/leads", admin(handlers.UpdateLeadStatus(d.Store, d.Logger))).Methods("PATCH")

	// spend routes
	router.Handle("/api/spend", admin(handlers.GetSpendRecords(d.Store, d.Logger))).Methods("GET")
	router.Handle("/api/spend", admin(handlers.CreateSpendRecord(d.Store, d.Logger))).Methods("POST")

	// operational routes
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	router.Handle("/metrics", d.Metrics.Handler()).Methods("GET")

	return router
}
