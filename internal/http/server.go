// Package http serves the ledger as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"crediario/internal/cache"
	"crediario/internal/log"
	"crediario/internal/report"
	"crediario/internal/storage"
	"crediario/internal/store"
)

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	Logger             *log.Logger
	Pinger             storage.Pinger
	Caches             *cache.Manager
	Location           *time.Location
	Now                func() time.Time
	RateLimitPerMinute int
	ReportCacheSize    int
	ReportCacheTTL     time.Duration
}

type Server struct {
	http.Server
	store       *store.Store
	logger      *log.Logger
	pinger      storage.Pinger
	loc         *time.Location
	now         func() time.Time
	started     time.Time
	rateLimiter *rateLimiter
	metrics     securityMetrics

	summaryCache *cache.LRUCache[report.Summary]
	monthlyCache *cache.LRUCache[report.MonthlyReport]

	unsubscribe  func()
	shutdownOnce sync.Once
}

// NewServer registers the API routes over st. Report caches are purged on
// every in-memory change of the store, saved or not.
func NewServer(addr string, st *store.Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReportCacheSize == 0 {
		opts.ReportCacheSize = 64
	}
	if opts.ReportCacheTTL == 0 {
		opts.ReportCacheTTL = 5 * time.Minute
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		store:        st,
		logger:       opts.Logger.WithComponent(log.ComponentHTTP),
		pinger:       opts.Pinger,
		loc:          opts.Location,
		now:          opts.Now,
		started:      opts.Now(),
		rateLimiter:  newRateLimiter(opts.RateLimitPerMinute),
		summaryCache: cache.NewLRUCache[report.Summary](1, opts.ReportCacheTTL),
		monthlyCache: cache.NewLRUCache[report.MonthlyReport](opts.ReportCacheSize, opts.ReportCacheTTL),
	}
	if opts.Caches != nil {
		opts.Caches.Register(s.summaryCache)
		opts.Caches.Register(s.monthlyCache)
	}
	s.unsubscribe = st.Bus().Watch(func(string) {
		s.summaryCache.Purge()
		s.monthlyCache.Purge()
	})

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/customers", s.handleListCustomers)
	mux.HandleFunc("POST /api/customers", s.handleCreateCustomer)
	mux.HandleFunc("GET /api/customers/search", s.handleSearchCustomer)
	mux.HandleFunc("GET /api/customers/{id}", s.handleGetCustomer)
	mux.HandleFunc("PATCH /api/customers/{id}", s.handleUpdateCustomer)
	mux.HandleFunc("DELETE /api/customers/{id}", s.handleDeleteCustomer)
	mux.HandleFunc("POST /api/customers/{id}/pay", s.handlePayCustomer)
	mux.HandleFunc("GET /api/customers/{id}/message", s.handleCustomerMessage)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PATCH /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("PATCH /api/config", s.handleUpdateConfig)

	mux.HandleFunc("GET /api/reports/summary", s.handleSummary)
	mux.HandleFunc("GET /api/reports/monthly", s.handleMonthly)
	mux.HandleFunc("GET /api/export", s.handleExport)

	s.Handler = chain(mux,
		log.Middleware(s.logger),
		log.RequestIDMiddleware(),
		log.AccessLog(extractClientIP),
		s.withSecurityHeaders,
	)
	return s
}

// chain wraps h so the first middleware runs outermost.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// withSecurityHeaders sets response hardening headers, flags scanner traffic
// and rate limits mutating requests per client IP.
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		clientIP := extractClientIP(r)

		if detectSuspiciousRequest(r, &s.metrics) {
			log.FromContext(ctx).WithComponent(log.ComponentHTTP).WarnContext(ctx, "Suspicious request",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
		}

		if r.Method != http.MethodGet && r.Method != http.MethodHead && !s.rateLimiter.allow(clientIP, &s.metrics) {
			log.FromContext(ctx).WithComponent(log.ComponentRateLimit).WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded, try again later"})
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops background work and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.unsubscribe()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// asOf is the current instant in the business timezone.
func (s *Server) asOf() time.Time {
	return s.now().In(s.loc)
}
