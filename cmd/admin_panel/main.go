package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admin-panel/internal/auth"
	"admin-panel/internal/calculator"
	"admin-panel/internal/config"
	"admin-panel/internal/directory"
	"admin-panel/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Deps struct {
	Directory *directory.Loader
	Auth      *auth.Service
	History   calculator.History
	Logger    *zap.Logger
}

func SetupRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /api/v1/register", auth.RegisterHandler(d.Auth, d.Logger))
	mux.Handle("POST /api/v1/login", auth.LoginHandler(d.Auth, d.Logger))

	mux.Handle("GET /api/v1/employees", directory.EmployeesHandler(d.Directory))

	mux.Handle("POST /api/v1/calculate", calculator.CalculateHandler(d.Logger))
	mux.Handle("POST /api/v1/calculator/press", calculator.PressHandler())

	requireAuth := auth.Middleware(d.Auth)
	mux.Handle("POST /api/v1/calculations", requireAuth(calculator.SaveCalculationHandler(d.History, d.Logger)))
	mux.Handle("GET /api/v1/calculations", requireAuth(calculator.ListCalculationsHandler(d.History, d.Logger)))

	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return requestLogger(d.Logger, mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("admin panel stopped with error", zap.Error(err))
	}
	logger.Info("admin panel stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	db, err := storage.NewSQLite(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	gdb, err := storage.NewGorm(db)
	if err != nil {
		return err
	}

	loader := directory.NewLoader(&http.Client{Timeout: cfg.Directory.Timeout}, cfg.Directory.URL, logger)
	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: SetupRouter(Deps{
			Directory: loader,
			Auth:      auth.NewService(db, cfg.Auth.Secret, cfg.Auth.TokenTTL),
			History:   storage.NewCalculationRepository(gdb),
			Logger:    logger,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loader.Load(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
