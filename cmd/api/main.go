package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hiring-sync/config"
	"go-hiring-sync/internal/audit"
	v1 "go-hiring-sync/internal/delivery/http/v1"
	"go-hiring-sync/internal/delivery/http/middleware"
	"go-hiring-sync/internal/domain"
	"go-hiring-sync/internal/gateway"
	"go-hiring-sync/internal/repository/memory"
	"go-hiring-sync/internal/repository/postgres"
	"go-hiring-sync/internal/scheduler"
	"go-hiring-sync/internal/usecase"
	"go-hiring-sync/pkg/database"
	"go-hiring-sync/pkg/logger"
	"go-hiring-sync/pkg/metacodec"
	"go-hiring-sync/pkg/redis"
	"go-hiring-sync/pkg/security"
	"go-hiring-sync/pkg/security/antivirus"
	"go-hiring-sync/pkg/storage"
	"go-hiring-sync/pkg/validation"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init()
	logger.Log.Info("Starting hiring sync backend", "port", cfg.Port, "store", cfg.StoreDriver)
	zapLog := logger.NewZap("hiring-sync", cfg.Env)
	defer func() { _ = zapLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Remote Store
	var store domain.RemoteStore
	probes := map[string]usecase.Probe{}
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Log.Warn("Using in-memory store; data is lost on restart")
		store = memory.NewTableStore()
	default:
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		store = postgres.NewTableStore(dbPool)
		probes["store"] = dbPool.Ping
	}

	// 4. Setup Redis (optional): audit spool and upload limits
	recorderOpts := []audit.Option{}
	var uploadGate middleware.UploadGate
	if cfg.UpstashRedisURL != "" {
		rdb, err := redis.Connect(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable; audit spool and upload limits disabled", "error", err)
		} else {
			defer rdb.Close()
			probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			recorderOpts = append(recorderOpts, audit.WithSpool(redis.NewAuditSpool(rdb, redis.DefaultSpoolKey)))
			uploadGate = security.NewUploadLimiter(rdb, cfg.UploadsPerMinute, cfg.UploadsPerDay)
		}
	}

	// 5. Setup Resume Storage (optional)
	var blobs domain.BlobStore
	if cfg.StorageEnabled() {
		s3cfg := storage.Config{
			Provider:        storage.Provider(cfg.S3Provider),
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Endpoint:        cfg.WasabiEndpoint,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		}
		client, err := storage.NewS3Client(ctx, s3cfg)
		if err != nil {
			logger.Log.Warn("Resume storage disabled", "error", err)
		} else {
			blobs = storage.NewBlobStore(client, s3cfg)
		}
	} else {
		logger.Log.Warn("S3 credentials not configured - resume uploads will be unavailable")
	}

	var scanner antivirus.Scanner
	if cfg.ClamAVAddress != "" {
		scanner = antivirus.NewClamAV(cfg.ClamAVAddress, 30*time.Second)
		if !scanner.Available(ctx) {
			logger.Log.Warn("ClamAV not reachable; resume uploads will be refused until it is", "address", cfg.ClamAVAddress)
		}
		probes["antivirus"] = func(ctx context.Context) error {
			if !scanner.Available(ctx) {
				return antivirus.ErrNoScanner
			}
			return nil
		}
	}

	// 6. Setup Domain Service
	recorder := audit.NewRecorder(store, zapLog.Named("audit"), recorderOpts...)
	svc := usecase.NewHiringService(usecase.Deps{
		Gateway:      gateway.New(store, recorder, zapLog.Named("gateway")),
		Audit:        recorder,
		Blobs:        blobs,
		Scanner:      scanner,
		Metadata:     metacodec.NewWriter(cfg.InterviewMetadataMode),
		Validate:     validation.New(),
		Log:          zapLog.Named("hiring"),
		ResumeBucket: cfg.ResumeBucket,
	})
	if err := svc.Refresh(ctx); err != nil {
		logger.Log.Error("Initial load failed", "error", err)
		os.Exit(1)
	}
	bootstrapAdmin(ctx, svc, cfg.BootstrapAdminEmail)

	// 7. Setup Consistency Sweep
	sweep := scheduler.New(cfg.ReconcileSchedule, svc, recorder, zapLog)
	if err := sweep.Start(ctx); err != nil {
		logger.Log.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// 8. Setup Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := v1.NewRouter(v1.RouterDeps{
		Service:     svc,
		Health:      usecase.NewHealthUsecase(probes),
		UploadGate:  uploadGate,
		Log:         zapLog.Named("http"),
		JWTSecret:   cfg.JWTSecret,
		FrontendURL: cfg.FrontendURL,
		Production:  cfg.IsProduction(),
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")
	sweep.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// bootstrapAdmin creates the first admin when the directory is empty so a
// token can be minted for someone.
func bootstrapAdmin(ctx context.Context, svc *usecase.HiringService, email string) {
	if email == "" || len(svc.ListUsers()) > 0 {
		return
	}
	admin, err := svc.CreateUser(ctx, domain.User{Name: "Administrator", Email: email, Role: domain.RoleAdmin}, "")
	if err != nil {
		logger.Log.Error("Bootstrap admin not created", "error", err)
		return
	}
	logger.Log.Info("Bootstrap admin created", "id", admin.ID, "email", admin.Email)
}
