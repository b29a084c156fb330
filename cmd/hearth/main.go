package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rowanfern/hearth/internal/backup"
	"github.com/rowanfern/hearth/internal/database"
	"github.com/rowanfern/hearth/internal/logging"
	"github.com/rowanfern/hearth/internal/push"
	"github.com/rowanfern/hearth/internal/recipes"
	"github.com/rowanfern/hearth/internal/server"
	"github.com/rowanfern/hearth/internal/store"
	ws "github.com/rowanfern/hearth/internal/websocket"
)

const snapshotInterval = 30 * time.Second

func main() {
	logger := logging.Setup(os.Getenv("HEARTH_LOG_LEVEL"), os.Getenv("HEARTH_LOG_FORMAT"))

	port := envDefault("HEARTH_PORT", "8080")
	dbPath := envDefault("HEARTH_DB_PATH", "hearth.db")

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	snap, err := database.LoadSnapshot(db)
	if err != nil {
		logger.Error("load snapshot", "error", err)
		os.Exit(1)
	}
	st := store.New(snap)
	logger.Info("store loaded",
		"profiles", len(snap.Profiles),
		"events", len(snap.Events),
		"chores", len(snap.Chores))

	recipeSvc := recipes.NewService(os.Getenv("HEARTH_RECIPES_URL"))

	var pushSvc *push.Service
	var pushSched *push.Scheduler
	vapidPub := os.Getenv("HEARTH_VAPID_PUBLIC_KEY")
	vapidPriv := os.Getenv("HEARTH_VAPID_PRIVATE_KEY")
	if vapidPub != "" && vapidPriv != "" {
		pushSvc = push.NewService(vapidPub, vapidPriv)
		pushSched = push.NewScheduler(pushSvc, st, logger.With("component", "push"))
	} else {
		logger.Info("push notifications disabled, VAPID keys not set")
	}

	srv := server.New(st, recipeSvc, pushSvc, logger)

	backupCfg := backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("HEARTH_S3_ENDPOINT"),
			Bucket:    os.Getenv("HEARTH_S3_BUCKET"),
			Region:    envDefault("HEARTH_S3_REGION", "us-east-1"),
			AccessKey: os.Getenv("HEARTH_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("HEARTH_S3_SECRET_KEY"),
		},
		DBPath:        dbPath,
		Passphrase:    os.Getenv("HEARTH_BACKUP_PASSPHRASE"),
		ScheduleHour:  envInt("HEARTH_BACKUP_HOUR", 3),
		RetentionDays: envInt("HEARTH_BACKUP_RETENTION_DAYS", 30),
	}
	backupMgr := backup.NewManager(backupCfg, db, logger.With("component", "backup"), func(s backup.Status) {
		srv.Hub().Broadcast(ws.Message{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(s.State),
			Extra: map[string]any{
				"in_progress": s.InProgress,
				"error":       s.Error,
			},
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if pushSched != nil {
		pushSched.Start(ctx)
	}
	backupMgr.Start(ctx)
	go persistLoop(ctx, db, st, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Hearth running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	if pushSched != nil {
		pushSched.Stop()
	}
	backupMgr.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// Final save so nothing since the last tick is lost.
	if err := database.SaveSnapshot(db, st.Snapshot(), st.Rev()); err != nil {
		logger.Error("final snapshot save", "error", err)
	}
}

// persistLoop saves the store to SQLite whenever its revision has moved
// since the last save.
func persistLoop(ctx context.Context, db *sql.DB, st *store.Store, logger *slog.Logger) {
	ticker := time.NewTicker(snapshotInterval)
	defer ticker.Stop()

	var lastSaved uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rev := st.Rev()
			if rev == lastSaved {
				continue
			}
			if err := database.SaveSnapshot(db, st.Snapshot(), rev); err != nil {
				logger.Error("save snapshot", "error", err)
				continue
			}
			lastSaved = rev
			logger.Debug("snapshot saved", "rev", rev)
		}
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
