package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartSessionCleaner deletes expired login sessions every interval until ctx is done.
func StartSessionCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = purgeExpiredSessions(ctx, db, time.Now(), log)
			}
		}
	}()
}

func purgeExpiredSessions(ctx context.Context, db *sql.DB, now time.Time, log *zap.Logger) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		log.Error("failed to clean expired sessions", zap.Error(err))
		return 0, err
	}
	rows, _ := res.RowsAffected()
	if rows > 0 {
		log.Info("cleaned expired sessions", zap.Int64("removed", rows))
	}
	return rows, nil
}
