package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// CounterReconciler recounts the vote ledger and comment threads and
// repairs any suggestion whose denormalized counters drifted. Every
// counter mutation is transactional, so a pass normally touches zero
// rows; this exists to recover from a restore or manual DB surgery.
type CounterReconciler struct {
	db *gorm.DB
}

func NewCounterReconciler(db *gorm.DB) *CounterReconciler {
	return &CounterReconciler{db: db}
}

func (r *CounterReconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	log.Info("Counter reconciler cron started")

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping counter reconciler...")
			return
		case <-ticker.C:
			r.Reconcile()
		}
	}
}

func (r *CounterReconciler) Reconcile() {
	repaired := r.repair("votes", `
		UPDATE suggestions
		SET votes = (
			SELECT COUNT(*) FROM suggestion_votes
			WHERE suggestion_votes.suggestion_id = suggestions.id
		)
		WHERE votes <> (
			SELECT COUNT(*) FROM suggestion_votes
			WHERE suggestion_votes.suggestion_id = suggestions.id
		)`)

	repaired += r.repair("comments_count", `
		UPDATE suggestions
		SET comments_count = (
			SELECT COUNT(*) FROM suggestion_comments
			WHERE suggestion_comments.suggestion_id = suggestions.id
		)
		WHERE comments_count <> (
			SELECT COUNT(*) FROM suggestion_comments
			WHERE suggestion_comments.suggestion_id = suggestions.id
		)`)

	if repaired > 0 {
		log.Warnf("Reconciler: repaired %d drifted counters", repaired)
	}
}

func (r *CounterReconciler) repair(counter, stmt string) int64 {
	result := r.db.Exec(stmt)
	if result.Error != nil {
		log.Errorf("Reconciler: failed to reconcile %s: %v", counter, result.Error)
		return 0
	}
	return result.RowsAffected
}
