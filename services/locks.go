package services

import (
	"context"
	"sync"
	"time"

	"portal/config"
	"portal/database"
)

// In-process fallback when redis is unavailable
var localLocks sync.Map // user ID -> expiry time.Time

// AcquireSubmitLock takes a short-lived per-user lock around the quiz
// submission path so two concurrent submissions for the same identity cannot
// both pass the eligibility check. Returns false when the lock is held.
func AcquireSubmitLock(ctx context.Context, userID string) bool {
	ttl := config.DefaultQuizConfig.LockTTL

	if database.RDB != nil {
		ok, err := database.RDB.SetNX(ctx, "quiz:submit:"+userID, 1, ttl).Result()
		if err == nil {
			return ok
		}
		// Redis failing mid-flight falls through to the local lock
	}

	now := time.Now()
	if existing, loaded := localLocks.LoadOrStore(userID, now.Add(ttl)); loaded {
		if expiry, ok := existing.(time.Time); ok && now.Before(expiry) {
			return false
		}
		localLocks.Store(userID, now.Add(ttl))
	}
	return true
}

// ReleaseSubmitLock frees the per-user submission lock
func ReleaseSubmitLock(ctx context.Context, userID string) {
	if database.RDB != nil {
		database.RDB.Del(ctx, "quiz:submit:"+userID)
	}
	localLocks.Delete(userID)
}
