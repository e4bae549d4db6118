package services

import (
	"context"
	"testing"

	"portal/database"
)

func TestSubmitLockSerializesPerUser(t *testing.T) {
	database.RDB = nil
	ctx := context.Background()

	if !AcquireSubmitLock(ctx, "lock-user-1") {
		t.Fatal("first acquisition must succeed")
	}
	defer ReleaseSubmitLock(ctx, "lock-user-1")

	if AcquireSubmitLock(ctx, "lock-user-1") {
		t.Error("second acquisition for the same user must fail while held")
	}

	// Other identities are unaffected
	if !AcquireSubmitLock(ctx, "lock-user-2") {
		t.Error("lock for another user must be independent")
	}
	ReleaseSubmitLock(ctx, "lock-user-2")
}

func TestSubmitLockReleasable(t *testing.T) {
	database.RDB = nil
	ctx := context.Background()

	if !AcquireSubmitLock(ctx, "lock-user-3") {
		t.Fatal("first acquisition must succeed")
	}
	ReleaseSubmitLock(ctx, "lock-user-3")

	if !AcquireSubmitLock(ctx, "lock-user-3") {
		t.Error("lock must be reacquirable after release")
	}
	ReleaseSubmitLock(ctx, "lock-user-3")
}
