package redis

import (
	"context"
	"testing"
	"time"
)

func TestAlertStateStore_MarkAnnouncedOnce(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewAlertStateStore(client, nil)
	ctx := context.Background()

	first, err := store.MarkAnnounced(ctx, "goal-completed:g1", 0)
	if err != nil {
		t.Fatalf("MarkAnnounced failed: %v", err)
	}
	if !first {
		t.Fatal("expected first claim to succeed")
	}

	second, err := store.MarkAnnounced(ctx, "goal-completed:g1", 0)
	if err != nil {
		t.Fatalf("MarkAnnounced failed: %v", err)
	}
	if second {
		t.Fatal("expected second claim to fail")
	}
}

func TestAlertStateStore_ClearReleasesClaim(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewAlertStateStore(client, nil)
	ctx := context.Background()

	if _, err := store.MarkAnnounced(ctx, "goal-completed:g1", 0); err != nil {
		t.Fatalf("MarkAnnounced failed: %v", err)
	}

	if err := store.ClearAnnounced(ctx, "goal-completed:g1"); err != nil {
		t.Fatalf("ClearAnnounced failed: %v", err)
	}

	again, err := store.MarkAnnounced(ctx, "goal-completed:g1", 0)
	if err != nil {
		t.Fatalf("MarkAnnounced failed: %v", err)
	}
	if !again {
		t.Fatal("expected claim to succeed after release")
	}

	// Releasing an unclaimed key is a no-op.
	if err := store.ClearAnnounced(ctx, "goal-completed:missing"); err != nil {
		t.Fatalf("ClearAnnounced failed: %v", err)
	}
}

func TestAlertStateStore_TTLExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewAlertStateStore(client, nil)
	ctx := context.Background()

	if _, err := store.MarkAnnounced(ctx, "due:o1", time.Minute); err != nil {
		t.Fatalf("MarkAnnounced failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	again, err := store.MarkAnnounced(ctx, "due:o1", time.Minute)
	if err != nil {
		t.Fatalf("MarkAnnounced failed: %v", err)
	}
	if !again {
		t.Fatal("expected claim to succeed after expiry")
	}
}
