package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
)

func TestRateLimiterAllow(t *testing.T) {
	l := NewRateLimiter()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("login:1.2.3.4", 3, time.Minute, start.Add(time.Duration(i)*time.Second))
		if !ok {
			t.Fatalf("request %d rejected", i+1)
		}
	}

	ok, retry := l.Allow("login:1.2.3.4", 3, time.Minute, start.Add(10*time.Second))
	if ok {
		t.Fatal("fourth request allowed")
	}
	if retry != 50*time.Second {
		t.Errorf("retry = %v, want 50s", retry)
	}

	if ok, _ := l.Allow("login:5.6.7.8", 3, time.Minute, start.Add(10*time.Second)); !ok {
		t.Error("other client rejected")
	}

	if ok, _ := l.Allow("login:1.2.3.4", 3, time.Minute, start.Add(61*time.Second)); !ok {
		t.Error("request after the window rejected")
	}
}

func TestRateLimiterRetryAtLeastOneSecond(t *testing.T) {
	l := NewRateLimiter()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	l.Allow("k", 1, time.Minute, now)
	_, retry := l.Allow("k", 1, time.Minute, now.Add(time.Minute-time.Millisecond))
	if retry != time.Second {
		t.Errorf("retry = %v, want 1s", retry)
	}
}

func TestRateLimiterWindowEdge(t *testing.T) {
	l := NewRateLimiter()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	l.Allow("k", 1, time.Minute, start)

	ok, retry := l.Allow("k", 1, time.Minute, start.Add(time.Minute))
	if ok {
		t.Fatal("request at the window edge allowed")
	}
	if retry != time.Second {
		t.Errorf("retry = %v, want 1s", retry)
	}

	if ok, _ := l.Allow("k", 1, time.Minute, start.Add(time.Minute+time.Nanosecond)); !ok {
		t.Error("request past the window rejected")
	}
}

func TestRateLimiterPrune(t *testing.T) {
	l := NewRateLimiter()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	l.Allow("old", 5, time.Minute, now.Add(-2*time.Minute))
	l.Allow("new", 5, time.Minute, now)

	if removed := l.Prune(now, time.Minute); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, ok := l.requests["new"]; !ok {
		t.Error("recent key pruned")
	}
}

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := store.Save(ctx, entities.NewSession("a", "a@example.com", now.Add(-25*time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, entities.NewSession("b", "b@example.com", now)); err != nil {
		t.Fatal(err)
	}

	if err := store.RenameEmail(ctx, "b@example.com", "c@example.com"); err != nil {
		t.Fatal(err)
	}
	s, err := store.Get(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if s.Email != "c@example.com" {
		t.Errorf("email = %q, want c@example.com", s.Email)
	}

	left, err := store.Sweep(ctx, now, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if left != 1 {
		t.Errorf("left = %d, want 1", left)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session: err = %v", err)
	}

	_ = store.Delete(ctx, "b")
	if _, err := store.Get(ctx, "b"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("deleted session: err = %v", err)
	}
}

func TestMissionStorageReset(t *testing.T) {
	s := NewMissionStorage()
	s.Store(1, &entities.Mission{})
	s.Store(2, &entities.Mission{})

	if _, ok := s.Get(1); !ok {
		t.Fatal("mission not stored")
	}
	if n := s.Reset(); n != 2 {
		t.Errorf("reset = %d, want 2", n)
	}
	if _, ok := s.Get(1); ok {
		t.Error("mission survived reset")
	}
}

func TestMessageStorageUpsert(t *testing.T) {
	s := NewMessageStorage()

	if _, had := s.UpsertAndGetPrev(1, 10, 100); had {
		t.Fatal("unexpected previous message")
	}
	prev, had := s.UpsertAndGetPrev(1, 10, 101)
	if !had || prev.MessageID != 100 {
		t.Errorf("prev = %+v, %v", prev, had)
	}
}

func TestMessageStorageGetDelete(t *testing.T) {
	s := NewMessageStorage()
	s.UpsertAndGetPrev(1, 10, 100)

	msg, ok := s.Get(1)
	if !ok || msg.ChatID != 10 || msg.MessageID != 100 {
		t.Fatalf("get = %+v, %v", msg, ok)
	}

	s.Delete(1)
	if _, ok := s.Get(1); ok {
		t.Error("message survived delete")
	}
	if _, had := s.UpsertAndGetPrev(1, 10, 101); had {
		t.Error("deleted message returned as previous")
	}
}

func TestMissionStorageDelete(t *testing.T) {
	s := NewMissionStorage()
	s.Store(1, &entities.Mission{})
	s.Store(2, &entities.Mission{})

	s.Delete(1)
	if _, ok := s.Get(1); ok {
		t.Error("mission survived delete")
	}
	if _, ok := s.Get(2); !ok {
		t.Error("other user's mission was deleted")
	}
}
