package store

import (
	"sync"
	"testing"
)

func TestCreateSession(t *testing.T) {
	s := New()

	id, sess := s.CreateSession("release planning", "General")
	if id == "" {
		t.Fatal("expected non-empty session id")
	}
	if len(id) != 8 {
		t.Fatalf("expected 8-char token, got %q", id)
	}
	if !s.HasSession(id) {
		t.Fatalf("expected session %q to exist", id)
	}
	if sess.Status != "active" {
		t.Fatalf("expected status active, got %q", sess.Status)
	}
	if sess.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	sessions, memories := s.Counts()
	if sessions != 1 || memories != 0 {
		t.Fatalf("expected counts (1, 0), got (%d, %d)", sessions, memories)
	}
}

func TestAppendMemory(t *testing.T) {
	s := New()

	id1, total := s.AppendMemory("first note", ImportanceMedium)
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
	id2, total := s.AppendMemory("second note", ImportanceHigh)
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct tokens, both were %q", id1)
	}

	_, memories := s.Counts()
	if memories != 2 {
		t.Fatalf("expected 2 memories, got %d", memories)
	}
}

func TestConcurrentWrites(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.CreateSession("concurrent", "General")
		}()
		go func() {
			defer wg.Done()
			s.AppendMemory("concurrent note", ImportanceLow)
		}()
	}
	wg.Wait()

	sessions, memories := s.Counts()
	if memories != 50 {
		t.Fatalf("expected 50 memories, got %d", memories)
	}
	// Session tokens could collide in theory; anything close to 50 means
	// inserts were not lost to races.
	if sessions != 50 {
		t.Fatalf("expected 50 sessions, got %d", sessions)
	}
}
