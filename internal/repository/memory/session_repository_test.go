package memory

import (
	"testing"
	"time"

	"ai-study-assistant-be/pkg/store"
)

func TestSaveAndGet(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	session := store.NewSession("sess-1", "General")
	repo.Save(session)

	got, found := repo.Get("sess-1")
	if !found {
		t.Fatal("saved session not found")
	}
	if got.ID != "sess-1" || got.TopicType != "General" {
		t.Errorf("got %+v, want the saved session", got)
	}
}

func TestGetMissing(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	if _, found := repo.Get("nope"); found {
		t.Error("Get on missing id reported found")
	}
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	repo.Save(store.NewSession("sess-1", "General"))
	repo.Delete("sess-1")

	if _, found := repo.Get("sess-1"); found {
		t.Error("deleted session still retrievable")
	}
}

func TestSessionExpires(t *testing.T) {
	repo := NewSessionRepository(50 * time.Millisecond)

	repo.Save(store.NewSession("sess-1", "General"))
	time.Sleep(80 * time.Millisecond)

	if _, found := repo.Get("sess-1"); found {
		t.Error("session still retrievable past its ttl")
	}
}
