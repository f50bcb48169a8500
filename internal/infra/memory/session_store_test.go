package memory

import (
	"testing"

	"github.com/senceapptr/SenceApp-sub004/internal/app"
	"github.com/senceapptr/SenceApp-sub004/internal/trivia"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	engine := trivia.NewEngine(sampleCatalog())
	defer engine.Close()

	store.Put(app.NewSession("s1", engine))
	session, ok := store.Get("s1")
	if !ok || session.Engine != engine {
		t.Fatalf("expected session present")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Len())
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
}
