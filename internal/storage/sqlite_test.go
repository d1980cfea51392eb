package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/journal"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func recordedSession(t *testing.T, ticks int) journal.Session {
	t.Helper()
	rec, err := journal.NewRecorder(config.DefaultWorldConfig(), physics.Viewport{W: 800, H: 460}, "test")
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}
	rec.SetMovement(physics.Right)
	for i := 0; i < ticks; i++ {
		if i == ticks/2 {
			rec.SetMovement(physics.Up)
			rec.ClearMovement(physics.Right)
		}
		h := 460.0
		if i > ticks/2 {
			h = 420
		}
		rec.Advance(800, h)
	}
	return rec.Session()
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndLoadSession(t *testing.T) {
	store := openTestStore(t)
	sess := recordedSession(t, 120)

	if err := store.SaveSession(sess); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	got, err := store.Session(sess.ID)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}

	if got.Ticks != sess.Ticks || got.FinalPosition != sess.FinalPosition || got.FinalVelocity != sess.FinalVelocity {
		t.Errorf("loaded summary differs: %+v vs %+v", got, sess)
	}
	if got.Viewport != sess.Viewport || string(got.WorldYAML) != string(sess.WorldYAML) {
		t.Error("loaded world differs")
	}
	if len(got.Events) != len(sess.Events) {
		t.Fatalf("loaded %d events, expected %d", len(got.Events), len(sess.Events))
	}
	for i := range sess.Events {
		if got.Events[i] != sess.Events[i] {
			t.Errorf("event %d = %+v, expected %+v", i, got.Events[i], sess.Events[i])
		}
	}

	// A loaded session must still replay to its recorded end.
	if _, err := journal.Verify(got); err != nil {
		t.Errorf("Verify(loaded) failed: %v", err)
	}
}

func TestSaveSessionReplaces(t *testing.T) {
	store := openTestStore(t)
	sess := recordedSession(t, 60)

	if err := store.SaveSession(sess); err != nil {
		t.Fatal(err)
	}
	sess.Events = sess.Events[:1]
	sess.Ticks = 5
	if err := store.SaveSession(sess); err != nil {
		t.Fatal(err)
	}

	got, err := store.Session(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Ticks != 5 || len(got.Events) != 1 {
		t.Errorf("session not replaced: ticks=%d events=%d", got.Ticks, len(got.Events))
	}
}

func TestRecentSessions(t *testing.T) {
	store := openTestStore(t)

	older := recordedSession(t, 30)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := recordedSession(t, 40)

	for _, s := range []journal.Session{older, newer} {
		if err := store.SaveSession(s); err != nil {
			t.Fatal(err)
		}
	}

	list, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	if list[0].ID != newer.ID {
		t.Errorf("newest session should come first, got %s", list[0].ID)
	}
	if list[0].EventCount != len(newer.Events) || list[0].Ticks != 40 {
		t.Errorf("summary = %+v", list[0])
	}
	if list[1].CreatedAt.IsZero() {
		t.Error("created_at should be parsed")
	}
}

func TestSessionNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Session("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Session() = %v, expected ErrSessionNotFound", err)
	}
	if err := store.DeleteSession("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("DeleteSession() = %v, expected ErrSessionNotFound", err)
	}
}

func TestDeleteSession(t *testing.T) {
	store := openTestStore(t)
	sess := recordedSession(t, 20)
	if err := store.SaveSession(sess); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteSession(sess.ID); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}
	if _, err := store.Session(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("session still present after delete: %v", err)
	}
	var orphans int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM session_events WHERE session_id = ?", sess.ID).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("%d events left after delete", orphans)
	}
	if err := store.DeleteSession(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second DeleteSession() = %v, expected ErrSessionNotFound", err)
	}
}

func TestResolveID(t *testing.T) {
	store := openTestStore(t)

	a := recordedSession(t, 10)
	a.ID = "abc-111"
	b := recordedSession(t, 10)
	b.ID = "abd-222"
	for _, s := range []journal.Session{a, b} {
		if err := store.SaveSession(s); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		prefix  string
		want    string
		wantErr error
	}{
		{"abc", "abc-111", nil},
		{"abd-222", "abd-222", nil},
		{"ab", "", ErrAmbiguousID},
		{"zz", "", ErrSessionNotFound},
		{"", "", ErrSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := store.ResolveID(tt.prefix)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveID(%q) error = %v, expected %v", tt.prefix, err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ResolveID(%q) = %q, %v; expected %q", tt.prefix, got, err, tt.want)
			}
		})
	}
}
