package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/careerpilot/internal/roadmap"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	db.SetMaxOpenConns(1)

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"auth_events", "progress", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.ActivityRepo().AppendAuthEvent(ctx, AuthEventData{Op: "login", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.ActivityRepo().QueryAuthEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 2 {
		t.Errorf("sequence after reopen = %d, want 2", seq)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAuthEventsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.ActivityRepo()
	ctx := context.Background()

	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ops := []AuthEventData{
		{Op: "login", Email: "nope@x.com", ErrorKind: "AUTH_USER_NOT_FOUND", ErrorMessage: "No account found", Timestamp: base},
		{Op: "login", Email: "test@test.com", Success: true, Timestamp: base.Add(time.Minute)},
		{Op: "logout", Email: "test@test.com", Success: true, Timestamp: base.Add(2 * time.Minute)},
	}
	for i, op := range ops {
		if err := repo.AppendAuthEvent(ctx, op); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryAuthEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].Op != "logout" || events[2].Op != "login" {
		t.Errorf("order = %s..%s, want logout..login", events[0].Op, events[2].Op)
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("sequences not descending: %d, %d", events[0].Sequence, events[1].Sequence)
	}
	if events[2].Success {
		t.Error("first attempt should be a failure")
	}
	if events[2].ErrorKind != "AUTH_USER_NOT_FOUND" {
		t.Errorf("error kind = %q", events[2].ErrorKind)
	}
	if !events[2].Timestamp.Equal(base) {
		t.Errorf("timestamp = %v, want %v", events[2].Timestamp, base)
	}
}

func TestAuthEventsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.ActivityRepo()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		err := repo.AppendAuthEvent(ctx, AuthEventData{
			Op:        "login",
			Success:   i != 1 && i != 3,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []int64
	}{
		{"limit", QueryOpts{Limit: 2}, []int64{6, 5}},
		{"after", QueryOpts{After: 4}, []int64{6, 5}},
		{"before", QueryOpts{Before: 3}, []int64{2, 1}},
		{"from", QueryOpts{From: base.Add(4 * time.Hour)}, []int64{6, 5}},
		{"to", QueryOpts{To: base.Add(time.Hour)}, []int64{2, 1}},
		{"window", QueryOpts{After: 1, Before: 6, Limit: 2}, []int64{5, 4}},
		{"failed", QueryOpts{Failed: true}, []int64{4, 2}},
		{"failed before limit", QueryOpts{Failed: true, Limit: 1}, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.QueryAuthEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(events) != len(tt.want) {
				t.Fatalf("events = %d, want %d", len(events), len(tt.want))
			}
			for i, e := range events {
				if e.Sequence != tt.want[i] {
					t.Errorf("events[%d].Sequence = %d, want %d", i, e.Sequence, tt.want[i])
				}
			}
		})
	}
}

func TestAuthEventsClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.ActivityRepo()
	ctx := context.Background()

	if err := repo.AppendAuthEvent(ctx, AuthEventData{Op: "login"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	events, err := repo.QueryAuthEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %d, want 0", len(events))
	}
}

func walkState() roadmap.State {
	return roadmap.State{
		CurrentKey: "entry-technical",
		Choices:    []string{"entry", "technical"},
		History: []roadmap.Step{
			{From: "start", OptionID: "entry"},
			{From: "entry-focus", OptionID: "technical"},
		},
	}
}

func TestProgressSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	// Nothing saved yet.
	p, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil progress when none exist")
	}

	saved := &Progress{Data: ProgressData{Version: 1, Roadmap: walkState()}}
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 || saved.Sequence == 0 {
		t.Errorf("save did not fill id/sequence: %+v", saved)
	}

	p, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil progress")
	}
	if p.Sequence != saved.Sequence {
		t.Errorf("sequence = %d, want %d", p.Sequence, saved.Sequence)
	}
	if p.Data.Roadmap.CurrentKey != "entry-technical" {
		t.Errorf("current key = %q", p.Data.Roadmap.CurrentKey)
	}
	if len(p.Data.Roadmap.History) != 2 || p.Data.Roadmap.History[1].OptionID != "technical" {
		t.Errorf("history = %+v", p.Data.Roadmap.History)
	}
}

func TestProgressLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	// Same timestamp on purpose: ordering follows the sequence.
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Progress{Timestamp: ts, Data: ProgressData{Version: i + 1}})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	p, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if p.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", p.Data.Version)
	}
}

func countProgress(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM progress").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestProgressPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := repo.Save(ctx, &Progress{Data: ProgressData{Version: i + 1}}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if got := countProgress(t, s); got != 5 {
		t.Errorf("remaining = %d, want 5", got)
	}

	p, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if p.Data.Version != 7 {
		t.Errorf("latest version = %d, want 7", p.Data.Version)
	}
}

func TestProgressPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Save(ctx, &Progress{Data: ProgressData{Version: 1}}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if got := countProgress(t, s); got != 2 {
		t.Errorf("remaining = %d, want 2", got)
	}
}

func TestProgressClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, &Progress{Data: ProgressData{Version: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	p, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if p != nil {
		t.Errorf("expected no progress after clear, got %+v", p)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("CAREERPILOT_DB", filepath.Join(dir, "explicit", "x.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join(dir, "explicit", "x.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("CAREERPILOT_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if p != filepath.Join(dir, "careerpilot", "careerpilot.db") {
		t.Errorf("path = %q", p)
	}
}
