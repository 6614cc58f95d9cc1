package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuircle/internal/model"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	st, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func seed(t *testing.T, st *Store) []int64 {
	t.Helper()
	ctx := context.Background()
	recs := []model.AttemptRecord{
		{Mode: "deviation", Valid: true, Accuracy: 81.5, MeanRadius: 140, StdDev: 4, Points: 90, NewBest: true},
		{Mode: "deviation", Reason: "too-small", MeanRadius: 30, Points: 40},
		{Mode: "endpoint", Valid: true, Accuracy: 97.25, MeanRadius: 150, StdDev: 2, Points: 120, NewBest: true},
		{Mode: "deviation", Reason: "not-closed", MeanRadius: 120, Points: 60},
		{Mode: "deviation", Reason: "too-small", MeanRadius: 20, Points: 10},
	}
	var ids []int64
	for i, rec := range recs {
		rec.StartedAt = time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		rec.EndedAt = rec.StartedAt.Add(3 * time.Second)
		id, err := st.InsertAttempt(ctx, rec)
		if err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestListAttemptsOrderAndFields(t *testing.T) {
	st := openMemory(t)
	ids := seed(t, st)
	got, err := st.ListAttempts(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(got) != len(ids) {
		t.Fatalf("expected %d attempts, got %d", len(ids), len(got))
	}
	for i, rec := range got {
		if rec.ID != ids[i] {
			t.Fatalf("unexpected order: %+v", got)
		}
	}
	if !got[2].Valid || got[2].Accuracy != 97.25 || got[2].Mode != "endpoint" || !got[2].NewBest {
		t.Fatalf("unexpected third attempt: %+v", got[2])
	}
	if got[1].Valid || got[1].Reason != "too-small" {
		t.Fatalf("unexpected rejected attempt: %+v", got[1])
	}
	if !got[0].EndedAt.Equal(time.Unix(3, 0)) {
		t.Fatalf("unexpected ended_at: %v", got[0].EndedAt)
	}
}

func TestListAttemptsFilters(t *testing.T) {
	st := openMemory(t)
	ids := seed(t, st)
	ctx := context.Background()

	accepted, err := st.ListAttempts(ctx, model.HistoryConfig{AcceptedOnly: true})
	if err != nil {
		t.Fatalf("list accepted: %v", err)
	}
	if len(accepted) != 2 {
		t.Fatalf("expected 2 accepted attempts, got %d", len(accepted))
	}

	last, err := st.ListAttempts(ctx, model.HistoryConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 || last[0].ID != ids[3] || last[1].ID != ids[4] {
		t.Fatalf("expected the two most recent attempts in order, got %+v", last)
	}

	endpoint, err := st.ListAttempts(ctx, model.HistoryConfig{Mode: "endpoint"})
	if err != nil {
		t.Fatalf("list endpoint: %v", err)
	}
	if len(endpoint) != 1 || endpoint[0].ID != ids[2] {
		t.Fatalf("unexpected endpoint attempts: %+v", endpoint)
	}
}

func TestCountByReason(t *testing.T) {
	st := openMemory(t)
	seed(t, st)
	counts, err := st.CountByReason(context.Background())
	if err != nil {
		t.Fatalf("count by reason: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 reasons, got %+v", counts)
	}
	if counts[0].Reason != "too-small" || counts[0].Count != 2 {
		t.Fatalf("unexpected first reason: %+v", counts[0])
	}
	if counts[1].Reason != "not-closed" || counts[1].Count != 1 {
		t.Fatalf("unexpected second reason: %+v", counts[1])
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	defer func() {
		_ = st.Close()
	}()
	if _, err := st.InsertAttempt(context.Background(), model.AttemptRecord{Mode: "deviation"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestOpenEmptyDSN(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
