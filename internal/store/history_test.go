package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/promptforge/promptforge/internal/store"
	"github.com/promptforge/promptforge/internal/testutil"
)

func newHistoryStore(t *testing.T) *store.HistoryStore {
	t.Helper()
	return store.NewHistoryStore(testutil.NewTestDB(t))
}

func sampleEntry(req string) store.HistoryEntry {
	return store.HistoryEntry{
		Requirement:  req,
		Format:       "standard",
		Provider:     "openai",
		Prompt:       "# Task\n" + req,
		Fallback:     false,
		QualityScore: 7.4,
		Grade:        "B",
	}
}

func TestHistoryStore_CreateAndGet(t *testing.T) {
	hs := newHistoryStore(t)
	ctx := context.Background()

	in := sampleEntry("write a haiku")
	in.Fallback = true
	e, err := hs.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID == "" {
		t.Fatal("expected ID to be assigned")
	}
	if e.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := hs.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Requirement != "write a haiku" {
		t.Errorf("Requirement = %q, want %q", got.Requirement, "write a haiku")
	}
	if !got.Fallback {
		t.Error("Fallback = false, want true")
	}
	if got.QualityScore != 7.4 {
		t.Errorf("QualityScore = %v, want 7.4", got.QualityScore)
	}
	if got.Grade != "B" {
		t.Errorf("Grade = %q, want B", got.Grade)
	}
}

func TestHistoryStore_GetByID_NotFound(t *testing.T) {
	hs := newHistoryStore(t)
	_, err := hs.GetByID(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestHistoryStore_ListAndCount(t *testing.T) {
	hs := newHistoryStore(t)
	ctx := context.Background()

	for _, req := range []string{"one", "two", "three"} {
		if _, err := hs.Create(ctx, sampleEntry(req)); err != nil {
			t.Fatalf("Create %s: %v", req, err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"all", 0, 3},
		{"negative means all", -1, 3},
		{"limited", 2, 2},
		{"limit above count", 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hs.List(ctx, tt.limit)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}

	n, err := hs.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestHistoryStore_ListEmpty(t *testing.T) {
	hs := newHistoryStore(t)
	got, err := hs.List(context.Background(), 5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List = %#v, want empty non-nil slice", got)
	}
}

func TestHistoryStore_Delete(t *testing.T) {
	hs := newHistoryStore(t)
	ctx := context.Background()

	e, err := hs.Create(ctx, sampleEntry("delete me"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := hs.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := hs.GetByID(ctx, e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID after delete: err = %v, want ErrNotFound", err)
	}
	if err := hs.Delete(ctx, e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete: err = %v, want ErrNotFound", err)
	}
}

func TestHistoryStore_Clear(t *testing.T) {
	hs := newHistoryStore(t)
	ctx := context.Background()

	for _, req := range []string{"a", "b"} {
		if _, err := hs.Create(ctx, sampleEntry(req)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	n, err := hs.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear removed %d, want 2", n)
	}
	if c, _ := hs.Count(ctx); c != 0 {
		t.Errorf("Count after clear = %d, want 0", c)
	}
}
