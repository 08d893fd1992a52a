package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/tkoster/scriptbridge/internal/outcome"
)

func entry(n int) Entry {
	return Entry{
		ID:      fmt.Sprintf("id-%d", n),
		Command: fmt.Sprintf("cmd-%d", n),
		Script:  "/scripts/x.py",
		Outcome: outcome.Succeeded,
		Time:    time.Date(2016, 3, 9, 14, 0, n, 0, time.UTC),
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	r := New(10)
	for i := 0; i < 3; i++ {
		r.Add(entry(i))
	}

	got := r.Recent(0)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	for i, e := range got {
		if want := fmt.Sprintf("id-%d", 2-i); e.ID != want {
			t.Errorf("entry %d = %q, want %q", i, e.ID, want)
		}
	}
}

func TestRecent_Limit(t *testing.T) {
	r := New(10)
	for i := 0; i < 5; i++ {
		r.Add(entry(i))
	}

	got := r.Recent(2)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].ID != "id-4" || got[1].ID != "id-3" {
		t.Errorf("entries = %q, %q", got[0].ID, got[1].ID)
	}

	if got := r.Recent(100); len(got) != 5 {
		t.Errorf("Recent(100) = %d entries, want 5", len(got))
	}
}

func TestAdd_EvictsOldest(t *testing.T) {
	r := New(3)
	for i := 0; i < 5; i++ {
		r.Add(entry(i))
	}

	got := r.Recent(0)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].ID != "id-4" || got[2].ID != "id-2" {
		t.Errorf("retained wrong entries: %q ... %q", got[0].ID, got[2].ID)
	}
}

func TestNew_MinimumCapacity(t *testing.T) {
	r := New(0)
	r.Add(entry(1))
	r.Add(entry(2))
	got := r.Recent(0)
	if len(got) != 1 || got[0].ID != "id-2" {
		t.Errorf("got %v, want only the newest entry", got)
	}
}

func TestRecent_Empty(t *testing.T) {
	r := New(4)
	if got := r.Recent(0); len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}
