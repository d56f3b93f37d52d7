package store

import (
	"errors"
	"sync"
	"testing"

	"dayplan/internal/model"
)

func TestSharedUpdateAndRead(t *testing.T) {
	s := NewShared(sampleDB())

	err := s.Update(func(db *DB) error {
		db.Lists[0].Tasks[0].Name = "renamed"
		return nil
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	var got string
	s.Read(func(db *DB) { got = db.Lists[0].Tasks[0].Name })
	if got != "renamed" {
		t.Fatalf("read back %q, want renamed", got)
	}
}

func TestSharedUpdatePropagatesError(t *testing.T) {
	s := NewShared(nil)
	sentinel := errors.New("boom")
	if err := s.Update(func(*DB) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("Update error = %v, want sentinel", err)
	}
}

func TestSharedNilSeedsEmptyState(t *testing.T) {
	s := NewShared(nil)
	s.Read(func(db *DB) {
		if db.Version != 1 || len(db.Lists) != 0 {
			t.Fatalf("empty state = %+v", db)
		}
	})
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewShared(sampleDB())
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	snap.Lists[0].Tasks[0].Name = "mutated"
	s.Read(func(db *DB) {
		if db.Lists[0].Tasks[0].Name == "mutated" {
			t.Fatalf("snapshot shares state with the live tree")
		}
	})
}

func TestSharedConcurrentUpdates(t *testing.T) {
	s := NewShared(&DB{Version: 1, Lists: []model.TaskList{{ID: "list-aaaaaaaa", Name: "L"}}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(func(db *DB) error {
				db.Lists[0].Tasks = append(db.Lists[0].Tasks, model.Task{
					ItemBase: model.ItemBase{Order: len(db.Lists[0].Tasks)},
				})
				return nil
			})
		}()
	}
	wg.Wait()

	s.Read(func(db *DB) {
		tasks := db.Lists[0].Tasks
		if len(tasks) != 50 {
			t.Fatalf("tasks = %d, want 50", len(tasks))
		}
		for i := range tasks {
			if tasks[i].Order != i {
				t.Fatalf("order not dense at %d: %d", i, tasks[i].Order)
			}
		}
	})
}
