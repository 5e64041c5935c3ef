package store

import (
	"errors"
	"testing"

	"github.com/wishflow/wishflow/internal/database"
)

func setupHabitTestDB(t *testing.T) *HabitStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewHabitStore(db)
}

func TestHabitCRUD(t *testing.T) {
	hs := setupHabitTestDB(t)

	task, err := hs.Create("Morning run", amt(5), "alice")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Title != "Morning run" {
		t.Errorf("title = %q, want %q", task.Title, "Morning run")
	}
	if !task.RewardAmount.Equal(amt(5)) {
		t.Errorf("reward_amount = %s, want 5", task.RewardAmount)
	}

	updated, err := hs.Update(task.ID, "alice", "Evening run", amt(8))
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Title != "Evening run" || !updated.RewardAmount.Equal(amt(8)) {
		t.Errorf("updated = (%q, %s), want (Evening run, 8)", updated.Title, updated.RewardAmount)
	}

	if err := hs.Delete(task.ID, "alice"); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	got, _ := hs.GetByID(task.ID, "alice")
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestHabitValidation(t *testing.T) {
	hs := setupHabitTestDB(t)

	if _, err := hs.Create("", amt(5), "alice"); !IsValidation(err) {
		t.Errorf("empty title err = %v, want ValidationError", err)
	}
	if _, err := hs.Create("Run", amt(0), "alice"); !IsValidation(err) {
		t.Errorf("zero reward err = %v, want ValidationError", err)
	}
}

func TestRecordCheckinIdempotent(t *testing.T) {
	hs := setupHabitTestDB(t)

	task, _ := hs.Create("Read", amt(3), "alice")

	ci, created, err := hs.RecordCheckin(task.ID, "2025-02-10", "alice")
	if err != nil {
		t.Fatalf("record checkin: %v", err)
	}
	if !created {
		t.Error("first checkin should report created")
	}
	if !ci.RewardAmount.Equal(amt(3)) {
		t.Errorf("reward_amount = %s, want 3", ci.RewardAmount)
	}

	again, created, err := hs.RecordCheckin(task.ID, "2025-02-10", "alice")
	if err != nil {
		t.Fatalf("repeat checkin: %v", err)
	}
	if created {
		t.Error("repeat checkin should not report created")
	}
	if again.ID != ci.ID {
		t.Errorf("repeat returned id %d, want %d", again.ID, ci.ID)
	}

	checkins, _ := hs.ListCheckins("alice")
	if len(checkins) != 1 {
		t.Fatalf("expected exactly 1 checkin, got %d", len(checkins))
	}

	// A different day is a new row
	hs.RecordCheckin(task.ID, "2025-02-11", "alice")
	checkins, _ = hs.ListCheckins("alice")
	if len(checkins) != 2 {
		t.Fatalf("expected 2 checkins, got %d", len(checkins))
	}
}

func TestRecordCheckinSnapshotsReward(t *testing.T) {
	hs := setupHabitTestDB(t)

	task, _ := hs.Create("Read", amt(3), "alice")
	hs.RecordCheckin(task.ID, "2025-02-10", "alice")

	hs.Update(task.ID, "alice", "Read", amt(10))

	checkins, _ := hs.ListCheckins("alice")
	if len(checkins) != 1 {
		t.Fatalf("expected 1 checkin, got %d", len(checkins))
	}
	if !checkins[0].RewardAmount.Equal(amt(3)) {
		t.Errorf("historical reward = %s, want 3", checkins[0].RewardAmount)
	}
}

func TestHabitUserIsolation(t *testing.T) {
	hs := setupHabitTestDB(t)

	task, _ := hs.Create("Run", amt(5), "alice")
	hs.RecordCheckin(task.ID, "2025-02-10", "alice")

	if _, _, err := hs.RecordCheckin(task.ID, "2025-02-10", "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user checkin err = %v, want ErrNotFound", err)
	}

	bobCheckins, _ := hs.ListCheckins("bob")
	if len(bobCheckins) != 0 {
		t.Errorf("bob sees %d checkins, want 0", len(bobCheckins))
	}
	bobTasks, _ := hs.List("bob")
	if len(bobTasks) != 0 {
		t.Errorf("bob sees %d tasks, want 0", len(bobTasks))
	}
}
