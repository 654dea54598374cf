package pipeline_test

import (
	"errors"
	"testing"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/app/pipeline"
	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
	"github.com/herm409/activity-tracker-app-sub000/internal/infra/sqlite"
)

func testService(t *testing.T) *pipeline.Service {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return pipeline.NewService(db)
}

func TestCreateAndList(t *testing.T) {
	svc := testService(t)

	p, err := svc.Create("u1", "Alex", "met at expo", time.Time{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Error("expected generated id")
	}
	if p.Stage != domain.StageNew {
		t.Errorf("expected stage new, got %s", p.Stage)
	}

	list, err := svc.List("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Alex" {
		t.Errorf("unexpected list: %v", list)
	}
}

func TestAdvance_ValidPathToEnrolled(t *testing.T) {
	svc := testService(t)
	p, _ := svc.Create("u1", "Alex", "", time.Time{})

	follow := time.Now().AddDate(0, 0, 2)
	p, err := svc.Advance(p.ID, domain.StageContacted, follow)
	if err != nil {
		t.Fatalf("advance to contacted: %v", err)
	}
	if p.NextFollow.IsZero() {
		t.Error("expected follow-up scheduled")
	}

	if _, err := svc.Advance(p.ID, domain.StageEnrolled, time.Time{}); err == nil {
		t.Error("contacted -> enrolled must be rejected")
	}

	p, _ = svc.Advance(p.ID, domain.StagePresented, time.Time{})
	p, err = svc.Advance(p.ID, domain.StageEnrolled, time.Time{})
	if err != nil {
		t.Fatalf("presented -> enrolled: %v", err)
	}
	if !p.NextFollow.IsZero() {
		t.Error("terminal stage must clear the follow-up date")
	}
}

func TestDueFollowUps(t *testing.T) {
	svc := testService(t)

	overdue, _ := svc.Create("u1", "Alex", "", time.Now().Add(-time.Hour))
	_, _ = svc.Create("u1", "Sam", "", time.Now().AddDate(0, 0, 3))

	due, err := svc.Due("u1")
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 1 || due[0].ID != overdue.ID {
		t.Errorf("expected only the overdue prospect, got %v", due)
	}
}

func TestGetMissing(t *testing.T) {
	svc := testService(t)
	if _, err := svc.Get("nope"); !errors.Is(err, domain.ErrProspectNotFound) {
		t.Errorf("expected ErrProspectNotFound, got %v", err)
	}
}
