// ABOUTME: Tests for snapshot loading
// ABOUTME: Table-driven with testify
package db

import (
	"context"
	"testing"

	"github.com/harperreed/outreach/models"
)

func TestLoadSnapshot(t *testing.T) {
	db := setupTestDB(t)
	loc := chicago(t)
	ctx := context.Background()

	mine := &models.Lead{Name: "Mine", LeadSource: models.SourceSocialMedia, OwnerID: "amy"}
	theirs := &models.Lead{Name: "Theirs", LeadSource: models.SourceColdOutreach, OwnerID: "jake"}
	for _, l := range []*models.Lead{mine, theirs} {
		if err := CreateLead(db, l); err != nil {
			t.Fatalf("CreateLead failed: %v", err)
		}
		if err := CreateActivity(db, &models.Activity{LeadID: l.ID, ActivityType: models.ActivityDM}, loc); err != nil {
			t.Fatalf("CreateActivity failed: %v", err)
		}
		if err := CreateBooking(db, &models.Booking{LeadID: l.ID}); err != nil {
			t.Fatalf("CreateBooking failed: %v", err)
		}
	}

	open := &models.Task{LeadID: mine.ID, Title: "Open"}
	done := &models.Task{LeadID: mine.ID, Title: "Done"}
	for _, task := range []*models.Task{open, done} {
		if err := CreateTask(db, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	if err := CompleteTask(db, done.ID, done.CreatedAt); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	all, err := LoadSnapshot(ctx, db, SnapshotFilter{})
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(all.Leads) != 2 || len(all.Activities) != 2 || len(all.Bookings) != 2 {
		t.Errorf("Unexpected full snapshot sizes: %d leads, %d activities, %d bookings",
			len(all.Leads), len(all.Activities), len(all.Bookings))
	}
	if len(all.Tasks) != 1 || all.Tasks[0].ID != open.ID {
		t.Errorf("Expected only the open task, got %+v", all.Tasks)
	}

	owned, err := LoadSnapshot(ctx, db, SnapshotFilter{OwnerID: "amy"})
	if err != nil {
		t.Fatalf("LoadSnapshot(owner) failed: %v", err)
	}
	if len(owned.Leads) != 1 || owned.Leads[0].ID != mine.ID {
		t.Fatalf("Expected only amy's lead, got %+v", owned.Leads)
	}
	if len(owned.Activities) != 1 || owned.Activities[0].LeadID != mine.ID {
		t.Errorf("Activities not scoped to owner: %+v", owned.Activities)
	}

	one, err := LoadSnapshot(ctx, db, SnapshotFilter{LeadID: &theirs.ID, OwnerID: "amy"})
	if err != nil {
		t.Fatalf("LoadSnapshot(lead) failed: %v", err)
	}
	if len(one.Leads) != 1 || one.Leads[0].ID != theirs.ID {
		t.Errorf("LeadID should win over OwnerID, got %+v", one.Leads)
	}
	if len(one.Tasks) != 0 {
		t.Errorf("Expected no tasks for theirs, got %d", len(one.Tasks))
	}
}
