package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/folioparse/internal/portfolio"
	"github.com/dgallion1/folioparse/internal/profile"
	"github.com/google/uuid"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("Profile.pdf", "Profile", []byte("abc"))
	if _, err := uuid.Parse(job.ID); err != nil {
		t.Errorf("expected UUID job id, got %q", job.ID)
	}
	if job.Status != StatusQueued {
		t.Errorf("expected queued, got %q", job.Status)
	}
	if job.ContentHash != ContentHashHex([]byte("abc")) {
		t.Errorf("unexpected content hash %q", job.ContentHash)
	}
	if string(job.FileData()) != "abc" {
		t.Errorf("expected file data to be held, got %q", job.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusSectioning, "sectioning"},
		{StatusMapping, "mapping"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJobStatus_Done(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{StatusQueued, false},
		{StatusParsing, false},
		{StatusSectioning, false},
		{StatusMapping, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusDuplicate, true},
	}
	for _, tc := range tests {
		if got := tc.status.Done(); got != tc.want {
			t.Errorf("%q.Done(): expected %v, got %v", tc.status, tc.want, got)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("parse: bad xref")
	job.AddError("pdftotext: not found")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "parse: bad xref" {
		t.Errorf("expected first error %q, got %q", "parse: bad xref", snap.Progress.Errors[0])
	}
}

func TestJob_SetRecordCounts(t *testing.T) {
	job := &Job{ID: "rec-test", UpdatedAt: time.Now()}
	job.SetExtracted("Profile", 2, 40)
	job.SetRecord(profile.Record{
		Positions: []profile.Position{{CompanyName: "Acme"}, {CompanyName: "Beta"}},
		Education: []profile.Education{{SchoolName: "MIT"}},
		Skills:    []string{"Go", "SQL", "Kubernetes"},
	})

	snap := job.Snapshot()
	want := Progress{Pages: 2, Lines: 40, Positions: 2, Education: 1, Skills: 3, Errors: []string{}}
	if snap.Progress.Pages != want.Pages || snap.Progress.Lines != want.Lines ||
		snap.Progress.Positions != want.Positions || snap.Progress.Education != want.Education ||
		snap.Progress.Skills != want.Skills {
		t.Errorf("expected progress %+v, got %+v", want, snap.Progress)
	}
	if snap.Title != "Profile" {
		t.Errorf("expected title from document, got %q", snap.Title)
	}

	job.SetExtracted("Other", 1, 1)
	if job.Snapshot().Title != "Profile" {
		t.Error("expected existing title to be kept")
	}
}

func TestJob_SnapshotHidesResultsUntilDone(t *testing.T) {
	job := &Job{ID: "snap-result", Status: StatusMapping, UpdatedAt: time.Now()}
	job.SetRecord(profile.Record{Skills: []string{"Go"}})
	job.SetPortfolio(portfolio.Portfolio{Skills: []string{"Go"}})

	if snap := job.Snapshot(); snap.Record != nil || snap.Portfolio != nil {
		t.Error("expected no results while job is in progress")
	}

	job.SetStatus(StatusCompleted, "done")
	snap := job.Snapshot()
	if snap.Record == nil || snap.Portfolio == nil {
		t.Fatal("expected results once completed")
	}
	if snap.Record.Skills[0] != "Go" {
		t.Errorf("unexpected record %+v", snap.Record)
	}
}

func TestJob_MarkDuplicate(t *testing.T) {
	orig := &Job{ID: "orig", Status: StatusCompleted, UpdatedAt: time.Now()}
	orig.SetRecord(profile.Record{Skills: []string{"Go", "SQL"}})
	orig.SetPortfolio(portfolio.Portfolio{Skills: []string{"Go", "SQL"}})

	dup := &Job{ID: "dup", Status: StatusQueued, UpdatedAt: time.Now()}
	dup.MarkDuplicate(orig)

	snap := dup.Snapshot()
	if snap.Status != StatusDuplicate || snap.DuplicateOf != "orig" {
		t.Errorf("unexpected duplicate snapshot %+v", snap)
	}
	if snap.Record == nil || snap.Progress.Skills != 2 {
		t.Errorf("expected copied record, got %+v", snap)
	}
}

func TestJob_FileData(t *testing.T) {
	job := &Job{ID: "data-test"}
	data := []byte("file content here")
	job.SetFileData(data)
	if got := job.FileData(); string(got) != string(data) {
		t.Errorf("expected file data %q, got %q", data, got)
	}
	job.releaseFileData()
	if job.FileData() != nil {
		t.Error("expected file data to be released")
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_CompletedByHash(t *testing.T) {
	store := NewJobStore(time.Hour)
	pending := &Job{ID: "pending", ContentHash: "h1", Status: StatusParsing}
	done := &Job{ID: "done", ContentHash: "h1", Status: StatusCompleted}
	other := &Job{ID: "other", ContentHash: "h2", Status: StatusCompleted}
	store.Put(pending)
	store.Put(done)
	store.Put(other)

	if got := store.CompletedByHash("h1", "pending"); got != done {
		t.Errorf("expected completed job with matching hash, got %+v", got)
	}
	if got := store.CompletedByHash("h1", "done"); got != nil {
		t.Errorf("expected excluded job to be skipped, got %+v", got)
	}
	if got := store.CompletedByHash("h3", ""); got != nil {
		t.Errorf("expected nil for unknown hash, got %+v", got)
	}
}

func TestJobStore_ListAndDelete(t *testing.T) {
	store := NewJobStore(time.Hour)
	older := &Job{ID: "older", Status: StatusCompleted, CreatedAt: time.Now().Add(-time.Minute)}
	older.SetRecord(profile.Record{Skills: []string{"Go"}})
	newer := &Job{ID: "newer", Status: StatusQueued, CreatedAt: time.Now()}
	store.Put(older)
	store.Put(newer)

	list := store.List()
	if len(list) != 2 || list[0].ID != "newer" || list[1].ID != "older" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if list[1].Record != nil {
		t.Error("expected list entries without results")
	}

	if !store.Delete("older") {
		t.Error("expected delete to report an existing job")
	}
	if store.Delete("older") {
		t.Error("expected second delete to report missing job")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job left, got %d", store.Len())
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
