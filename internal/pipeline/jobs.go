package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/folioparse/internal/portfolio"
	"github.com/dgallion1/folioparse/internal/profile"
	"github.com/google/uuid"
)

// JobStatus represents the state of an import job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusSectioning JobStatus = "sectioning"
	StatusMapping    JobStatus = "mapping"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusDuplicate  JobStatus = "duplicate"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusDuplicate
}

// Job tracks the state of a single profile import.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData  []byte
	record    *profile.Record
	portfolio *portfolio.Portfolio
	errors    []string
}

// Progress counts what each phase produced.
type Progress struct {
	Pages     int      `json:"pages"`
	Lines     int      `json:"lines"`
	Positions int      `json:"positions"`
	Education int      `json:"education"`
	Skills    int      `json:"skills"`
	Errors    []string `json:"errors"`
}

// NewJob creates a queued job holding the uploaded bytes.
func NewJob(filename, title string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:          uuid.NewString(),
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		Title:       title,
		ContentHash: ContentHashHex(data),
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// CompletedByHash returns a completed job other than exclude whose upload
// had the given content hash, or nil.
func (s *JobStore) CompletedByHash(hash, exclude string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, job := range s.jobs {
		if id == exclude {
			continue
		}
		job.mu.Lock()
		match := job.ContentHash == hash && job.Status == StatusCompleted
		job.mu.Unlock()
		if match {
			return job
		}
	}
	return nil
}

// List returns snapshots of all tracked jobs, newest first.
func (s *JobStore) List() []JobSnapshot {
	s.mu.Lock()
	jobs := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	s.mu.Unlock()

	out := make([]JobSnapshot, 0, len(jobs))
	for _, job := range jobs {
		snap := job.Snapshot()
		snap.Record = nil
		snap.Portfolio = nil
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Delete removes a job and reports whether it existed.
func (s *JobStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return false
	}
	delete(s.jobs, id)
	return true
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetExtracted records what the extraction phase found. The document
// title only fills an empty job title.
func (j *Job) SetExtracted(title string, pages, lines int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.Title == "" {
		j.Title = title
	}
	j.Progress.Pages = pages
	j.Progress.Lines = lines
	j.UpdatedAt = time.Now()
}

// SetRecord stores the parsed record and its counts.
func (j *Job) SetRecord(rec profile.Record) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record = &rec
	j.Progress.Positions = len(rec.Positions)
	j.Progress.Education = len(rec.Education)
	j.Progress.Skills = len(rec.Skills)
	j.UpdatedAt = time.Now()
}

// SetPortfolio stores the mapped portfolio.
func (j *Job) SetPortfolio(p portfolio.Portfolio) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.portfolio = &p
	j.UpdatedAt = time.Now()
}

// Result returns the parsed record and portfolio, nil until set.
func (j *Job) Result() (*profile.Record, *portfolio.Portfolio) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.record, j.portfolio
}

// MarkDuplicate copies the results of an earlier job with the same upload.
func (j *Job) MarkDuplicate(orig *Job) {
	rec, port := orig.Result()
	j.mu.Lock()
	defer j.mu.Unlock()
	j.DuplicateOf = orig.ID
	j.record = rec
	j.portfolio = port
	if rec != nil {
		j.Progress.Positions = len(rec.Positions)
		j.Progress.Education = len(rec.Education)
		j.Progress.Skills = len(rec.Skills)
	}
	j.Status = StatusDuplicate
	j.Phase = "dedup"
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// releaseFileData drops the upload once it has been parsed.
func (j *Job) releaseFileData() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = nil
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string               `json:"job_id"`
	Status      JobStatus            `json:"status"`
	Phase       string               `json:"phase"`
	Filename    string               `json:"filename"`
	Title       string               `json:"title"`
	ContentHash string               `json:"content_hash,omitempty"`
	DuplicateOf string               `json:"duplicate_of,omitempty"`
	Progress    Progress             `json:"progress"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Record      *profile.Record      `json:"record,omitempty"`
	Portfolio   *portfolio.Portfolio `json:"portfolio,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state. Results are only
// included once the job has finished.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	snap := JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		Title:       j.Title,
		ContentHash: j.ContentHash,
		DuplicateOf: j.DuplicateOf,
		Progress:    j.Progress,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
	snap.Progress.Errors = append([]string{}, errs...)
	if j.Status == StatusCompleted || j.Status == StatusDuplicate {
		snap.Record = j.record
		snap.Portfolio = j.portfolio
	}
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
