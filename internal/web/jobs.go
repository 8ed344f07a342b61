// Package web serves the upload / verify / download flow over HTTP with
// server-sent events for verification progress.
package web

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/briefcheck/briefcheck/internal/model"
)

// Job is one uploaded brief moving through the verify flow. Text is held
// only until scoring completes; the finished report never contains it.
type Job struct {
	ID        string
	Flags     model.Flags
	Source    string
	Citations []model.Citation
	Quotes    []model.Quote

	mu     sync.Mutex
	text   string
	report *model.Report
}

// Text returns the stored brief text, or empty once it has been dropped.
func (j *Job) Text() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.text
}

// DropText discards the brief text. Called as soon as scoring is done.
func (j *Job) DropText() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.text = ""
}

// SetReport stores the finished report.
func (j *Job) SetReport(r *model.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.report = r
}

// Report returns the finished report, or nil while verification runs.
func (j *Job) Report() *model.Report {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.report
}

// JobStore holds in-flight jobs in memory with a TTL. Nothing is ever
// written to disk.
type JobStore struct {
	jobs *gocache.Cache
}

// NewJobStore creates a store whose jobs expire after ttl.
func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{jobs: gocache.New(ttl, 2*ttl)}
}

// Create registers a new job and returns it.
func (s *JobStore) Create(text, source string, flags model.Flags, citations []model.Citation, quotes []model.Quote) *Job {
	job := &Job{
		ID:        strings.ReplaceAll(uuid.New().String(), "-", "")[:12],
		Flags:     flags,
		Source:    source,
		Citations: citations,
		Quotes:    quotes,
		text:      text,
	}
	s.jobs.SetDefault(job.ID, job)
	return job
}

// Get returns the job with the given id.
func (s *JobStore) Get(id string) (*Job, bool) {
	v, ok := s.jobs.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Job), true
}

// Delete removes a job, e.g. after its CSV has been downloaded.
func (s *JobStore) Delete(id string) {
	s.jobs.Delete(id)
}
