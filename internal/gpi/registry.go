// SPDX-License-Identifier: MPL-2.0

package gpi

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// LocalBackendName is the name of the backend that runs jobs on this machine.
const LocalBackendName = "Local"

var (
	// ErrJobNotFound is returned when no job has the requested ID.
	ErrJobNotFound = errors.New("job not found")

	// ErrUnknownBackend is returned when a job names a backend that is not registered.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrTooManyJobs is returned when submitting would exceed Settings.MaxJobs.
	ErrTooManyJobs = errors.New("too many jobs")
)

type (
	// Backend runs jobs somewhere.
	Backend interface {
		// Name identifies the backend in Job.Backend.
		Name() string
		// Start begins running the job.
		Start(j *Job) error
	}

	// LocalBackend runs jobs on the local machine.
	LocalBackend struct {
		started []int
	}

	// Settings holds runtime configuration for job handling.
	Settings struct {
		DefaultBackend string `doc:"Backend used when a job names none."`
		MaxJobs        int    `doc:"Maximum number of jobs kept in the registry (0 means unlimited)."`
	}

	// JobRegistry keeps every submitted job, in submission order.
	JobRegistry struct {
		settings *Settings
		backends map[string]Backend
		jobs     []*Job
		nextID   int
	}
)

// Name returns "Local".
func (b *LocalBackend) Name() string { return LocalBackendName }

// Start marks the job as running.
func (b *LocalBackend) Start(j *Job) error {
	b.started = append(b.started, j.ID)
	j.Status = StatusRunning
	return nil
}

// DefaultSettings returns the settings the runtime starts with.
func DefaultSettings() *Settings {
	return &Settings{DefaultBackend: LocalBackendName}
}

// NewJobRegistry creates an empty registry with the local backend installed.
func NewJobRegistry(settings *Settings) *JobRegistry {
	if settings == nil {
		settings = DefaultSettings()
	}
	r := &JobRegistry{
		settings: settings,
		backends: make(map[string]Backend),
	}
	r.AddBackend(&LocalBackend{})
	return r
}

// AddBackend installs b under its name, replacing any backend with the same name.
func (r *JobRegistry) AddBackend(b Backend) {
	r.backends[b.Name()] = b
}

// Submit assigns the job an ID and starts it on its backend.
func (r *JobRegistry) Submit(j *Job) (*Job, error) {
	if j.Status != StatusNew {
		return nil, &JobError{JobID: j.ID, Op: "submit", Status: j.Status, Err: ErrJobState}
	}
	if r.settings.MaxJobs > 0 && len(r.jobs) >= r.settings.MaxJobs {
		return nil, fmt.Errorf("submit %s: %w (limit %d)", j.Application, ErrTooManyJobs, r.settings.MaxJobs)
	}
	if j.Backend == "" {
		j.Backend = r.settings.DefaultBackend
	}
	backend, ok := r.backends[j.Backend]
	if !ok {
		return nil, fmt.Errorf("submit %s: %w: %q", j.Application, ErrUnknownBackend, j.Backend)
	}

	r.nextID++
	j.ID = r.nextID
	j.Status = StatusSubmitted
	if err := backend.Start(j); err != nil {
		j.Status = StatusFailed
		return j, fmt.Errorf("start job %d on %s: %w", j.ID, j.Backend, err)
	}
	r.jobs = append(r.jobs, j)
	return j, nil
}

// Get returns the job with the given ID.
func (r *JobRegistry) Get(id int) (*Job, error) {
	i := slices.IndexFunc(r.jobs, func(j *Job) bool { return j.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("job %d: %w", id, ErrJobNotFound)
	}
	return r.jobs[i], nil
}

// Select returns the jobs in the given state, or all jobs when status is empty.
func (r *JobRegistry) Select(status Status) []*Job {
	if status == "" {
		return slices.Clone(r.jobs)
	}
	var out []*Job
	for _, j := range r.jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out
}

// Len returns the number of jobs.
func (r *JobRegistry) Len() int {
	return len(r.jobs)
}
