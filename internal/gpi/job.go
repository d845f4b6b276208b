// SPDX-License-Identifier: MPL-2.0

package gpi

import (
	"errors"
	"fmt"
)

// Job states.
const (
	StatusNew       Status = "new"
	StatusSubmitted Status = "submitted"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusKilled    Status = "killed"
)

// ErrJobState is returned when an operation is not allowed in the current job state.
var ErrJobState = errors.New("operation not allowed in this job state")

type (
	// Status is the lifecycle state of a job.
	Status string

	// Job is a unit of work submitted to a backend.
	//
	// A job starts in the "new" state. Submit hands it to its backend and
	// assigns an ID; Kill stops it while it is submitted or running.
	Job struct {
		ID          int      `doc:"Unique job number, assigned on submission."`
		Name        string   `doc:"Free-form label shown in job listings."`
		Application string   `doc:"Executable or script the job runs."`
		Args        []string `doc:"Arguments passed to the application."`
		Backend     string   `doc:"Name of the backend the job runs on."`
		Status      Status   `doc:"Current lifecycle state."`
	}

	// JobError reports an operation a job could not perform.
	JobError struct {
		JobID  int
		Op     string
		Status Status
		Err    error
	}
)

// Active reports whether the job was handed to a backend and has not finished.
func (s Status) Active() bool {
	return s == StatusSubmitted || s == StatusRunning
}

// Final reports whether the job reached a terminal state.
func (s Status) Final() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusKilled
}

// NewJob creates a job in the "new" state running application with args on
// the local backend.
func NewJob(application string, args ...string) *Job {
	return &Job{
		Application: application,
		Args:        args,
		Backend:     LocalBackendName,
		Status:      StatusNew,
	}
}

// Kill stops an active job.
func (j *Job) Kill() error {
	if !j.Status.Active() {
		return &JobError{JobID: j.ID, Op: "kill", Status: j.Status, Err: ErrJobState}
	}
	j.Status = StatusKilled
	return nil
}

// Copy returns a new, unsubmitted job with the same settings.
func (j *Job) Copy() *Job {
	c := *j
	c.ID = 0
	c.Status = StatusNew
	c.Args = append([]string(nil), j.Args...)
	return &c
}

// String returns "Job <id> (<name>): <status>".
func (j Job) String() string {
	name := j.Name
	if name == "" {
		name = j.Application
	}
	return fmt.Sprintf("Job %d (%s): %s", j.ID, name, j.Status)
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %d: cannot %s while %s: %v", e.JobID, e.Op, e.Status, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }
