package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvaldez/steelbrain/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	err      error
	runs     int
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(_ context.Context) error {
	j.runs++
	return j.err
}

func TestAddJob(t *testing.T) {
	s := New(logger.NewNop())

	job := &fakeJob{name: "test", schedule: "0 0 6 * * *"}
	require.NoError(t, s.AddJob(job))
	assert.Contains(t, s.GetAllJobs(), "test")

	// duplicate registration is rejected
	assert.Error(t, s.AddJob(&fakeJob{name: "test", schedule: "@hourly"}))
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.AddJob(&fakeJob{name: "bad", schedule: "not a cron expr"}))
}

func TestRunJob_NotFound(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.RunJob("missing"))
}

func TestRunJob_RecordsHistory(t *testing.T) {
	s := New(logger.NewNop())
	s.maxRetries = 0

	job := &fakeJob{name: "ok", schedule: "0 0 6 * * *"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("ok")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
	assert.Equal(t, 1, job.runs)
	assert.Equal(t, 1.0, history.GetSuccessRate())
}

func TestRunJob_FailureAfterRetries(t *testing.T) {
	s := New(logger.NewNop())
	s.maxRetries = 2
	s.retryDelay = 0

	job := &fakeJob{name: "flaky", schedule: "0 0 6 * * *", err: errors.New("boom")}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("flaky")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.False(t, history.Results[0].Success)
	assert.Equal(t, "boom", history.Results[0].Error)
	assert.Equal(t, 3, job.runs) // initial + 2 retries
	assert.Len(t, history.GetFailedResults(), 1)
}

func TestJobHistory_Caps(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "x", Success: i%2 == 0})
	}
	assert.Len(t, h.Results, 100)
	assert.Len(t, h.GetLatestResults(5), 5)
	assert.Empty(t, h.GetLatestResults(0))
}
