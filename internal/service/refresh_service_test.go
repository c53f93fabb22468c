package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdash/course-api/internal/ingest"
	appErrors "github.com/campusdash/course-api/pkg/errors"
	"github.com/campusdash/course-api/pkg/jobs"
)

type dispatcherStub struct {
	enqueued []jobs.Job
	err      error
}

func (d *dispatcherStub) Enqueue(job jobs.Job) error {
	if d.err != nil {
		return d.err
	}
	d.enqueued = append(d.enqueued, job)
	return nil
}

func TestTriggerEnqueuesRefreshJob(t *testing.T) {
	dispatcher := &dispatcherStub{}
	svc := NewRefreshService(dispatcher, nil, nil, nil, nil)

	ack, err := svc.Trigger(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "queued", ack.Status)
	assert.NotEmpty(t, ack.JobID)
	require.Len(t, dispatcher.enqueued, 1)
	assert.Equal(t, ack.JobID, dispatcher.enqueued[0].ID)
	assert.Equal(t, jobTypeDatasetRefresh, dispatcher.enqueued[0].Type)
}

func TestTriggerQueueFailure(t *testing.T) {
	dispatcher := &dispatcherStub{err: errors.New("buffer full")}
	svc := NewRefreshService(dispatcher, nil, nil, nil, nil)

	_, err := svc.Trigger(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestHandleJobRebuildsAndReloads(t *testing.T) {
	reader := &readerStub{rows: map[string][]ingest.Row{
		"catalog.xlsx": {
			{colCatalogPrefix: "CMPS", colCatalogCode: "280", colCatalogName: "Algorithms"},
		},
		"offerings.xlsx": {
			{colOfferingSubject: "CMPS", colOfferingCourseNumber: "280", colOfferingActual: "30", colOfferingMax: "35"},
		},
	}}
	pipeline := newPipeline(reader, &storeStub{})
	courses := NewCourseService(nil, nil, nil)
	svc := NewRefreshService(&dispatcherStub{}, pipeline, courses, nil, nil)

	err := svc.HandleJob(context.Background(), jobs.Job{ID: "job-1", Type: jobTypeDatasetRefresh})
	require.NoError(t, err)

	course, err := courses.GetByKey(context.Background(), "CMPS-280")
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", course.Name)
}

func TestHandleJobPropagatesPipelineFailure(t *testing.T) {
	reader := &readerStub{err: appErrors.ErrSourceMissing}
	pipeline := newPipeline(reader, &storeStub{})
	svc := NewRefreshService(&dispatcherStub{}, pipeline, NewCourseService(nil, nil, nil), nil, nil)

	err := svc.HandleJob(context.Background(), jobs.Job{ID: "job-2", Type: jobTypeDatasetRefresh})
	require.Error(t, err)
}
