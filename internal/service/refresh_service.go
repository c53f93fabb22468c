package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusdash/course-api/internal/dto"
	appErrors "github.com/campusdash/course-api/pkg/errors"
	"github.com/campusdash/course-api/pkg/jobs"
)

const jobTypeDatasetRefresh = "dataset_refresh"

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

// RefreshService triggers asynchronous dataset rebuilds. The pipeline is
// idempotent and last-writer-wins on the artifact, so overlapping runs
// are tolerated rather than locked out.
type RefreshService struct {
	queue      jobDispatcher
	preprocess *PreprocessService
	courses    *CourseService
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewRefreshService constructs the refresh service.
func NewRefreshService(queue jobDispatcher, preprocess *PreprocessService, courses *CourseService, metrics *MetricsService, logger *zap.Logger) *RefreshService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefreshService{
		queue:      queue,
		preprocess: preprocess,
		courses:    courses,
		metrics:    metrics,
		logger:     logger,
	}
}

// Trigger enqueues one refresh job and returns its acknowledgement.
func (s *RefreshService) Trigger(ctx context.Context) (*dto.RefreshResponse, error) {
	job := jobs.Job{ID: uuid.NewString(), Type: jobTypeDatasetRefresh}
	if err := s.queue.Enqueue(job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue refresh job")
	}
	s.logger.Sugar().Infow("dataset refresh queued", "job_id", job.ID)
	return &dto.RefreshResponse{JobID: job.ID, Status: "queued"}, nil
}

// HandleJob is the queue handler: it reruns the pipeline and swaps the
// fresh snapshot into the query service.
func (s *RefreshService) HandleJob(ctx context.Context, job jobs.Job) error {
	start := time.Now()
	dataset, err := s.preprocess.Run(ctx)
	if s.metrics != nil {
		s.metrics.RecordRefresh(err, time.Since(start))
	}
	if err != nil {
		s.logger.Sugar().Errorw("dataset refresh failed", "job_id", job.ID, "error", err)
		return err
	}
	s.courses.Reload(ctx, dataset)
	s.logger.Sugar().Infow("dataset refresh complete", "job_id", job.ID, "run_id", dataset.Metadata.RunID)
	return nil
}
