package repository

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/campusdash/course-api/internal/models"
	appErrors "github.com/campusdash/course-api/pkg/errors"
	"github.com/campusdash/course-api/pkg/storage"
)

// SnapshotRepository persists the preprocessed dataset as a single JSON
// artifact and loads it back for serving. Writes are whole-file; the last
// writer wins.
type SnapshotRepository struct {
	store    *storage.LocalStorage
	filename string
	logger   *zap.Logger
}

// NewSnapshotRepository constructs the repository around the artifact path.
func NewSnapshotRepository(artifactPath string, logger *zap.Logger) (*SnapshotRepository, error) {
	store, err := storage.NewLocalStorage(filepath.Dir(artifactPath))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotRepository{
		store:    store,
		filename: filepath.Base(artifactPath),
		logger:   logger,
	}, nil
}

// Save serialises the dataset with indentation, matching the artifact
// layout the dashboard tooling expects.
func (r *SnapshotRepository) Save(dataset *models.Dataset) error {
	payload, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if _, err := r.store.Save(r.filename, payload); err != nil {
		return err
	}
	r.logger.Sugar().Infow("dataset artifact written", "file", r.filename, "courses", dataset.Metadata.TotalCourses)
	return nil
}

// Load reads the artifact back into memory. A missing artifact surfaces
// as a typed dataset-unavailable error so the API can answer 503 instead
// of crashing.
func (r *SnapshotRepository) Load() (*models.Dataset, error) {
	if !r.store.Exists(r.filename) {
		return nil, appErrors.Clone(appErrors.ErrDatasetUnavailable, fmt.Sprintf("artifact %s not found, run the preprocessor first", r.filename))
	}
	raw, err := r.store.Read(r.filename)
	if err != nil {
		return nil, err
	}
	dataset := &models.Dataset{}
	if err := json.Unmarshal(raw, dataset); err != nil {
		return nil, fmt.Errorf("decode dataset artifact: %w", err)
	}
	return dataset, nil
}
