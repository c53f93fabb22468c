package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusdash/course-api/pkg/errors"
)

type cacheRepoStub struct {
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{entries: map[string][]byte{}}
}

func (s *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	raw, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = raw
	return nil
}

func (s *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.entries = map[string][]byte{}
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newCacheRepoStub()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	svc.Set(context.Background(), "k", map[string]string{"a": "b"})

	dest := map[string]string{}
	hit := svc.Get(context.Background(), "k", &dest)
	assert.True(t, hit)
	assert.Equal(t, "b", dest["a"])
}

func TestCacheServiceMiss(t *testing.T) {
	svc := NewCacheService(newCacheRepoStub(), nil, time.Minute, nil, true)

	dest := map[string]string{}
	assert.False(t, svc.Get(context.Background(), "absent", &dest))
}

func TestCacheServiceDegradesOnRepoError(t *testing.T) {
	repo := newCacheRepoStub()
	repo.getErr = errors.New("connection refused")
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	dest := map[string]string{}
	assert.False(t, svc.Get(context.Background(), "k", &dest))
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newCacheRepoStub()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	svc.Set(context.Background(), "k", "v")
	assert.Empty(t, repo.entries)
}

func TestListServesFromCacheOnSecondCall(t *testing.T) {
	cacheSvc := NewCacheService(newCacheRepoStub(), nil, time.Minute, nil, true)
	svc := NewCourseService(testDataset(), cacheSvc, nil)

	first, cacheHit, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)

	second, cacheHit, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, first.Metadata.RunID, second.Metadata.RunID)
	assert.Len(t, second.Courses, len(first.Courses))
}
