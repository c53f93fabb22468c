package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdash/course-api/internal/dto"
)

type refreshStub struct {
	ack *dto.RefreshResponse
	err error
}

func (s *refreshStub) Trigger(ctx context.Context) (*dto.RefreshResponse, error) {
	return s.ack, s.err
}

func TestRefreshAccepted(t *testing.T) {
	stub := &refreshStub{ack: &dto.RefreshResponse{JobID: "job-1", Status: "queued"}}
	h := NewAdminHandler(stub)

	recorder := performRequest(t, func(r *gin.Engine) {
		r.POST("/admin/refresh", h.Refresh)
	}, http.MethodPost, "/admin/refresh")

	assert.Equal(t, http.StatusAccepted, recorder.Code)

	envelope := decodeEnvelope(t, recorder)
	var ack dto.RefreshResponse
	require.NoError(t, json.Unmarshal(envelope["data"], &ack))
	assert.Equal(t, "job-1", ack.JobID)
	assert.Equal(t, "queued", ack.Status)
}

func TestRefreshFailure(t *testing.T) {
	stub := &refreshStub{err: errors.New("queue full")}
	h := NewAdminHandler(stub)

	recorder := performRequest(t, func(r *gin.Engine) {
		r.POST("/admin/refresh", h.Refresh)
	}, http.MethodPost, "/admin/refresh")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
