package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/campusdash/course-api/internal/dto"
	appErrors "github.com/campusdash/course-api/pkg/errors"
	"github.com/campusdash/course-api/pkg/response"
)

type refreshTrigger interface {
	Trigger(ctx context.Context) (*dto.RefreshResponse, error)
}

// AdminHandler exposes operational endpoints.
type AdminHandler struct {
	refresh refreshTrigger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(refresh refreshTrigger) *AdminHandler {
	return &AdminHandler{refresh: refresh}
}

// Refresh godoc
// @Summary Trigger an asynchronous dataset rebuild
// @Tags Admin
// @Produce json
// @Success 202 {object} response.Envelope
// @Router /admin/refresh [post]
func (h *AdminHandler) Refresh(c *gin.Context) {
	if h.refresh == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	ack, err := h.refresh.Trigger(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, ack)
}
