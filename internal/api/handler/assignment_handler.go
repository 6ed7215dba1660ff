package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/updates-app/updates-backend/internal/api/metrics"
	"github.com/updates-app/updates-backend/internal/core/domain"
	"github.com/updates-app/updates-backend/internal/core/ports"
)

// AssignmentHandler exposes the superuser-only assignment ledger endpoints.
type AssignmentHandler struct {
	service ports.AssignmentService
}

func NewAssignmentHandler(service ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

type assignRequest struct {
	UserID   string `json:"user_id"   validate:"required"`
	ChurchID string `json:"church_id" validate:"required"`
}

type assignmentsResponse struct {
	Assignments []domain.ChurchAssignment `json:"assignments"`
}

// List returns a user's church assignments.
//
// @Summary      List a user's church assignments
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  assignmentsResponse
// @Failure      404     {object}  map[string]string
// @Router       /admin/assignments/{userID} [get]
func (h *AssignmentHandler) List(c echo.Context) error {
	assignments, err := h.service.List(c.Request().Context(), c.Param("userID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignmentsResponse{Assignments: assignments})
}

// Assign makes a user the admin of a church and marks them assigned.
//
// @Summary      Assign a church admin
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignRequest  true  "User and church"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/assignments [post]
func (h *AssignmentHandler) Assign(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Assign(c.Request().Context(), req.UserID, req.ChurchID); err != nil {
		return err
	}

	metrics.AssignmentsTotal.WithLabelValues("assign").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "Assignment created"})
}

// Unassign removes a user's assignment to a church. The user's enrollment
// status is not reverted.
//
// @Summary      Remove a church admin assignment
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        userID    path      string  true  "User ID"
// @Param        churchID  path      string  true  "Church ID"
// @Success      200       {object}  messageResponse
// @Failure      404       {object}  map[string]string
// @Router       /admin/assignments/{userID}/{churchID} [delete]
func (h *AssignmentHandler) Unassign(c echo.Context) error {
	if err := h.service.Unassign(c.Request().Context(), c.Param("userID"), c.Param("churchID")); err != nil {
		return err
	}

	metrics.AssignmentsTotal.WithLabelValues("unassign").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Assignment removed"})
}
