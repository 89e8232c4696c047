package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cars-g/reporting-api/internal/api/metrics"
	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

// UserHandler handles HTTP requests for profile administration and points.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List user profiles
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role    query     string  false  "Filter by role"
// @Param        limit   query     int     false  "Page size (default 50, max 100)"
// @Param        offset  query     int     false  "Page offset"
// @Success      200     {object}  userListResponse
// @Failure      403     {object}  map[string]any
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), caller, ports.ListUsersInput{
		Role:   c.QueryParam("role"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: list.Users, Total: list.Total})
}

// Leaderboard handles GET /api/users/leaderboard. It is public.
//
// @Summary      Top users by points
// @Tags         users
// @Produce      json
// @Param        limit  query     int  false  "Number of entries (default 10)"
// @Success      200    {object}  leaderboardResponse
// @Router       /api/users/leaderboard [get]
func (h *UserHandler) Leaderboard(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	entries, err := h.service.Leaderboard(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	out := make([]leaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntry{
			ID:          e.ID,
			DisplayName: e.DisplayName,
			Points:      e.Points,
			Role:        e.Role,
			PhotoURL:    e.PhotoURL,
		})
	}
	return c.JSON(http.StatusOK, leaderboardResponse{Leaderboard: out})
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateRole handles PUT /api/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.service.UpdateRole(c.Request().Context(), caller, c.Param("id"), req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User role updated successfully"})
}

// SetBanned handles PUT /api/users/:id/ban.
//
// @Summary      Ban or unban a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User id"
// @Param        body  body      setBannedRequest  true  "Ban flag"
// @Success      200   {object}  setBannedResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/users/{id}/ban [put]
func (h *UserHandler) SetBanned(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req setBannedRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.IsBanned == nil {
		return fmt.Errorf("%w: isBanned must be a boolean", domain.ErrInvalidInput)
	}

	if err := h.service.SetBanned(c.Request().Context(), caller, c.Param("id"), *req.IsBanned); err != nil {
		return err
	}

	verb := "unbanned"
	if *req.IsBanned {
		verb = "banned"
	}
	return c.JSON(http.StatusOK, setBannedResponse{
		Message:  "User " + verb + " successfully",
		IsBanned: *req.IsBanned,
	})
}

// AdjustPoints handles PUT /api/users/:id/points.
//
// @Summary      Manually add or remove points
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User id"
// @Param        body  body      adjustPointsRequest  true  "Signed points delta and reason"
// @Success      200   {object}  adjustPointsResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/users/{id}/points [put]
func (h *UserHandler) AdjustPoints(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var req adjustPointsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Points == nil {
		return fmt.Errorf("%w: Points must be a number", domain.ErrInvalidInput)
	}

	entry, err := h.service.AdjustPoints(c.Request().Context(), caller, c.Param("id"), ports.AdjustPointsInput{
		Points: *req.Points,
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	metrics.PointsAwardedTotal.WithLabelValues("manual").Inc()

	verb := "removed from"
	if entry.Points > 0 {
		verb = "added to"
	}
	return c.JSON(http.StatusOK, adjustPointsResponse{
		Message: fmt.Sprintf("%d points %s user", entry.Points, verb),
		Entry:   entry,
	})
}

// PointsHistory handles GET /api/users/:id/points/history.
//
// @Summary      Points ledger of a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "User id"
// @Param        limit  query     int     false  "Number of entries (default 50)"
// @Success      200    {object}  pointsHistoryResponse
// @Failure      403    {object}  map[string]any
// @Router       /api/users/{id}/points/history [get]
func (h *UserHandler) PointsHistory(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	history, err := h.service.PointsHistory(c.Request().Context(), caller, c.Param("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pointsHistoryResponse{History: history})
}

// Stats handles GET /api/users/:id/stats.
//
// @Summary      Report statistics of a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  statsResponse
// @Failure      403  {object}  map[string]any
// @Router       /api/users/{id}/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Stats: stats})
}
