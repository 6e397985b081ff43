package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatepay/merchant-onboarding/internal/core/domain"
	"github.com/gatepay/merchant-onboarding/internal/core/ports"
)

// AdminHandler serves the admin console. Every route sits behind RequireAdmin.
type AdminHandler struct {
	review ports.ReviewService
	stats  ports.StatsService
}

func NewAdminHandler(review ports.ReviewService, stats ports.StatsService) *AdminHandler {
	return &AdminHandler{review: review, stats: stats}
}

type listApplicationsQuery struct {
	Status string `json:"status" query:"status" validate:"omitempty,oneof=pending under_review approved rejected"`
	Page   int    `json:"page" query:"page" validate:"gte=0"`
	Limit  int    `json:"limit" query:"limit" validate:"gte=0"`
}

type applicationPageResponse struct {
	Items      []*domain.CompanyApplication `json:"items"`
	Total      int64                        `json:"total"`
	Page       int                          `json:"page"`
	Limit      int                          `json:"limit"`
	TotalPages int                          `json:"total_pages"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type settingRequest struct {
	Value string `json:"value"`
}

type activityQuery struct {
	Limit int `json:"limit" query:"limit" validate:"gte=0"`
}

type overviewResponse struct {
	Pending        *int64                `json:"pending"`
	UnderReview    *int64                `json:"under_review"`
	RecentActivity []*domain.ActivityLog `json:"recent_activity"`
	Errors         map[string]string     `json:"errors,omitempty"`
}

// ListApplications handles GET /admin/v1/applications.
//
// @Summary      List company applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, under_review, approved or rejected"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  applicationPageResponse
// @Failure      403     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /admin/v1/applications [get]
func (h *AdminHandler) ListApplications(c echo.Context) error {
	var q listApplicationsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	page, err := h.review.ListApplications(c.Request().Context(), ports.ListApplicationsFilter{
		Status: q.Status,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applicationPageResponse{
		Items:      page.Items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}

// GetApplication handles GET /admin/v1/applications/:id.
//
// @Summary      Get a company application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  domain.CompanyApplication
// @Failure      404  {object}  map[string]string
// @Router       /admin/v1/applications/{id} [get]
func (h *AdminHandler) GetApplication(c echo.Context) error {
	app, err := h.review.GetApplication(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// StartReview handles POST /admin/v1/applications/:id/review.
//
// @Summary      Move an application under review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  domain.CompanyApplication
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/v1/applications/{id}/review [post]
func (h *AdminHandler) StartReview(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	app, err := h.review.StartReview(c.Request().Context(), c.Param("id"), p.IdentityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Approve handles POST /admin/v1/applications/:id/approve.
//
// @Summary      Approve an application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  domain.CompanyApplication
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/v1/applications/{id}/approve [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	app, err := h.review.Approve(c.Request().Context(), c.Param("id"), p.IdentityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Reject handles POST /admin/v1/applications/:id/reject. A blank reason is refused.
//
// @Summary      Reject an application
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Application ID"
// @Param        body  body      rejectRequest  true  "Rejection reason"
// @Success      200   {object}  domain.CompanyApplication
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/v1/applications/{id}/reject [post]
func (h *AdminHandler) Reject(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	app, err := h.review.Reject(c.Request().Context(), c.Param("id"), p.IdentityID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// UpdateSetting handles PUT /admin/v1/settings/:key.
//
// @Summary      Update a platform setting
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path      string          true  "Setting key"
// @Param        body  body      settingRequest  true  "New value"
// @Success      200   {object}  domain.PlatformSetting
// @Failure      422   {object}  map[string]string
// @Router       /admin/v1/settings/{key} [put]
func (h *AdminHandler) UpdateSetting(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req settingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	setting, err := h.review.UpdateSetting(c.Request().Context(), c.Param("key"), req.Value, p.IdentityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}

// Stats handles GET /admin/v1/stats. Failed figures are null and named in errors.
//
// @Summary      Admin overview
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  overviewResponse
// @Router       /admin/v1/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	ov, err := h.stats.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overviewResponse{
		Pending:        ov.Pending,
		UnderReview:    ov.UnderReview,
		RecentActivity: ov.RecentActivity,
		Errors:         ov.Errors,
	})
}

// Activity handles GET /admin/v1/activity.
//
// @Summary      Recent audit entries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 20, max 100)"
// @Success      200    {array}   domain.ActivityLog
// @Router       /admin/v1/activity [get]
func (h *AdminHandler) Activity(c echo.Context) error {
	var q activityQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	entries, err := h.review.RecentActivity(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.ActivityLog{}
	}
	return c.JSON(http.StatusOK, entries)
}
