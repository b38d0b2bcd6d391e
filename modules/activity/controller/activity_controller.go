package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"caseload-api/core/constants"
	"caseload-api/core/controller"
	"caseload-api/core/errors"
	"caseload-api/core/utils"
	"caseload-api/modules/activity/dto"
	"caseload-api/modules/activity/service"
)

// ActivityController handles activity and play-session HTTP requests.
type ActivityController struct {
	controller.BaseController
	ActivityService service.ActivityServiceInterface
}

func NewActivityController(svc service.ActivityServiceInterface) *ActivityController {
	return &ActivityController{
		BaseController:  controller.NewBaseController(),
		ActivityService: svc,
	}
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}
	return claims.UserID, nil
}

// Create handles POST /activities
// @Summary Create an auto-scored activity
// @Tags Activity
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateActivityRequest true "Activity definition"
// @Success 200 {object} dto.ActivityResponse
// @Router /private/activities [post]
func (c *ActivityController) Create(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateActivityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.ActivityService.CreateActivity(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Activity created successfully")
}

// List handles GET /activities
// @Summary List the caller's activities
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Success 200 {array} entity.Activity
// @Router /private/activities [get]
func (c *ActivityController) List(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.ActivityService.ListActivities(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Get handles GET /activities/:id
// @Summary Get an activity with its items
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} dto.ActivityResponse
// @Router /private/activities/{id} [get]
func (c *ActivityController) Get(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	activityID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	result, appErr := c.ActivityService.GetActivity(ctx.Request().Context(), userID, activityID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetByShareCode handles GET /activities/shared/:code
// @Summary Resolve a shared activity by its share code
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param code path string true "Share code"
// @Success 200 {object} dto.ActivityResponse
// @Router /private/activities/shared/{code} [get]
func (c *ActivityController) GetByShareCode(ctx echo.Context) error {
	if _, err := getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	code := ctx.Param("code")
	if code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing share code")
	}

	result, appErr := c.ActivityService.GetActivityByShareCode(ctx.Request().Context(), code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Update handles PUT /activities/:id
// @Summary Replace an activity's details and items
// @Tags Activity
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body dto.UpdateActivityRequest true "Activity definition"
// @Success 200 {object} dto.ActivityResponse
// @Router /private/activities/{id} [put]
func (c *ActivityController) Update(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	activityID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	var req dto.UpdateActivityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.ActivityService.UpdateActivity(ctx.Request().Context(), userID, activityID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Activity updated successfully")
}

// Delete handles DELETE /activities/:id
// @Summary Delete an activity
// @Tags Activity
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/activities/{id} [delete]
func (c *ActivityController) Delete(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	activityID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	if appErr := c.ActivityService.DeleteActivity(ctx.Request().Context(), userID, activityID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Activity deleted successfully")
}

// StartSession handles POST /activities/:id/sessions
// @Summary Start a play session for a student
// @Tags Activity
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param request body dto.StartSessionRequest true "Student"
// @Success 200 {object} entity.PlaySession
// @Router /private/activities/{id}/sessions [post]
func (c *ActivityController) StartSession(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	activityID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid activity ID")
	}

	var req dto.StartSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.ActivityService.StartSession(ctx.Request().Context(), userID, activityID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Session started")
}

// SubmitSession handles POST /activity-sessions/:id/submit
// @Summary Submit answers and score the session
// @Tags Activity
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SubmitSessionRequest true "Answers"
// @Success 200 {object} dto.SessionSummaryResponse
// @Router /private/activity-sessions/{id}/submit [post]
func (c *ActivityController) SubmitSession(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid session ID")
	}

	var req dto.SubmitSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.ActivityService.SubmitSession(ctx.Request().Context(), userID, sessionID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Session completed")
}

// GetSessionSummary handles GET /activity-sessions/:id
// @Summary Get a session's score and per-item record
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionSummaryResponse
// @Router /private/activity-sessions/{id} [get]
func (c *ActivityController) GetSessionSummary(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid session ID")
	}

	result, appErr := c.ActivityService.GetSessionSummary(ctx.Request().Context(), userID, sessionID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListSessionsByStudent handles GET /students/:studentId/activity-sessions
// @Summary List a student's play sessions
// @Tags Activity
// @Security BearerAuth
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {array} entity.PlaySession
// @Router /private/students/{studentId}/activity-sessions [get]
func (c *ActivityController) ListSessionsByStudent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	result, appErr := c.ActivityService.ListSessionsByStudent(ctx.Request().Context(), userID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
