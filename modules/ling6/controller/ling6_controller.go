package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"caseload-api/core/constants"
	"caseload-api/core/controller"
	"caseload-api/core/errors"
	"caseload-api/core/utils"
	"caseload-api/modules/ling6/dto"
	"caseload-api/modules/ling6/service"
)

// Ling6Controller handles Ling 6 listening check HTTP requests.
type Ling6Controller struct {
	controller.BaseController
	Ling6Service service.Ling6ServiceInterface
}

func NewLing6Controller(svc service.Ling6ServiceInterface) *Ling6Controller {
	return &Ling6Controller{
		BaseController: controller.NewBaseController(),
		Ling6Service:   svc,
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

// CreateSession handles POST /ling6-sessions
// @Summary Record a Ling 6 listening check
// @Description Stores the session's trials and returns the computed per-sound summary
// @Tags Ling6
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Session with trials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} errors.AppError
// @Router /private/ling6-sessions [post]
func (c *Ling6Controller) CreateSession(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.Ling6Service.CreateSession(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Listening check saved")
}

// GetSession handles GET /ling6-sessions/:id
// @Summary Get a listening check with its summary
// @Tags Ling6
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} errors.AppError
// @Router /private/ling6-sessions/{id} [get]
func (c *Ling6Controller) GetSession(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid session ID")
	}

	result, appErr := c.Ling6Service.GetSession(ctx.Request().Context(), userID, sessionID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListByStudent handles GET /students/:studentId/ling6-sessions
// @Summary List a student's listening checks
// @Tags Ling6
// @Security BearerAuth
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {array} dto.SessionResponse
// @Router /private/students/{studentId}/ling6-sessions [get]
func (c *Ling6Controller) ListByStudent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	result, appErr := c.Ling6Service.ListByStudent(ctx.Request().Context(), userID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteSession handles DELETE /ling6-sessions/:id
// @Summary Delete a listening check
// @Tags Ling6
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/ling6-sessions/{id} [delete]
func (c *Ling6Controller) DeleteSession(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid session ID")
	}

	if appErr := c.Ling6Service.DeleteSession(ctx.Request().Context(), userID, sessionID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Session deleted")
}
