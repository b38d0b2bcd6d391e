package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"caseload-api/core/constants"
	"caseload-api/core/controller"
	"caseload-api/core/errors"
	"caseload-api/core/utils"
	"caseload-api/modules/goal/dto"
	"caseload-api/modules/goal/service"
)

// GoalController handles IEP goal HTTP requests.
type GoalController struct {
	controller.BaseController
	GoalService service.GoalServiceInterface
}

func NewGoalController(svc service.GoalServiceInterface) *GoalController {
	return &GoalController{
		BaseController: controller.NewBaseController(),
		GoalService:    svc,
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

// Create handles POST /goals
// @Summary Add an IEP goal
// @Tags Goal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateGoalRequest true "Goal details"
// @Success 200 {object} entity.IEPGoal
// @Router /private/goals [post]
func (c *GoalController) Create(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateGoalRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.GoalService.Create(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Goal created successfully")
}

// Get handles GET /goals/:id
// @Summary Get a goal with its progress history
// @Tags Goal
// @Security BearerAuth
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} dto.GoalResponse
// @Router /private/goals/{id} [get]
func (c *GoalController) Get(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid goal ID")
	}

	result, appErr := c.GoalService.Get(ctx.Request().Context(), userID, goalID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListByStudent handles GET /students/:studentId/goals
// @Summary List a student's IEP goals
// @Tags Goal
// @Security BearerAuth
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {array} entity.IEPGoal
// @Router /private/students/{studentId}/goals [get]
func (c *GoalController) ListByStudent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	result, appErr := c.GoalService.ListByStudent(ctx.Request().Context(), userID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Update handles PUT /goals/:id
// @Summary Update a goal
// @Tags Goal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body dto.UpdateGoalRequest true "Goal details"
// @Success 200 {object} entity.IEPGoal
// @Router /private/goals/{id} [put]
func (c *GoalController) Update(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid goal ID")
	}

	var req dto.UpdateGoalRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.GoalService.Update(ctx.Request().Context(), userID, goalID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Goal updated successfully")
}

// Delete handles DELETE /goals/:id
// @Summary Delete a goal
// @Tags Goal
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/goals/{id} [delete]
func (c *GoalController) Delete(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid goal ID")
	}

	if appErr := c.GoalService.Delete(ctx.Request().Context(), userID, goalID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Goal deleted successfully")
}

// AddProgress handles POST /goals/:id/progress
// @Summary Record progress against a goal
// @Tags Goal
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body dto.AddProgressRequest true "Progress entry"
// @Success 200 {object} entity.GoalProgress
// @Router /private/goals/{id}/progress [post]
func (c *GoalController) AddProgress(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid goal ID")
	}

	var req dto.AddProgressRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.GoalService.AddProgress(ctx.Request().Context(), userID, goalID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Progress recorded")
}
