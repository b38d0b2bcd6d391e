package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"caseload-api/core/constants"
	"caseload-api/core/controller"
	"caseload-api/core/errors"
	"caseload-api/core/utils"
	"caseload-api/modules/servicelog/dto"
	"caseload-api/modules/servicelog/service"
)

// ServiceLogController handles service-hour logging HTTP requests.
type ServiceLogController struct {
	controller.BaseController
	ServiceLogService service.ServiceLogServiceInterface
}

func NewServiceLogController(svc service.ServiceLogServiceInterface) *ServiceLogController {
	return &ServiceLogController{
		BaseController:    controller.NewBaseController(),
		ServiceLogService: svc,
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

// Create handles POST /service-logs
// @Summary Log delivered service minutes
// @Tags ServiceLog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceLogRequest true "Service log entry"
// @Success 200 {object} entity.ServiceLog
// @Router /private/service-logs [post]
func (c *ServiceLogController) Create(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateServiceLogRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.ServiceLogService.Create(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Service log created successfully")
}

// Get handles GET /service-logs/:id
// @Summary Get a service log entry
// @Tags ServiceLog
// @Security BearerAuth
// @Produce json
// @Param id path string true "Service log ID"
// @Success 200 {object} entity.ServiceLog
// @Router /private/service-logs/{id} [get]
func (c *ServiceLogController) Get(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	logID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid service log ID")
	}

	result, appErr := c.ServiceLogService.Get(ctx.Request().Context(), userID, logID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListByStudent handles GET /students/:studentId/service-logs
// @Summary List a student's service logs
// @Tags ServiceLog
// @Security BearerAuth
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {array} entity.ServiceLog
// @Router /private/students/{studentId}/service-logs [get]
func (c *ServiceLogController) ListByStudent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	result, appErr := c.ServiceLogService.ListByStudent(ctx.Request().Context(), userID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// MonthlyTotals handles GET /students/:studentId/service-logs/monthly
// @Summary Monthly delivered-minute totals
// @Tags ServiceLog
// @Security BearerAuth
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {array} entity.MonthlyTotal
// @Router /private/students/{studentId}/service-logs/monthly [get]
func (c *ServiceLogController) MonthlyTotals(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	result, appErr := c.ServiceLogService.MonthlyTotals(ctx.Request().Context(), userID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Update handles PUT /service-logs/:id
// @Summary Update a service log entry
// @Tags ServiceLog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Service log ID"
// @Param request body dto.UpdateServiceLogRequest true "Service log entry"
// @Success 200 {object} entity.ServiceLog
// @Router /private/service-logs/{id} [put]
func (c *ServiceLogController) Update(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	logID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid service log ID")
	}

	var req dto.UpdateServiceLogRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.ServiceLogService.Update(ctx.Request().Context(), userID, logID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Service log updated successfully")
}

// Delete handles DELETE /service-logs/:id
// @Summary Delete a service log entry
// @Tags ServiceLog
// @Security BearerAuth
// @Param id path string true "Service log ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/service-logs/{id} [delete]
func (c *ServiceLogController) Delete(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	logID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid service log ID")
	}

	if appErr := c.ServiceLogService.Delete(ctx.Request().Context(), userID, logID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Service log deleted successfully")
}
