package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"caseload-api/core/constants"
	"caseload-api/core/controller"
	"caseload-api/core/errors"
	"caseload-api/core/params"
	"caseload-api/core/utils"
	"caseload-api/modules/student/dto"
	"caseload-api/modules/student/service"
)

// StudentController handles caseload student HTTP requests.
type StudentController struct {
	controller.BaseController
	StudentService service.StudentServiceInterface
}

func NewStudentController(svc service.StudentServiceInterface) *StudentController {
	return &StudentController{
		BaseController: controller.NewBaseController(),
		StudentService: svc,
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

// Create handles POST /students
// @Summary Add a student to the caseload
// @Tags Student
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student details"
// @Success 200 {object} entity.Student
// @Failure 400 {object} errors.AppError
// @Router /private/students [post]
func (c *StudentController) Create(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateStudentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.StudentService.Create(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Student created successfully")
}

// List handles GET /students
// @Summary List caseload students
// @Tags Student
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param q query string false "Search by name or school"
// @Success 200 {object} entity.PaginatedStudentEntity
// @Router /private/students [get]
func (c *StudentController) List(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	qp := params.NewQueryParams(ctx)
	result, appErr := c.StudentService.List(ctx.Request().Context(), userID, *qp)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Get handles GET /students/:id
// @Summary Get a student record
// @Tags Student
// @Security BearerAuth
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} entity.Student
// @Failure 404 {object} errors.AppError
// @Router /private/students/{id} [get]
func (c *StudentController) Get(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	result, appErr := c.StudentService.Get(ctx.Request().Context(), userID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Update handles PUT /students/:id
// @Summary Update a student record
// @Tags Student
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student details"
// @Success 200 {object} entity.Student
// @Router /private/students/{id} [put]
func (c *StudentController) Update(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	var req dto.UpdateStudentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.StudentService.Update(ctx.Request().Context(), userID, studentID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Student updated successfully")
}

// Delete handles DELETE /students/:id
// @Summary Remove a student from the caseload
// @Description Calendar events that reference the student are left in place
// @Tags Student
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/students/{id} [delete]
func (c *StudentController) Delete(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	if appErr := c.StudentService.Delete(ctx.Request().Context(), userID, studentID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Student deleted successfully")
}
