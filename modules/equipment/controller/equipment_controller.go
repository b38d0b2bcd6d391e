package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"caseload-api/core/constants"
	"caseload-api/core/controller"
	"caseload-api/core/errors"
	"caseload-api/core/utils"
	"caseload-api/modules/equipment/dto"
	"caseload-api/modules/equipment/service"
)

// EquipmentController handles equipment tracking HTTP requests.
type EquipmentController struct {
	controller.BaseController
	EquipmentService service.EquipmentServiceInterface
}

func NewEquipmentController(svc service.EquipmentServiceInterface) *EquipmentController {
	return &EquipmentController{
		BaseController:   controller.NewBaseController(),
		EquipmentService: svc,
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

// Create handles POST /equipment
// @Summary Register a device
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEquipmentRequest true "Device details"
// @Success 200 {object} entity.Equipment
// @Router /private/equipment [post]
func (c *EquipmentController) Create(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateEquipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.EquipmentService.Create(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Equipment created successfully")
}

// List handles GET /equipment
// @Summary List the caller's devices
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Success 200 {array} entity.Equipment
// @Router /private/equipment [get]
func (c *EquipmentController) List(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.EquipmentService.List(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Get handles GET /equipment/:id
// @Summary Get a device with loan history and attachments
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} dto.EquipmentResponse
// @Router /private/equipment/{id} [get]
func (c *EquipmentController) Get(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	equipmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid equipment ID")
	}

	result, appErr := c.EquipmentService.Get(ctx.Request().Context(), userID, equipmentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListByStudent handles GET /students/:studentId/equipment
// @Summary List devices assigned to a student
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {array} entity.Equipment
// @Router /private/students/{studentId}/equipment [get]
func (c *EquipmentController) ListByStudent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	result, appErr := c.EquipmentService.ListByStudent(ctx.Request().Context(), userID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Update handles PUT /equipment/:id
// @Summary Update a device
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.UpdateEquipmentRequest true "Device details"
// @Success 200 {object} entity.Equipment
// @Router /private/equipment/{id} [put]
func (c *EquipmentController) Update(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	equipmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid equipment ID")
	}

	var req dto.UpdateEquipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.EquipmentService.Update(ctx.Request().Context(), userID, equipmentID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Equipment updated successfully")
}

// Delete handles DELETE /equipment/:id
// @Summary Delete a device
// @Tags Equipment
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/equipment/{id} [delete]
func (c *EquipmentController) Delete(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	equipmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid equipment ID")
	}

	if appErr := c.EquipmentService.Delete(ctx.Request().Context(), userID, equipmentID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Equipment deleted successfully")
}

// Assign handles POST /equipment/:id/assign
// @Summary Loan a device to a student
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.AssignEquipmentRequest true "Assignment"
// @Success 200 {object} entity.Equipment
// @Router /private/equipment/{id}/assign [post]
func (c *EquipmentController) Assign(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	equipmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid equipment ID")
	}

	var req dto.AssignEquipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.EquipmentService.Assign(ctx.Request().Context(), userID, equipmentID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Equipment assigned successfully")
}

// Return handles POST /equipment/:id/return
// @Summary Close the open loan on a device
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.ReturnEquipmentRequest true "Return note"
// @Success 200 {object} entity.Equipment
// @Router /private/equipment/{id}/return [post]
func (c *EquipmentController) Return(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	equipmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid equipment ID")
	}

	var req dto.ReturnEquipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.EquipmentService.Return(ctx.Request().Context(), userID, equipmentID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Equipment returned successfully")
}

// CreateAttachment handles POST /equipment/:id/attachments
// @Summary Request a presigned upload slot for a device file
// @Tags Equipment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.CreateAttachmentRequest true "File metadata"
// @Success 200 {object} dto.AttachmentUploadResponse
// @Router /private/equipment/{id}/attachments [post]
func (c *EquipmentController) CreateAttachment(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	equipmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid equipment ID")
	}

	var req dto.CreateAttachmentRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.EquipmentService.CreateAttachment(ctx.Request().Context(), userID, equipmentID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Attachment created successfully")
}

// GetAttachment handles GET /equipment/attachments/:attachmentId
// @Summary Get a presigned download URL for an attachment
// @Tags Equipment
// @Security BearerAuth
// @Produce json
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} dto.AttachmentDownloadResponse
// @Router /private/equipment/attachments/{attachmentId} [get]
func (c *EquipmentController) GetAttachment(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	attachmentID, err := uuid.Parse(ctx.Param("attachmentId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid attachment ID")
	}

	result, appErr := c.EquipmentService.GetAttachmentURL(ctx.Request().Context(), userID, attachmentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteAttachment handles DELETE /equipment/attachments/:attachmentId
// @Summary Delete an attachment
// @Tags Equipment
// @Security BearerAuth
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/equipment/attachments/{attachmentId} [delete]
func (c *EquipmentController) DeleteAttachment(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	attachmentID, err := uuid.Parse(ctx.Param("attachmentId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid attachment ID")
	}

	if appErr := c.EquipmentService.DeleteAttachment(ctx.Request().Context(), userID, attachmentID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Attachment deleted successfully")
}
