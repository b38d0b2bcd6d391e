package controller

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"caseload-api/core/constants"
	"caseload-api/core/controller"
	"caseload-api/core/errors"
	"caseload-api/core/utils"
	"caseload-api/modules/calendar/dto"
	"caseload-api/modules/calendar/service"
)

// CalendarController handles calendar event HTTP requests.
type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarServiceInterface
}

func NewCalendarController(svc service.CalendarServiceInterface) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: svc,
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

// CreateEvent handles POST /events
// @Summary Create calendar event
// @Description Creates a calendar event, running the drive-time conflict check unless overridden
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /private/events [post]
func (c *CalendarController) CreateEvent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.CalendarService.CreateEvent(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// GetEvent handles GET /events/:id
// @Summary Get calendar event
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id} [get]
func (c *CalendarController) GetEvent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.CalendarService.GetEvent(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetRange handles GET /events?from=...&to=...
// @Summary List calendar events in a window
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param from query string true "RFC3339 start of window"
// @Param to query string true "RFC3339 end of window"
// @Success 200 {array} dto.EventResponse
// @Router /private/events [get]
func (c *CalendarController) GetRange(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	from, err := time.Parse(time.RFC3339, ctx.QueryParam("from"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid 'from' time, expected RFC3339")
	}
	to, err := time.Parse(time.RFC3339, ctx.QueryParam("to"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid 'to' time, expected RFC3339")
	}

	result, appErr := c.CalendarService.GetRange(ctx.Request().Context(), userID, from, to)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetDay handles GET /events/day/:date
// @Summary Day view
// @Description Returns the events of one local calendar day, sorted by start time
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param date path string true "Day in YYYY-MM-DD"
// @Success 200 {object} dto.DayResponse
// @Router /private/events/day/{date} [get]
func (c *CalendarController) GetDay(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	day, err := time.ParseInLocation("2006-01-02", ctx.Param("date"), time.Local)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid date, expected YYYY-MM-DD")
	}

	result, appErr := c.CalendarService.GetDay(ctx.Request().Context(), userID, day)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateEvent handles PUT /events/:id
// @Summary Update calendar event
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event details"
// @Success 200 {object} dto.EventResponse
// @Failure 409 {object} errors.AppError
// @Router /private/events/{id} [put]
func (c *CalendarController) UpdateEvent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.CalendarService.UpdateEvent(ctx.Request().Context(), userID, eventID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// DeleteEvent handles DELETE /events/:id
// @Summary Delete calendar event
// @Tags Calendar
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	if appErr := c.CalendarService.DeleteEvent(ctx.Request().Context(), userID, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// CheckConflict handles POST /events/check-conflict
// @Summary Pre-save drive-time conflict check
// @Description Reports whether the candidate slot's declared drive time fits the gap after the previous in-person event
// @Tags Calendar
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ConflictCheckRequest true "Candidate slot"
// @Success 200 {object} dto.ConflictResponse
// @Router /private/events/check-conflict [post]
func (c *CalendarController) CheckConflict(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.ConflictCheckRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.CalendarService.CheckConflict(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// PreviewOccurrences handles GET /events/:id/occurrences
// @Summary Preview recurrence occurrences
// @Description Read-only expansion of the event's recurrence descriptor; nothing is persisted
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Param limit query int false "Max occurrences (default 10)"
// @Success 200 {object} dto.OccurrencePreviewResponse
// @Router /private/events/{id}/occurrences [get]
func (c *CalendarController) PreviewOccurrences(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	limit := 10
	if raw := ctx.QueryParam("limit"); raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 {
			limit = n
		}
	}

	result, appErr := c.CalendarService.PreviewEventOccurrences(ctx.Request().Context(), userID, eventID, time.Now(), limit)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListStudentEvents handles GET /students/:studentId/events
// @Summary List a student's scheduled events
// @Tags Calendar
// @Security BearerAuth
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {array} dto.EventResponse
// @Router /private/students/{studentId}/events [get]
func (c *CalendarController) ListStudentEvents(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	studentID, err := uuid.Parse(ctx.Param("studentId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid student ID")
	}

	result, appErr := c.CalendarService.ListByStudent(ctx.Request().Context(), userID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
