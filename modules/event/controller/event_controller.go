package controller

import (
	"club-api/core/controller"
	"club-api/core/errors"
	"club-api/modules/event/dto"
	"club-api/modules/event/service"
	"club-api/modules/event/validator"

	"github.com/labstack/echo/v4"
)

// EventController serves both the admin and the coach event routes. Role rules
// live in the service.
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

func (ctrl *EventController) CreateEvent(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.EventRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateEventRequest(req); result.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}

	event, appErr := ctrl.EventService.CreateEvent(c.Request().Context(), actor, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.CreatedResponse(c, event, "Event created successfully")
}

// GetEvents handles GET /events?teamId&date: the month of date with today's
// occurrences split out.
func (ctrl *EventController) GetEvents(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	query := new(dto.WindowQuery)
	if err := c.Bind(query); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid query parameters")
	}

	events, appErr := ctrl.EventService.GetEvents(c.Request().Context(), actor, query)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, events, "Events fetched successfully")
}

func (ctrl *EventController) GetEvent(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	event, appErr := ctrl.EventService.GetEvent(c.Request().Context(), actor, id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "Event fetched successfully")
}

func (ctrl *EventController) UpdateEvent(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	req := new(dto.EventRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateEventRequest(req); result.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}

	event, appErr := ctrl.EventService.UpdateEvent(c.Request().Context(), actor, id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "Event updated successfully")
}

func (ctrl *EventController) UpdateEventCoaches(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	req := new(dto.UpdateCoachesRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateUpdateCoachesRequest(req); result.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}

	event, appErr := ctrl.EventService.UpdateEventCoaches(c.Request().Context(), actor, id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, event, "Event coaches updated successfully")
}

func (ctrl *EventController) DeleteEvent(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	if appErr := ctrl.EventService.DeleteEvent(c.Request().Context(), actor, id); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, nil, "Event deleted successfully")
}
