package controller

import (
	"club-api/core/controller"
	"club-api/core/errors"
	"club-api/modules/timesheet/dto"
	"club-api/modules/timesheet/service"
	"club-api/modules/timesheet/validator"

	"github.com/labstack/echo/v4"
)

type TimesheetController struct {
	controller.BaseController
	TimesheetService service.TimesheetServiceInterface
}

func NewTimesheetController(svc service.TimesheetServiceInterface) *TimesheetController {
	return &TimesheetController{
		BaseController:   controller.NewBaseController(),
		TimesheetService: svc,
	}
}

func (ctrl *TimesheetController) bindQuery(c echo.Context) (*dto.TimesheetQuery, error) {
	q := new(dto.TimesheetQuery)
	if err := c.Bind(q); err != nil {
		return nil, ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid query parameters")
	}
	if result := validator.ValidateTimesheetQuery(q); result.HasError() {
		return nil, ctrl.BadRequest(errors.ErrInvalidInput, "Invalid query parameters", result)
	}
	return q, nil
}

func (ctrl *TimesheetController) AdminTimesheet(c echo.Context) error {
	q, err := ctrl.bindQuery(c)
	if err != nil {
		return err
	}

	result, appErr := ctrl.TimesheetService.AdminTimesheet(c.Request().Context(), q)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, result, "Timesheet fetched successfully")
}

func (ctrl *TimesheetController) CoachTimesheet(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	q, err := ctrl.bindQuery(c)
	if err != nil {
		return err
	}
	q.CoachID, q.TeamID = "", ""

	result, appErr := ctrl.TimesheetService.CoachTimesheet(c.Request().Context(), actor, q)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, result, "Timesheet fetched successfully")
}

func (ctrl *TimesheetController) PlayerTeam(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	q, err := ctrl.bindQuery(c)
	if err != nil {
		return err
	}

	result, appErr := ctrl.TimesheetService.PlayerTeamsheet(c.Request().Context(), actor, q)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, result, "Team details fetched successfully")
}

func (ctrl *TimesheetController) ParentDashboard(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	playerID, ok := controller.ParamUUID(c, "playerId")
	if !ok {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Player ID is required")
	}
	q, err := ctrl.bindQuery(c)
	if err != nil {
		return err
	}

	result, appErr := ctrl.TimesheetService.ParentDashboard(c.Request().Context(), actor, playerID, q)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, result, "Team details fetched successfully")
}
