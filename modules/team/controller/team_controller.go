package controller

import (
	"club-api/core/controller"
	"club-api/core/errors"
	"club-api/core/logger"
	"club-api/core/params"
	"club-api/core/realtime"
	"club-api/modules/team/dto"
	"club-api/modules/team/service"
	"club-api/modules/team/validator"
	"net/http"

	"github.com/labstack/echo/v4"
)

type TeamController struct {
	controller.BaseController
	TeamService service.TeamServiceInterface
	Hub         *realtime.Hub
}

func NewTeamController(svc service.TeamServiceInterface, hub *realtime.Hub) *TeamController {
	return &TeamController{
		BaseController: controller.NewBaseController(),
		TeamService:    svc,
		Hub:            hub,
	}
}

func (ctrl *TeamController) CreateTeam(c echo.Context) error {
	req := new(dto.TeamRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateCreateTeamRequest(req); result.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}

	team, appErr := ctrl.TeamService.CreateTeam(c.Request().Context(), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.CreatedResponse(c, team, "Team created successfully")
}

func (ctrl *TeamController) GetTeams(c echo.Context) error {
	teams, appErr := ctrl.TeamService.GetTeams(c.Request().Context(), params.NewQueryParams(c))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, teams, "Teams fetched successfully")
}

func (ctrl *TeamController) GetTeam(c echo.Context) error {
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid team id")
	}

	team, appErr := ctrl.TeamService.GetTeam(c.Request().Context(), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, team, "Team details fetched successfully")
}

func (ctrl *TeamController) UpdateTeam(c echo.Context) error {
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid team id")
	}
	req := new(dto.TeamRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	if result := validator.ValidateUpdateTeamRequest(req); result.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}

	team, appErr := ctrl.TeamService.UpdateTeam(c.Request().Context(), id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, team, "Team updated successfully")
}

func (ctrl *TeamController) DeleteTeam(c echo.Context) error {
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid team id")
	}
	if appErr := ctrl.TeamService.DeleteTeam(c.Request().Context(), id); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, nil, "Team deleted successfully")
}

// CalendarFeed serves the public .ics feed for a team code.
func (ctrl *TeamController) CalendarFeed(c echo.Context) error {
	feed, appErr := ctrl.TeamService.CalendarFeed(c.Request().Context(), c.Param("code"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="team.ics"`)
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=900")
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// Subscribe upgrades to a websocket on the team's room. Access is checked
// before the upgrade so failures still get a JSON error.
func (ctrl *TeamController) Subscribe(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	id, ok := controller.ParamUUID(c, "id")
	if !ok {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid team id")
	}
	if appErr := ctrl.TeamService.CanSubscribe(c.Request().Context(), actor, id); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	err := ctrl.Hub.Serve(c.Request().Context(), c.Response(), c.Request(), realtime.TeamRoom(id))
	logger.Debug("TeamController:Subscribe:Closed", "team_id", id, "user_id", actor.ID, "reason", err)
	return nil
}
