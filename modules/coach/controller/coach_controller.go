package controller

import (
	"club-api/core/controller"
	"club-api/core/errors"
	"club-api/modules/coach/service"

	"github.com/labstack/echo/v4"
)

type CoachController struct {
	controller.BaseController
	CoachService service.CoachServiceInterface
}

func NewCoachController(svc service.CoachServiceInterface) *CoachController {
	return &CoachController{
		BaseController: controller.NewBaseController(),
		CoachService:   svc,
	}
}

func (ctrl *CoachController) GetProfile(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	profile, appErr := ctrl.CoachService.GetProfile(c.Request().Context(), actor.ID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, profile, "Profile fetched successfully")
}

// UpdateProfilePicture expects a multipart form with the image under "file".
func (ctrl *CoachController) UpdateProfilePicture(c echo.Context) error {
	actor, appErr := ctrl.Actor(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidInput, "No file uploaded")
	}
	file, err := header.Open()
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Unable to read uploaded file")
	}
	defer file.Close()

	resp, appErr := ctrl.CoachService.UpdateProfilePicture(c.Request().Context(), actor.ID, header.Filename, header.Size, file)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.SuccessResponse(c, resp, "Profile picture updated successfully")
}
