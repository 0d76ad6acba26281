package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"syndic-api/core/constants"
	"syndic-api/core/controller"
	"syndic-api/core/errors"
	"syndic-api/core/utils"
	availabilitydto "syndic-api/modules/availability/dto"
	"syndic-api/modules/scheduling/dto"
	"syndic-api/modules/scheduling/service"
)

// SchedulingController handles the scheduling workflow HTTP requests
type SchedulingController struct {
	controller.BaseController
	SchedulingService service.SchedulingServiceInterface
}

// NewSchedulingController creates a new controller
func NewSchedulingController(svc service.SchedulingServiceInterface) *SchedulingController {
	return &SchedulingController{
		BaseController:    controller.NewBaseController(),
		SchedulingService: svc,
	}
}

func claimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims, nil
}

// GetAvailabilityData handles GET /interventions/:id/availabilities
func (c *SchedulingController) GetAvailabilityData(ctx echo.Context) error {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	interventionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	result, appErr := c.SchedulingService.GetAvailabilityData(ctx.Request().Context(), interventionID, claims)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// SubmitAvailabilities handles POST /interventions/:id/availabilities
func (c *SchedulingController) SubmitAvailabilities(ctx echo.Context) error {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	interventionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	var req availabilitydto.SubmitAvailabilitiesRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.SchedulingService.SubmitAvailabilities(ctx.Request().Context(), interventionID, claims, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Availabilities saved successfully")
}

// RunMatching handles POST /interventions/:id/matching
func (c *SchedulingController) RunMatching(ctx echo.Context) error {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	interventionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	result, appErr := c.SchedulingService.RunMatching(ctx.Request().Context(), interventionID, claims)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Matching computed successfully")
}

// SelectSlot handles PUT /interventions/:id/slot
func (c *SchedulingController) SelectSlot(ctx echo.Context) error {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	interventionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	var req dto.SelectSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.SchedulingService.SelectSlot(ctx.Request().Context(), interventionID, claims, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Slot selected successfully")
}
