package controller

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"syndic-api/core/constants"
	"syndic-api/core/controller"
	"syndic-api/core/errors"
	"syndic-api/core/utils"
	"syndic-api/modules/intervention/dto"
	"syndic-api/modules/intervention/service"
)

// InterventionController handles intervention HTTP requests
type InterventionController struct {
	controller.BaseController
	InterventionService service.InterventionServiceInterface
}

// NewInterventionController creates a new controller
func NewInterventionController(svc service.InterventionServiceInterface) *InterventionController {
	return &InterventionController{
		BaseController:      controller.NewBaseController(),
		InterventionService: svc,
	}
}

// claimsFromContext extracts the authenticated claims set by the auth middleware
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

// CreateIntervention handles POST /interventions
func (c *InterventionController) CreateIntervention(ctx echo.Context) error {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateInterventionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.InterventionService.CreateIntervention(ctx.Request().Context(), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Intervention created successfully")
}

// GetIntervention handles GET /interventions/:id
func (c *InterventionController) GetIntervention(ctx echo.Context) error {
	interventionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	result, appErr := c.InterventionService.GetInterventionByID(ctx.Request().Context(), interventionID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetInterventionByReference handles GET /interventions/reference/:reference
func (c *InterventionController) GetInterventionByReference(ctx echo.Context) error {
	reference := ctx.Param("reference")
	if reference == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention reference")
	}

	result, appErr := c.InterventionService.GetInterventionByReference(ctx.Request().Context(), reference)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyInterventions handles GET /interventions
func (c *InterventionController) GetMyInterventions(ctx echo.Context) error {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.InterventionService.GetMyInterventions(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// AddParticipant handles POST /interventions/:id/participants
func (c *InterventionController) AddParticipant(ctx echo.Context) error {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	interventionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	var req dto.ParticipantRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.InterventionService.AddParticipant(ctx.Request().Context(), interventionID, claims, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Participant added successfully")
}

// RemoveParticipant handles DELETE /interventions/:id/participants/:userId
func (c *InterventionController) RemoveParticipant(ctx echo.Context) error {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	interventionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	if appErr := c.InterventionService.RemoveParticipant(ctx.Request().Context(), interventionID, userID, claims); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Participant removed successfully")
}
