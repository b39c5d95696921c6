package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/app/services"
	"github.com/omkar/campuslms/internal/middleware"
)

// MaterialController handles study material endpoints
type MaterialController struct {
	materialService *services.MaterialService
	logger          zerolog.Logger
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(materialService *services.MaterialService, logger zerolog.Logger) *MaterialController {
	return &MaterialController{
		materialService: materialService,
		logger:          logger,
	}
}

// Create registers new study material
// @Summary Create study material
// @Tags materials
// @Accept json
// @Produce json
// @Param request body dto.CreateMaterialRequest true "Material metadata"
// @Success 201 {object} dto.APIResponse{data=models.StudyMaterial}
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Security BearerAuth
// @Router /materials [post]
func (c *MaterialController) Create(ctx *gin.Context) {
	callerID, _, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	material, err := c.materialService.Create(ctx.Request.Context(), callerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(material, "Material created"))
}

// ListForClass lists the active materials of a class
// @Summary List class materials
// @Tags materials
// @Produce json
// @Param id path int true "Class ID"
// @Param subject query string false "Filter by subject"
// @Success 200 {object} dto.APIResponse{data=[]models.StudyMaterial}
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Security BearerAuth
// @Router /classes/{id}/materials [get]
func (c *MaterialController) ListForClass(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var subject *string
	if value := ctx.Query("subject"); value != "" {
		subject = &value
	}

	materials, err := c.materialService.ListForClass(ctx.Request.Context(), id, subject)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(materials, ""))
}

// Update rewrites a study material record
// @Summary Update study material
// @Tags materials
// @Accept json
// @Produce json
// @Param id path int true "Material ID"
// @Param request body dto.UpdateMaterialRequest true "Changes"
// @Success 200 {object} dto.APIResponse{data=models.StudyMaterial}
// @Failure 403 {object} dto.ErrorResponse "Not the uploader"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Security BearerAuth
// @Router /materials/{id} [put]
func (c *MaterialController) Update(ctx *gin.Context) {
	callerID, _, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	material, err := c.materialService.Update(ctx.Request.Context(), callerID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(material, "Material updated"))
}

// Delete removes a study material record
// @Summary Delete study material
// @Tags materials
// @Produce json
// @Param id path int true "Material ID"
// @Success 200 {object} dto.APIResponse "Material deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the uploader"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Security BearerAuth
// @Router /materials/{id} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
	callerID, callerRole, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.materialService.Delete(ctx.Request.Context(), callerID, callerRole, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Material deleted"))
}
