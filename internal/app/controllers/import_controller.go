package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/app/services"
	"github.com/omkar/campuslms/internal/middleware"
)

// ImportController handles CSV batch import endpoints
type ImportController struct {
	importService *services.ImportService
	logger        zerolog.Logger
}

// NewImportController creates a new ImportController
func NewImportController(importService *services.ImportService, logger zerolog.Logger) *ImportController {
	return &ImportController{
		importService: importService,
		logger:        logger,
	}
}

// ImportTeachers imports a batch of teacher rows
// @Summary Import teachers
// @Description Processes a JSON array of raw teacher rows. Row failures are reported in the result, not as an HTTP error.
// @Tags import
// @Accept json
// @Produce json
// @Param request body []dto.RawRow true "Raw teacher rows"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResult} "Batch summary"
// @Failure 400 {object} dto.ErrorResponse "Body is not a JSON array of row objects"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Security BearerAuth
// @Router /import/teachers [post]
func (c *ImportController) ImportTeachers(ctx *gin.Context) {
	c.runImport(ctx, models.RoleTeacher)
}

// ImportStudents imports a batch of student rows
// @Summary Import students
// @Description Processes a JSON array of raw student rows, derives class groups and reconciles enrollments. Row failures are reported in the result, not as an HTTP error.
// @Tags import
// @Accept json
// @Produce json
// @Param request body []dto.RawRow true "Raw student rows"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResult} "Batch summary"
// @Failure 400 {object} dto.ErrorResponse "Body is not a JSON array of row objects"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Security BearerAuth
// @Router /import/students [post]
func (c *ImportController) ImportStudents(ctx *gin.Context) {
	c.runImport(ctx, models.RoleStudent)
}

// runImport decodes the batch and hands it to the pipeline. A body that is
// not an array of row objects is the one fatal, whole-batch error.
func (c *ImportController) runImport(ctx *gin.Context, role models.Role) {
	var rows []dto.RawRow
	if err := ctx.ShouldBindJSON(&rows); err != nil {
		c.logger.Warn().Err(err).Str("role", string(role)).Msg("Malformed import batch")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidBatch, "Request body must be a JSON array of row objects")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.importService.ImportBatch(ctx.Request.Context(), rows, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Row-level problems ride inside the summary; the batch itself succeeded.
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, "Import processed"))
}
