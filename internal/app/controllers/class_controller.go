package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/app/services"
	"github.com/omkar/campuslms/internal/middleware"
	"github.com/omkar/campuslms/internal/pkg/helpers"
)

// ClassController handles class endpoints
type ClassController struct {
	classService *services.ClassService
	logger       zerolog.Logger
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService, logger zerolog.Logger) *ClassController {
	return &ClassController{
		classService: classService,
		logger:       logger,
	}
}

// AssignTeacherRequest links a teacher to a class
type AssignTeacherRequest struct {
	TeacherID int64  `json:"teacherId" binding:"required,min=1"`
	Subjects  string `json:"subjects"`
	IsPrimary bool   `json:"isPrimary"`
}

// ListClasses lists all active classes
// @Summary List classes
// @Tags classes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ClassGroup}
// @Security BearerAuth
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	classes, err := c.classService.ListClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(classes, ""))
}

// GetClass returns one class with its roster
// @Summary Get class detail
// @Tags classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Security BearerAuth
// @Router /classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	detail, err := c.classService.GetClassDetail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail, ""))
}

// AssignTeacher links a teacher to a class
// @Summary Assign teacher to class
// @Tags classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param request body AssignTeacherRequest true "Assignment"
// @Success 200 {object} dto.APIResponse "Teacher assigned"
// @Failure 404 {object} dto.ErrorResponse "Class or teacher not found"
// @Security BearerAuth
// @Router /classes/{id}/teachers [post]
func (c *ClassController) AssignTeacher(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req AssignTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.classService.AssignTeacher(ctx.Request.Context(), id, req.TeacherID,
		helpers.NullableString(req.Subjects), req.IsPrimary)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Teacher assigned"))
}
