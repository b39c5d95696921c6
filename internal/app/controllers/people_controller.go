package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/app/services"
	"github.com/omkar/campuslms/internal/middleware"
)

// PeopleController handles teacher and student read endpoints
type PeopleController struct {
	peopleService *services.PeopleService
	logger        zerolog.Logger
}

// NewPeopleController creates a new PeopleController
func NewPeopleController(peopleService *services.PeopleService, logger zerolog.Logger) *PeopleController {
	return &PeopleController{
		peopleService: peopleService,
		logger:        logger,
	}
}

// ListTeachers lists all teachers
// @Summary List teachers
// @Tags people
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Teacher}
// @Security BearerAuth
// @Router /teachers [get]
func (c *PeopleController) ListTeachers(ctx *gin.Context) {
	teachers, err := c.peopleService.ListTeachers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teachers, ""))
}

// ListStudents lists all students
// @Summary List students
// @Tags people
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Security BearerAuth
// @Router /students [get]
func (c *PeopleController) ListStudents(ctx *gin.Context) {
	students, err := c.peopleService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students, ""))
}

// Profile returns the authenticated caller's own record
// @Summary Get own profile
// @Tags people
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /profile [get]
func (c *PeopleController) Profile(ctx *gin.Context) {
	accountID, role, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var profile interface{}
	var err error
	switch role {
	case models.RoleTeacher:
		profile, err = c.peopleService.GetTeacher(ctx.Request.Context(), accountID)
	case models.RoleStudent:
		profile, err = c.peopleService.GetStudent(ctx.Request.Context(), accountID)
	default:
		email, _ := ctx.Get(middleware.ContextEmail)
		name, _ := ctx.Get(middleware.ContextName)
		profile = dto.AccountInfo{ID: accountID, Role: role,
			Email: email.(string), Name: name.(string)}
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, ""))
}

// GetTeacher returns one teacher by id
// @Summary Get teacher
// @Tags people
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=models.Teacher}
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Security BearerAuth
// @Router /teachers/{id} [get]
func (c *PeopleController) GetTeacher(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	teacher, err := c.peopleService.GetTeacher(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teacher, ""))
}

// GetStudent returns one student by id
// @Summary Get student
// @Tags people
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id} [get]
func (c *PeopleController) GetStudent(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	student, err := c.peopleService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// Departments lists the distinct departments
// @Summary List departments
// @Tags people
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Security BearerAuth
// @Router /departments [get]
func (c *PeopleController) Departments(ctx *gin.Context) {
	departments, err := c.peopleService.Departments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(departments, ""))
}

// Faculties lists the distinct faculties
// @Summary List faculties
// @Tags people
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Security BearerAuth
// @Router /faculties [get]
func (c *PeopleController) Faculties(ctx *gin.Context) {
	faculties, err := c.peopleService.Faculties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculties, ""))
}

// Subjects lists every subject known to the system
// @Summary List subjects
// @Tags people
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Security BearerAuth
// @Router /subjects [get]
func (c *PeopleController) Subjects(ctx *gin.Context) {
	subjects, err := c.peopleService.Subjects(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subjects, ""))
}

// pathID parses the :id path parameter, writing the error response itself
// when the value is not a positive integer
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
