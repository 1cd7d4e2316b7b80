package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/repositories"
	"github.com/arjunrk/feeledger/internal/app/services"
	"github.com/arjunrk/feeledger/internal/middleware"
)

// StudentController handles student CRUD, remarks, manual payments and
// the fee summary view
type StudentController struct {
	studentService     services.StudentService
	transactionService services.TransactionService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, transactionService services.TransactionService) *StudentController {
	return &StudentController{
		studentService:     studentService,
		transactionService: transactionService,
	}
}

// ListStudents retrieves a page of students
// @Summary List students
// @Description Retrieves students with optional department/batch/year/search filters
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department code or raw name"
// @Param batch query string false "Admission batch, e.g. 2024-28"
// @Param year query int false "Current year of study"
// @Param search query string false "Substring of name or hall ticket number"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Students retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	filter := repositories.StudentFilter{
		Department: ctx.Query("department"),
		Batch:      ctx.Query("batch"),
		Search:     ctx.Query("search"),
	}
	filter.Year, _ = strconv.Atoi(ctx.Query("year"))
	page, pageSize := pageParams(ctx)

	resp, err := c.studentService.ListStudents(ctx, filter, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// GetStudent retrieves one student with lockers and remarks
// @Summary Get student
// @Description Retrieves a student by hall ticket number with year lockers, transactions and remarks
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param htn path string true "Hall ticket number"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{htn} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx, ctx.Param("htn"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// CreateStudent registers a student manually
// @Summary Create student
// @Description Registers a student; year lockers up to the current year are opened with resolved targets
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Hall ticket number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// UpdateStudent rewrites editable student fields
// @Summary Update student
// @Description Updates the editable fields of a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param htn path string true "Hall ticket number"
// @Param request body dto.UpdateStudentRequest true "Updated student information"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{htn} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, ctx.Param("htn"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// DeleteStudent removes a student
// @Summary Delete student
// @Description Deletes a student; lockers, transactions and remarks cascade
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param htn path string true "Hall ticket number"
// @Success 204 "Student deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{htn} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx, ctx.Param("htn")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetSummary builds the per-year paid-versus-target view
// @Summary Get fee summary
// @Description Per-year targets, approved payment totals and pending counts for a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param htn path string true "Hall ticket number"
// @Success 200 {object} dto.APIResponse{data=dto.StudentSummaryResponse} "Summary retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{htn}/summary [get]
func (c *StudentController) GetSummary(ctx *gin.Context) {
	summary, err := c.studentService.GetSummary(ctx, ctx.Param("htn"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      summary,
		Timestamp: time.Now(),
	})
}

// AddTransaction records a manually entered payment
// @Summary Add payment
// @Description Records a payment against a student's year locker; the transaction starts PENDING
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param htn path string true "Hall ticket number"
// @Param request body dto.CreateTransactionRequest true "Payment information"
// @Success 201 {object} dto.APIResponse{data=models.FeeTransaction} "Payment recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{htn}/transactions [post]
func (c *StudentController) AddTransaction(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid payment data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	transaction, err := c.transactionService.AddTransaction(ctx, ctx.Param("htn"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      transaction,
		Timestamp: time.Now(),
	})
}

// AddRemark attaches a note to a student
// @Summary Add remark
// @Description Attaches a free-text administrative note to a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param htn path string true "Hall ticket number"
// @Param request body dto.CreateRemarkRequest true "Remark text"
// @Success 201 {object} dto.APIResponse{data=models.StudentRemark} "Remark added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{htn}/remarks [post]
func (c *StudentController) AddRemark(ctx *gin.Context) {
	var req dto.CreateRemarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid remark data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	remark, err := c.studentService.AddRemark(ctx, ctx.Param("htn"), &req, displayNameFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      remark,
		Timestamp: time.Now(),
	})
}

// DeleteRemark removes a note from a student
// @Summary Delete remark
// @Description Deletes an administrative note
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param htn path string true "Hall ticket number"
// @Param id path int true "Remark ID"
// @Success 204 "Remark deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid remark ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Remark not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{htn}/remarks/{id} [delete]
func (c *StudentController) DeleteRemark(ctx *gin.Context) {
	remarkID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid remark ID").
			WithDetails("Remark ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.studentService.DeleteRemark(ctx, ctx.Param("htn"), remarkID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
