package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/services"
	"github.com/arjunrk/feeledger/internal/middleware"
)

// ReportController serves collection and dues reports
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// CollectionReport totals approved payments by department and fee type
// @Summary Collection report
// @Description Totals approved payments by department and fee type inside an inclusive payment-date range
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "Lower bound payment date"
// @Param to query string false "Upper bound payment date"
// @Success 200 {object} dto.APIResponse{data=dto.CollectionReportResponse} "Report built successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/collection [get]
func (c *ReportController) CollectionReport(ctx *gin.Context) {
	resp, err := c.reportService.CollectionReport(ctx, ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Defaulters lists student-years with outstanding dues
// @Summary Defaulters report
// @Description Lists student-years whose approved payments fall short of locker targets
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param department query string false "Department code or raw name"
// @Param year query int false "Year of study"
// @Success 200 {object} dto.APIResponse{data=dto.DefaultersResponse} "Report built successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/defaulters [get]
func (c *ReportController) Defaulters(ctx *gin.Context) {
	year, _ := strconv.Atoi(ctx.Query("year"))

	resp, err := c.reportService.Defaulters(ctx, ctx.Query("department"), year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
