package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/services"
	"github.com/arjunrk/feeledger/internal/middleware"
)

// UploadController handles bulk spreadsheet uploads
type UploadController struct {
	importService services.ImportService
}

// NewUploadController creates a new UploadController
func NewUploadController(importService services.ImportService) *UploadController {
	return &UploadController{importService: importService}
}

// Preview reports how an uploaded sheet would be interpreted
// @Summary Preview upload
// @Description Detects the sheet type and matched columns without importing anything
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Spreadsheet (.csv, .xlsx or .xls)"
// @Success 200 {object} dto.APIResponse{data=dto.UploadPreviewResponse} "Preview built successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unsupported format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /uploads/preview [post]
func (c *UploadController) Preview(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadUpload, "Missing upload file").
			WithDetails("Form field 'file' is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	resp, err := c.importService.Preview(ctx, file, header.Filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Import runs a bulk import batch
// @Summary Import upload
// @Description Normalizes the sheet into students, lockers and pending transactions and persists them. Malformed rows become indexed errors; valid rows still import.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Spreadsheet (.csv, .xlsx or .xls)"
// @Success 200 {object} dto.APIResponse{data=dto.ImportResponse} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Missing file, unsupported format or undetected sheet type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /uploads/import [post]
func (c *UploadController) Import(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadUpload, "Missing upload file").
			WithDetails("Form field 'file' is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	resp, err := c.importService.Import(ctx, file, header.Filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
