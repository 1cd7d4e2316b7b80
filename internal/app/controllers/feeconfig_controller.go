package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arjunrk/feeledger/internal/app/models/dto"
	"github.com/arjunrk/feeledger/internal/app/services"
	"github.com/arjunrk/feeledger/internal/middleware"
)

// FeeConfigController manages the fee locker configuration document
type FeeConfigController struct {
	feeConfigService services.FeeConfigService
}

// NewFeeConfigController creates a new FeeConfigController
func NewFeeConfigController(feeConfigService services.FeeConfigService) *FeeConfigController {
	return &FeeConfigController{feeConfigService: feeConfigService}
}

// GetConfig returns the full configuration document
// @Summary Get fee config
// @Description Retrieves the fee locker configuration: cost-group bases, override tables and batch overrides
// @Tags fee-config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FeeConfigResponse} "Config retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-config [get]
func (c *FeeConfigController) GetConfig(ctx *gin.Context) {
	resp, err := c.feeConfigService.GetConfig(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// UpdateConfig replaces the default configuration
// @Summary Update fee config
// @Description Replaces the default fee configuration; with applyToAllStudents set, existing locker targets are rewritten
// @Tags fee-config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateFeeConfigRequest true "New default configuration"
// @Success 200 {object} dto.APIResponse{data=dto.ApplyTargetsResponse} "Config updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-config [put]
func (c *FeeConfigController) UpdateConfig(ctx *gin.Context) {
	var req dto.UpdateFeeConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid config data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.feeConfigService.UpdateDefault(ctx, &req, displayNameFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// GetBatchConfig returns one batch override
// @Summary Get batch config
// @Description Retrieves the fee config override of one admission batch
// @Tags fee-config
// @Produce json
// @Security BearerAuth
// @Param batch path string true "Admission batch, e.g. 2024-28"
// @Success 200 {object} dto.APIResponse{data=models.FeeLockerConfig} "Batch config retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No config for batch"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-config/batches/{batch} [get]
func (c *FeeConfigController) GetBatchConfig(ctx *gin.Context) {
	cfg, err := c.feeConfigService.GetBatchConfig(ctx, ctx.Param("batch"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      cfg,
		Timestamp: time.Now(),
	})
}

// UpdateBatchConfig sets one batch override
// @Summary Update batch config
// @Description Sets the fee config override of one admission batch
// @Tags fee-config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param batch path string true "Admission batch, e.g. 2024-28"
// @Param request body dto.UpdateBatchFeeConfigRequest true "Batch configuration"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Batch config updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-config/batches/{batch} [put]
func (c *FeeConfigController) UpdateBatchConfig(ctx *gin.Context) {
	var req dto.UpdateBatchFeeConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid config data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.feeConfigService.UpdateBatchConfig(ctx, ctx.Param("batch"), &req, displayNameFrom(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Batch config updated"},
		Timestamp: time.Now(),
	})
}

// DeleteBatchConfig removes one batch override
// @Summary Delete batch config
// @Description Removes a batch override; its students resolve against the default config afterwards
// @Tags fee-config
// @Produce json
// @Security BearerAuth
// @Param batch path string true "Admission batch, e.g. 2024-28"
// @Success 204 "Batch config deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "No config for batch"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fee-config/batches/{batch} [delete]
func (c *FeeConfigController) DeleteBatchConfig(ctx *gin.Context) {
	if err := c.feeConfigService.DeleteBatchConfig(ctx, ctx.Param("batch"), displayNameFrom(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
