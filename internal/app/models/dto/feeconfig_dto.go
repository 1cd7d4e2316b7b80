package dto

import "github.com/arjunrk/feeledger/internal/app/models"

// UpdateFeeConfigRequest replaces the default fee config. When
// ApplyToAllStudents is set, existing locker targets are rewritten from
// the new config; otherwise lockers keep their snapshot targets.
type UpdateFeeConfigRequest struct {
	Config             models.FeeLockerConfig `json:"config" binding:"required"`
	ApplyToAllStudents bool                   `json:"applyToAllStudents"`
}

// UpdateBatchFeeConfigRequest sets a batch-specific override config
type UpdateBatchFeeConfigRequest struct {
	Config models.FeeLockerConfig `json:"config" binding:"required"`
}

// FeeConfigResponse returns the full config document
type FeeConfigResponse struct {
	Config *models.FeeConfigDoc `json:"config"`
}

// ApplyTargetsResponse reports an apply-to-all-students rewrite
type ApplyTargetsResponse struct {
	StudentsUpdated int `json:"studentsUpdated"`
	LockersUpdated  int `json:"lockersUpdated"`
}
