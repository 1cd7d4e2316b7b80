package fees

import (
	"time"

	"github.com/arjunrk/feeledger/internal/app/models"
)

// ApprovalOp selects the transition applied to a pending transaction.
type ApprovalOp string

const (
	OpApprove ApprovalOp = "approve"
	OpReject  ApprovalOp = "reject"
)

// ApplyApproval transitions a transaction through the approval state
// machine: PENDING -> APPROVED or PENDING -> REJECTED, both terminal.
// Approval stamps the approver name and date. Applying an operation to a
// transaction already in a terminal state is a no-op, reported by the
// false return value, so bulk operations stay idempotent per id.
func ApplyApproval(tx *models.FeeTransaction, op ApprovalOp, approver string, at time.Time) bool {
	if tx == nil || tx.Terminal() {
		return false
	}
	switch op {
	case OpApprove:
		tx.Status = models.StatusApproved
		tx.ApprovedBy = approver
		tx.ApprovalDate = at.Format("2006-01-02")
	case OpReject:
		tx.Status = models.StatusRejected
	default:
		return false
	}
	return true
}
