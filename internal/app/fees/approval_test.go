package fees

import (
	"testing"
	"time"

	"github.com/arjunrk/feeledger/internal/app/models"
)

func TestApplyApprovalApprove(t *testing.T) {
	tx := &models.FeeTransaction{ID: "t1", Status: models.StatusPending}
	at := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	if !ApplyApproval(tx, OpApprove, "A. Sharma", at) {
		t.Fatal("approving a pending transaction must report a state change")
	}
	if tx.Status != models.StatusApproved {
		t.Errorf("status = %s, want APPROVED", tx.Status)
	}
	if tx.ApprovedBy != "A. Sharma" || tx.ApprovalDate != "2025-09-01" {
		t.Errorf("approval stamp = (%q, %q), want (A. Sharma, 2025-09-01)", tx.ApprovedBy, tx.ApprovalDate)
	}
}

func TestApplyApprovalReject(t *testing.T) {
	tx := &models.FeeTransaction{ID: "t1", Status: models.StatusPending}

	if !ApplyApproval(tx, OpReject, "", time.Now()) {
		t.Fatal("rejecting a pending transaction must report a state change")
	}
	if tx.Status != models.StatusRejected {
		t.Errorf("status = %s, want REJECTED", tx.Status)
	}
}

func TestApprovalStatesAreTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status models.TransactionStatus
		op     ApprovalOp
	}{
		{"reject an approved transaction", models.StatusApproved, OpReject},
		{"approve a rejected transaction", models.StatusRejected, OpApprove},
		{"re-approve an approved transaction", models.StatusApproved, OpApprove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &models.FeeTransaction{ID: "t1", Status: tt.status, ApprovedBy: "original"}
			if ApplyApproval(tx, tt.op, "someone else", time.Now()) {
				t.Error("terminal state transition must be a no-op")
			}
			if tx.Status != tt.status {
				t.Errorf("status changed from %s to %s", tt.status, tx.Status)
			}
			if tx.ApprovedBy != "original" {
				t.Errorf("approver stamp overwritten: %q", tx.ApprovedBy)
			}
		})
	}
}

func TestApplyApprovalUnknownOp(t *testing.T) {
	tx := &models.FeeTransaction{ID: "t1", Status: models.StatusPending}
	if ApplyApproval(tx, ApprovalOp("archive"), "", time.Now()) {
		t.Error("unknown operation must be a no-op")
	}
	if tx.Status != models.StatusPending {
		t.Errorf("status = %s, want PENDING", tx.Status)
	}
}
