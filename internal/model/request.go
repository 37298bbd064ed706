package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request status enum constants. The persisted value is a closed set:
// decoding rejects anything outside it.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCompleted = "COMPLETED"
	StatusCanceled  = "CANCELED"
)

// Quantity bounds enforced on every write.
const (
	MinQuantity = 1
	MaxQuantity = 100
)

// DefaultCancelComment is stored when an owner cancels without a comment.
const DefaultCancelComment = "사용자 취소"

// statusTransitions maps each status to the set of statuses an
// administrator may move it to through the guarded entry point.
// REJECTED, COMPLETED and CANCELED are terminal.
var statusTransitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected, StatusCanceled},
	StatusApproved: {StatusCompleted},
}

// IsValidStatus reports whether value belongs to the status enum.
func IsValidStatus(value string) bool {
	switch value {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// CanTransition reports whether the guarded workflow allows moving a
// request from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsFinalized reports whether a status is terminal. Only finalized
// requests may be deleted.
func IsFinalized(status string) bool {
	return status == StatusRejected || status == StatusCompleted || status == StatusCanceled
}

// FinalizedStatuses returns the terminal statuses.
func FinalizedStatuses() []string {
	return []string{StatusRejected, StatusCompleted, StatusCanceled}
}

// SupplyRequest is one office-supply purchase request. Timestamps are
// epoch milliseconds and are managed by the mapper, not by GORM, so that
// every mutation stamps them explicitly. Optional fields are pointers and
// persist as explicit NULL rather than empty strings.
type SupplyRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID   string    `gorm:"type:varchar(20);not null;index" json:"employee_id"`
	EmployeeName string    `gorm:"type:varchar(100);not null" json:"employee_name"`
	Department   string    `gorm:"type:varchar(100);not null" json:"department"`
	Item         string    `gorm:"type:varchar(255);not null" json:"item"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Reason       string    `gorm:"type:text;not null" json:"reason"`
	PurchaseURL  *string   `gorm:"type:text" json:"purchase_url"`
	AdminComment *string   `gorm:"type:text" json:"admin_comment"`
	Status       string    `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    int64     `gorm:"not null;index;autoCreateTime:false" json:"created_at"`
	UpdatedAt    int64     `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// BeforeCreate assigns the identifier exactly once, at insert time.
// Generating it client-side keeps the model portable across the postgres
// and sqlite dialects used in production and tests.
func (r *SupplyRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
