// Package mapper holds the pure transformation layer for supply requests:
// building new records, decoding raw stored documents, and computing
// lifecycle transitions. Nothing here performs I/O, which keeps every
// legality rule unit-testable without a database.
package mapper

import (
	"math"
	"strings"

	"backend/internal/model"

	"github.com/google/uuid"
)

// NewRequestInput carries the requester-supplied fields of a new request.
// Identifier, status and timestamps are never caller-chosen.
type NewRequestInput struct {
	EmployeeID   string
	EmployeeName string
	Department   string
	Item         string
	Quantity     int
	Reason       string
	PurchaseURL  *string
}

// RequestUpdate carries the fields an owner may change while a request is
// still pending.
type RequestUpdate struct {
	Item        string
	Quantity    int
	Reason      string
	PurchaseURL *string
}

// ClampQuantity forces quantity into the allowed range on every write.
func ClampQuantity(quantity int) int {
	if quantity < model.MinQuantity {
		return model.MinQuantity
	}
	if quantity > model.MaxQuantity {
		return model.MaxQuantity
	}
	return quantity
}

// CreateRecord builds a new request record from submitted fields. Status is
// forced to PENDING and both timestamps are set to now (epoch ms).
func CreateRecord(input NewRequestInput, now int64) model.SupplyRequest {
	return model.SupplyRequest{
		EmployeeID:   input.EmployeeID,
		EmployeeName: input.EmployeeName,
		Department:   input.Department,
		Item:         input.Item,
		Quantity:     ClampQuantity(input.Quantity),
		Reason:       input.Reason,
		PurchaseURL:  normalizeOptional(input.PurchaseURL),
		Status:       model.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// DecodeRecord validates a raw stored document and converts it into a
// typed record. It returns false when any required field is missing or
// mistyped, or when the status value falls outside the enum. This is the
// sole defense against corrupted or partially written rows: a decode
// failure excludes the record, it never propagates as an error.
func DecodeRecord(raw map[string]any) (model.SupplyRequest, bool) {
	id, ok := decodeID(raw["id"])
	if !ok {
		return model.SupplyRequest{}, false
	}
	employeeID, ok := decodeString(raw["employee_id"])
	if !ok {
		return model.SupplyRequest{}, false
	}
	employeeName, ok := decodeString(raw["employee_name"])
	if !ok {
		return model.SupplyRequest{}, false
	}
	department, ok := decodeString(raw["department"])
	if !ok {
		return model.SupplyRequest{}, false
	}
	item, ok := decodeString(raw["item"])
	if !ok {
		return model.SupplyRequest{}, false
	}
	quantity, ok := decodeNumber(raw["quantity"])
	if !ok {
		return model.SupplyRequest{}, false
	}
	reason, ok := decodeString(raw["reason"])
	if !ok {
		return model.SupplyRequest{}, false
	}
	status, ok := decodeString(raw["status"])
	if !ok || !model.IsValidStatus(status) {
		return model.SupplyRequest{}, false
	}
	createdAt, ok := decodeNumber(raw["created_at"])
	if !ok {
		return model.SupplyRequest{}, false
	}
	updatedAt, ok := decodeNumber(raw["updated_at"])
	if !ok {
		return model.SupplyRequest{}, false
	}

	return model.SupplyRequest{
		ID:           id,
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Department:   department,
		Item:         item,
		Quantity:     int(quantity),
		Reason:       reason,
		PurchaseURL:  decodeOptional(raw["purchase_url"]),
		AdminComment: decodeOptional(raw["admin_comment"]),
		Status:       status,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, true
}

// EncodeRecord renders a record in the stored document shape. Optional
// fields are emitted as explicit nil rather than omitted, so partial-field
// updates stay well-defined. EncodeRecord(r) round-trips with DecodeRecord.
func EncodeRecord(r model.SupplyRequest) map[string]any {
	var purchaseURL, adminComment any
	if r.PurchaseURL != nil {
		purchaseURL = *r.PurchaseURL
	}
	if r.AdminComment != nil {
		adminComment = *r.AdminComment
	}
	return map[string]any{
		"id":            r.ID.String(),
		"employee_id":   r.EmployeeID,
		"employee_name": r.EmployeeName,
		"department":    r.Department,
		"item":          r.Item,
		"quantity":      r.Quantity,
		"reason":        r.Reason,
		"purchase_url":  purchaseURL,
		"admin_comment": adminComment,
		"status":        r.Status,
		"created_at":    r.CreatedAt,
		"updated_at":    r.UpdatedAt,
	}
}

// ApplyEdit returns the record with item/quantity/reason/purchaseUrl
// replaced and updatedAt stamped, or nil when the request is no longer
// pending. Status, identifier, requester fields and createdAt are
// untouched.
func ApplyEdit(r model.SupplyRequest, updates RequestUpdate, now int64) *model.SupplyRequest {
	if r.Status != model.StatusPending {
		return nil
	}
	next := r
	next.Item = updates.Item
	next.Quantity = ClampQuantity(updates.Quantity)
	next.Reason = updates.Reason
	next.PurchaseURL = normalizeOptional(updates.PurchaseURL)
	next.UpdatedAt = now
	return &next
}

// ApplyCancel returns the record moved to CANCELED with the given comment,
// or nil when the request is no longer pending.
func ApplyCancel(r model.SupplyRequest, comment string, now int64) *model.SupplyRequest {
	if r.Status != model.StatusPending {
		return nil
	}
	next := r
	next.Status = model.StatusCanceled
	next.AdminComment = &comment
	next.UpdatedAt = now
	return &next
}

// normalizeOptional collapses the empty/blank/nil variants of an optional
// string into a single representation: nil when absent, trimmed value when
// present.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func decodeID(value any) (uuid.UUID, bool) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, true
	case string:
		id, err := uuid.Parse(v)
		return id, err == nil
	case []byte:
		id, err := uuid.Parse(string(v))
		return id, err == nil
	default:
		return uuid.Nil, false
	}
}

func decodeString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// decodeNumber accepts the integer and float representations the SQL
// drivers hand back for numeric columns. A float is only accepted when it
// carries an integral value; a fractional number is as mistyped as a
// string and must not silently truncate.
func decodeNumber(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case float32:
		return decodeNumber(float64(v))
	default:
		return 0, false
	}
}

// decodeOptional accepts an optional field only when it is a non-empty
// string after trimming; anything else is treated as absent.
func decodeOptional(value any) *string {
	s, ok := decodeString(value)
	if !ok {
		return nil
	}
	return normalizeOptional(&s)
}
