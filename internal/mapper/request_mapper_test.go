package mapper

import (
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleRequest(overrides func(*model.SupplyRequest)) model.SupplyRequest {
	r := model.SupplyRequest{
		ID:           uuid.MustParse("7b0d1e9a-3f1c-4a43-9a76-0f0d2f9be001"),
		EmployeeID:   "120032",
		EmployeeName: "이주헌",
		Department:   "인사팀",
		Item:         "볼펜",
		Quantity:     1,
		Reason:       "테스트",
		Status:       model.StatusPending,
		CreatedAt:    1000,
		UpdatedAt:    1000,
	}
	if overrides != nil {
		overrides(&r)
	}
	return r
}

func TestCreateRecord(t *testing.T) {
	record := CreateRecord(NewRequestInput{
		EmployeeID:   "120032",
		EmployeeName: "이주헌",
		Department:   "인사팀",
		Item:         "볼펜",
		Quantity:     2,
		Reason:       "필요",
		PurchaseURL:  strPtr("https://example.com"),
	}, 1700000000000)

	assert.Equal(t, model.StatusPending, record.Status)
	assert.Equal(t, int64(1700000000000), record.CreatedAt)
	assert.Equal(t, int64(1700000000000), record.UpdatedAt)
	assert.Equal(t, 2, record.Quantity)
	require.NotNil(t, record.PurchaseURL)
	assert.Equal(t, "https://example.com", *record.PurchaseURL)
	assert.Equal(t, uuid.Nil, record.ID, "identifier is store-assigned, never set here")
}

func TestCreateRecordClampsQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "zero clamps to minimum", in: 0, want: 1},
		{name: "negative clamps to minimum", in: -5, want: 1},
		{name: "above maximum clamps to maximum", in: 250, want: 100},
		{name: "in range untouched", in: 42, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := CreateRecord(NewRequestInput{Quantity: tt.in}, 1)
			assert.Equal(t, tt.want, record.Quantity)
		})
	}
}

func TestDecodeRecord(t *testing.T) {
	validRaw := func() map[string]any {
		return map[string]any{
			"id":            "7b0d1e9a-3f1c-4a43-9a76-0f0d2f9be001",
			"employee_id":   "120032",
			"employee_name": "이주헌",
			"department":    "인사팀",
			"item":          "볼펜",
			"quantity":      int64(1),
			"reason":        "테스트",
			"status":        model.StatusPending,
			"created_at":    int64(1000),
			"updated_at":    int64(1000),
			"purchase_url":  nil,
			"admin_comment": nil,
		}
	}

	t.Run("valid document decodes", func(t *testing.T) {
		record, ok := DecodeRecord(validRaw())
		require.True(t, ok)
		assert.Equal(t, "120032", record.EmployeeID)
		assert.Equal(t, 1, record.Quantity)
		assert.Nil(t, record.PurchaseURL)
		assert.Nil(t, record.AdminComment)
	})

	t.Run("driver numeric variants are accepted", func(t *testing.T) {
		raw := validRaw()
		raw["quantity"] = float64(3)
		raw["created_at"] = int(1000)
		record, ok := DecodeRecord(raw)
		require.True(t, ok)
		assert.Equal(t, 3, record.Quantity)
	})

	t.Run("optional fields kept only when non-blank", func(t *testing.T) {
		raw := validRaw()
		raw["purchase_url"] = "  https://example.com  "
		raw["admin_comment"] = "   "
		record, ok := DecodeRecord(raw)
		require.True(t, ok)
		require.NotNil(t, record.PurchaseURL)
		assert.Equal(t, "https://example.com", *record.PurchaseURL)
		assert.Nil(t, record.AdminComment)
	})

	corrupt := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{name: "missing employee id", mutate: func(m map[string]any) { delete(m, "employee_id") }},
		{name: "mistyped quantity", mutate: func(m map[string]any) { m["quantity"] = "two" }},
		{name: "fractional quantity", mutate: func(m map[string]any) { m["quantity"] = 2.5 }},
		{name: "fractional timestamp", mutate: func(m map[string]any) { m["created_at"] = float64(1000.25) }},
		{name: "mistyped reason", mutate: func(m map[string]any) { m["reason"] = 7 }},
		{name: "unknown status", mutate: func(m map[string]any) { m["status"] = "SHIPPED" }},
		{name: "missing created_at", mutate: func(m map[string]any) { delete(m, "created_at") }},
		{name: "unparseable id", mutate: func(m map[string]any) { m["id"] = "not-a-uuid" }},
	}
	for _, tt := range corrupt {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(raw)
			_, ok := DecodeRecord(raw)
			assert.False(t, ok)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	record := CreateRecord(NewRequestInput{
		EmployeeID:   "120034",
		EmployeeName: "김민준",
		Department:   "IT 개발팀",
		Item:         "키보드",
		Quantity:     1,
		Reason:       "교체",
	}, 1700000000000)
	record.ID = uuid.New()

	decoded, ok := DecodeRecord(EncodeRecord(record))
	require.True(t, ok)
	assert.Equal(t, record, decoded)
}

func TestApplyEdit(t *testing.T) {
	updates := RequestUpdate{
		Item:        "샤프",
		Quantity:    3,
		Reason:      "수정 사유",
		PurchaseURL: strPtr("https://example.com"),
	}

	t.Run("pending request is edited", func(t *testing.T) {
		r := sampleRequest(nil)
		next := ApplyEdit(r, updates, 2000)
		require.NotNil(t, next)
		assert.Equal(t, "샤프", next.Item)
		assert.Equal(t, 3, next.Quantity)
		assert.Equal(t, int64(2000), next.UpdatedAt)
		// Untouched fields
		assert.Equal(t, r.ID, next.ID)
		assert.Equal(t, r.EmployeeID, next.EmployeeID)
		assert.Equal(t, r.Status, next.Status)
		assert.Equal(t, r.CreatedAt, next.CreatedAt)
	})

	t.Run("quantity clamps on edit", func(t *testing.T) {
		next := ApplyEdit(sampleRequest(nil), RequestUpdate{Item: "볼펜", Quantity: 0, Reason: "r"}, 2000)
		require.NotNil(t, next)
		assert.Equal(t, 1, next.Quantity)
	})

	for _, status := range []string{model.StatusApproved, model.StatusRejected, model.StatusCompleted, model.StatusCanceled} {
		t.Run("blocked for "+status, func(t *testing.T) {
			blocked := ApplyEdit(sampleRequest(func(r *model.SupplyRequest) { r.Status = status }), updates, 2000)
			assert.Nil(t, blocked)
		})
	}
}

func TestApplyCancel(t *testing.T) {
	t.Run("pending request is canceled", func(t *testing.T) {
		next := ApplyCancel(sampleRequest(nil), "사용자 취소", 2000)
		require.NotNil(t, next)
		assert.Equal(t, model.StatusCanceled, next.Status)
		require.NotNil(t, next.AdminComment)
		assert.Equal(t, "사용자 취소", *next.AdminComment)
		assert.Equal(t, int64(2000), next.UpdatedAt)
	})

	for _, status := range []string{model.StatusApproved, model.StatusRejected, model.StatusCompleted, model.StatusCanceled} {
		t.Run("blocked for "+status, func(t *testing.T) {
			blocked := ApplyCancel(sampleRequest(func(r *model.SupplyRequest) { r.Status = status }), "사용자 취소", 2000)
			assert.Nil(t, blocked)
		})
	}
}
