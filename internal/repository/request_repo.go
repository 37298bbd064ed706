package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestRepository is the persistence gateway for supply requests. Reads
// come back as raw documents so the mapper stays the single place that
// validates stored shapes. Conditional writes report affected rows and let
// the service decide what a zero means.
type RequestRepository interface {
	Create(ctx context.Context, req *model.SupplyRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SupplyRequest, error)
	ListRaw(ctx context.Context) ([]map[string]any, error)
	UpdateWhereStatus(ctx context.Context, id uuid.UUID, status string, fields map[string]any) (int64, error)
	UpdateByID(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	DeleteWhereStatusIn(ctx context.Context, id uuid.UUID, statuses []string) (int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *model.SupplyRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SupplyRequest, error) {
	var req model.SupplyRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListRaw returns every stored document ordered by creation timestamp
// descending. Rows are handed back untyped; callers decode them and drop
// whatever fails.
func (r *requestRepository) ListRaw(ctx context.Context) ([]map[string]any, error) {
	var rows []map[string]any
	if err := GetDB(ctx, r.db).
		Model(&model.SupplyRequest{}).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateWhereStatus writes fields only while the persisted status still
// matches. Zero affected rows means the precondition no longer holds.
func (r *requestRepository) UpdateWhereStatus(ctx context.Context, id uuid.UUID, status string, fields map[string]any) (int64, error) {
	result := GetDB(ctx, r.db).
		Model(&model.SupplyRequest{}).
		Where("id = ? AND status = ?", id, status).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// UpdateByID writes fields unconditionally. Zero affected rows means the
// record does not exist.
func (r *requestRepository) UpdateByID(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	result := GetDB(ctx, r.db).
		Model(&model.SupplyRequest{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// DeleteWhereStatusIn removes the record only while its persisted status
// is in the given set.
func (r *requestRepository) DeleteWhereStatusIn(ctx context.Context, id uuid.UUID, statuses []string) (int64, error) {
	result := GetDB(ctx, r.db).
		Where("id = ? AND status IN ?", id, statuses).
		Delete(&model.SupplyRequest{})
	return result.RowsAffected, result.Error
}
