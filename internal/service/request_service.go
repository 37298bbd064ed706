package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backend/internal/mapper"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

// Quantity carries no binding constraint: an out-of-range value is
// clamped on write, not rejected.
type CreateRequestDTO struct {
	Item        string `json:"item" binding:"required"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason" binding:"required"`
	PurchaseURL string `json:"purchase_url"`
}

type UpdateRequestDTO struct {
	Item        string `json:"item" binding:"required"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason" binding:"required"`
	PurchaseURL string `json:"purchase_url"`
}

type CancelRequestDTO struct {
	Comment string `json:"comment"`
}

type ChangeStatusDTO struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

type RequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Department   string  `json:"department"`
	Item         string  `json:"item"`
	Quantity     int     `json:"quantity"`
	Reason       string  `json:"reason"`
	PurchaseURL  *string `json:"purchase_url"`
	AdminComment *string `json:"admin_comment"`
	Status       string  `json:"status"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
}

// --- Interface ---

// RequestService is the transactional gateway for the request lifecycle.
// Every state transition runs as one atomic read-modify-write; the legality
// of each transition is decided by the pure mapper functions before any
// write is attempted.
type RequestService interface {
	List(ctx context.Context, identity model.Identity) ([]RequestResponse, error)
	Create(ctx context.Context, identity model.Identity, req CreateRequestDTO) (RequestResponse, error)
	Update(ctx context.Context, identity model.Identity, id string, req UpdateRequestDTO) (RequestResponse, error)
	Cancel(ctx context.Context, identity model.Identity, id string, comment string) (RequestResponse, error)
	ChangeStatus(ctx context.Context, id string, req ChangeStatusDTO, override bool) error
	Delete(ctx context.Context, id string) error
}

type requestService struct {
	repo repository.RequestRepository
	txm  repository.TransactionManager
	now  func() int64
}

func NewRequestService(repo repository.RequestRepository, txm repository.TransactionManager) RequestService {
	return &requestService{
		repo: repo,
		txm:  txm,
		now:  func() int64 { return time.Now().UnixMilli() },
	}
}

// --- Implementation ---

// List returns the stored requests newest first. Rows that fail decoding
// are dropped silently — a corrupted record never turns the whole listing
// into an error. Employees see only their own requests.
func (s *requestService) List(ctx context.Context, identity model.Identity) ([]RequestResponse, error) {
	rows, err := s.repo.ListRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}

	result := make([]RequestResponse, 0, len(rows))
	for _, row := range rows {
		record, ok := mapper.DecodeRecord(row)
		if !ok {
			continue
		}
		if !identity.IsAdmin() && record.EmployeeID != identity.EmployeeID {
			continue
		}
		result = append(result, toRequestResponse(record))
	}

	return result, nil
}

func (s *requestService) Create(ctx context.Context, identity model.Identity, req CreateRequestDTO) (RequestResponse, error) {
	record := mapper.CreateRecord(mapper.NewRequestInput{
		EmployeeID:   identity.EmployeeID,
		EmployeeName: identity.Name,
		Department:   identity.Department,
		Item:         req.Item,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		PurchaseURL:  optionalString(req.PurchaseURL),
	}, s.now())

	if err := s.repo.Create(ctx, &record); err != nil {
		return RequestResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	return toRequestResponse(record), nil
}

// Update edits a pending request owned by the caller. The read and the
// conditional write share one transaction; the write additionally guards
// on status = PENDING so the precondition can never be invalidated between
// check and commit.
func (s *requestService) Update(ctx context.Context, identity model.Identity, id string, req UpdateRequestDTO) (RequestResponse, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return RequestResponse{}, ErrRequestNotFound
	}

	updates := mapper.RequestUpdate{
		Item:        req.Item,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		PurchaseURL: optionalString(req.PurchaseURL),
	}

	var updated model.SupplyRequest
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		current, findErr := s.repo.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("failed to load request: %w", findErr)
		}

		if current.EmployeeID != identity.EmployeeID {
			return ErrForbidden
		}

		next := mapper.ApplyEdit(*current, updates, s.now())
		if next == nil {
			return ErrRequestNotPending
		}

		rows, writeErr := s.repo.UpdateWhereStatus(txCtx, requestID, model.StatusPending, map[string]any{
			"item":         next.Item,
			"quantity":     next.Quantity,
			"reason":       next.Reason,
			"purchase_url": next.PurchaseURL,
			"updated_at":   next.UpdatedAt,
		})
		if writeErr != nil {
			return fmt.Errorf("failed to update request: %w", writeErr)
		}
		if rows == 0 {
			return ErrRequestNotPending
		}

		updated = *next
		return nil
	})
	if err != nil {
		return RequestResponse{}, err
	}

	return toRequestResponse(updated), nil
}

// Cancel moves a pending request owned by the caller to CANCELED. An empty
// comment falls back to the fixed self-cancel marker.
func (s *requestService) Cancel(ctx context.Context, identity model.Identity, id string, comment string) (RequestResponse, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return RequestResponse{}, ErrRequestNotFound
	}

	if strings.TrimSpace(comment) == "" {
		comment = model.DefaultCancelComment
	}

	var canceled model.SupplyRequest
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		current, findErr := s.repo.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("failed to load request: %w", findErr)
		}

		if current.EmployeeID != identity.EmployeeID {
			return ErrForbidden
		}

		next := mapper.ApplyCancel(*current, comment, s.now())
		if next == nil {
			return ErrRequestNotPending
		}

		rows, writeErr := s.repo.UpdateWhereStatus(txCtx, requestID, model.StatusPending, map[string]any{
			"status":        next.Status,
			"admin_comment": next.AdminComment,
			"updated_at":    next.UpdatedAt,
		})
		if writeErr != nil {
			return fmt.Errorf("failed to cancel request: %w", writeErr)
		}
		if rows == 0 {
			return ErrRequestNotPending
		}

		canceled = *next
		return nil
	})
	if err != nil {
		return RequestResponse{}, err
	}

	return toRequestResponse(canceled), nil
}

// ChangeStatus is the administrator transition. A missing record is a
// silent no-op: re-issuing a transition for a request that was deleted in
// the meantime must succeed with no effect. The guarded entry point
// enforces the lifecycle transition table; override keeps the historical
// unconditional overwrite for administrator corrections.
func (s *requestService) ChangeStatus(ctx context.Context, id string, req ChangeStatusDTO, override bool) error {
	if !model.IsValidStatus(req.Status) {
		return ErrInvalidStatus
	}

	requestID, err := uuid.Parse(id)
	if err != nil {
		// Treated like a missing record: nothing to transition.
		return nil
	}

	return s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		current, findErr := s.repo.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load request: %w", findErr)
		}

		fields := map[string]any{
			"status":        req.Status,
			"admin_comment": optionalString(req.Comment),
			"updated_at":    s.now(),
		}

		if override {
			if _, writeErr := s.repo.UpdateByID(txCtx, requestID, fields); writeErr != nil {
				return fmt.Errorf("failed to change request status: %w", writeErr)
			}
			return nil
		}

		if !model.CanTransition(current.Status, req.Status) {
			return ErrIllegalTransition
		}

		// The write repeats the status the table check ran against, so a
		// concurrent transition committed between the read and this write
		// makes the update miss instead of overwriting the newer status.
		rows, writeErr := s.repo.UpdateWhereStatus(txCtx, requestID, current.Status, fields)
		if writeErr != nil {
			return fmt.Errorf("failed to change request status: %w", writeErr)
		}
		if rows == 0 {
			return ErrIllegalTransition
		}
		return nil
	})
}

// Delete removes a request, allowed only once its status is terminal.
func (s *requestService) Delete(ctx context.Context, id string) error {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return ErrRequestNotFound
	}

	return s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		current, findErr := s.repo.FindByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("failed to load request: %w", findErr)
		}

		if !model.IsFinalized(current.Status) {
			return ErrRequestNotFinalized
		}

		rows, deleteErr := s.repo.DeleteWhereStatusIn(txCtx, requestID, model.FinalizedStatuses())
		if deleteErr != nil {
			return fmt.Errorf("failed to delete request: %w", deleteErr)
		}
		if rows == 0 {
			return ErrRequestNotFinalized
		}
		return nil
	})
}

// --- Helpers ---

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func toRequestResponse(r model.SupplyRequest) RequestResponse {
	return RequestResponse{
		ID:           r.ID.String(),
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Department:   r.Department,
		Item:         r.Item,
		Quantity:     r.Quantity,
		Reason:       r.Reason,
		PurchaseURL:  r.PurchaseURL,
		AdminComment: r.AdminComment,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
