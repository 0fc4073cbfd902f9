package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-sync/internal/domain"
	"github.com/jhoicas/wms-sync/internal/domain/entity"
	"github.com/jhoicas/wms-sync/internal/domain/repository"
)

var _ repository.ProcessedRequestRepository = (*ProcessedRequestRepo)(nil)

// ProcessedRequestRepo registro de idempotencia (processed_requests).
type ProcessedRequestRepo struct {
	q Querier
}

// NewProcessedRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProcessedRequestRepository(q Querier) *ProcessedRequestRepo {
	return &ProcessedRequestRepo{q: q}
}

// Get devuelve nil si la clave no fue registrada.
func (r *ProcessedRequestRepo) Get(ctx context.Context, key string) (*entity.ProcessedRequest, error) {
	query := `
		SELECT idempotency_key, operation_kind, status, result_ref, error_code, message, created_at
		FROM processed_requests WHERE idempotency_key = $1`
	var (
		p                        entity.ProcessedRequest
		resultRef, code, message *string
	)
	err := r.q.QueryRow(ctx, query, key).Scan(
		&p.IdempotencyKey, &p.OperationKind, &p.Status, &resultRef, &code, &message, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get processed request: %w", err)
	}
	p.ResultRef = derefString(resultRef)
	p.ErrorCode = derefString(code)
	p.Message = derefString(message)
	return &p, nil
}

// Save registra el resultado. Una clave repetida devuelve domain.ErrDuplicate.
func (r *ProcessedRequestRepo) Save(ctx context.Context, p *entity.ProcessedRequest) error {
	query := `
		INSERT INTO processed_requests (idempotency_key, operation_kind, status, result_ref, error_code, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		p.IdempotencyKey, p.OperationKind, p.Status,
		nullableString(p.ResultRef), nullableString(p.ErrorCode), nullableString(p.Message),
	).Scan(&p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("processed request %q: %w", p.IdempotencyKey, domain.ErrDuplicate)
		}
		return fmt.Errorf("save processed request: %w", err)
	}
	return nil
}
