package entity

import "time"

// Estados de una operación registrada para idempotencia.
const (
	RequestSucceeded = "success"
	RequestFailed    = "failed"
)

// ProcessedRequest resultado registrado de una operación enviada por un dispositivo,
// indexado por su clave de idempotencia (tabla processed_requests).
type ProcessedRequest struct {
	IdempotencyKey string
	OperationKind  string
	Status         string
	ResultRef      string // receipt_id o transfer_ref
	ErrorCode      string
	Message        string
	CreatedAt      time.Time
}
