package delete_availability

import "github.com/google/uuid"

// Response результат удаления окна
type Response struct {
	ID               uuid.UUID `json:"id"`
	SoftDeletedSlots int64     `json:"softDeletedSlots"`
	AlreadyInactive  bool      `json:"alreadyInactive"`
}
