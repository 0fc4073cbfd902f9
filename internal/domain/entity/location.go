package entity

import "time"

// Location representa una ubicación física del almacén (rampa de recepción, rack, estante).
type Location struct {
	ID        int64
	Code      string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
