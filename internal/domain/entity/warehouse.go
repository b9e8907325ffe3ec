package entity

import "time"

// Warehouse bodega o almacén de la fábrica.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
