// Package memory implementa los repositorios en memoria (DB_DRIVER=memory y tests).
// Las entidades se guardan por valor: cada lectura devuelve una copia.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa transacciones

	users         map[string]entity.User
	staff         map[string]entity.Staff
	attendance    map[string]entity.AttendanceRecord
	items         map[string]entity.InventoryItem
	movements     []entity.InventoryMovement
	warehouses    map[string]entity.Warehouse
	suppliers     map[string]entity.Supplier
	customers     map[string]entity.Customer
	notifications map[string]entity.Notification
	inbox         map[string]map[string]*time.Time // userID -> notificationID -> leída
	payrolls      map[string]entity.Payroll

	undo []func() // escrituras de la transacción en curso (protegido por txMu)
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]entity.User),
		staff:         make(map[string]entity.Staff),
		attendance:    make(map[string]entity.AttendanceRecord),
		items:         make(map[string]entity.InventoryItem),
		warehouses:    make(map[string]entity.Warehouse),
		suppliers:     make(map[string]entity.Supplier),
		customers:     make(map[string]entity.Customer),
		notifications: make(map[string]entity.Notification),
		inbox:         make(map[string]map[string]*time.Time),
		payrolls:      make(map[string]entity.Payroll),
	}
}

// Ping cumple la interfaz de health check.
func (s *Store) Ping(context.Context) error { return nil }

// remember registra el valor previo de m[k] para deshacerlo si la transacción falla.
// Se llama con mu tomado y solo dentro de transacción.
func remember[K comparable, V any](s *Store, m map[K]V, k K) {
	prev, ok := m[k]
	s.undo = append(s.undo, func() {
		if ok {
			m[k] = prev
		} else {
			delete(m, k)
		}
	})
}

// rollback aplica el undo log en orden inverso.
func (s *Store) rollback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i]()
	}
}

// lock toma el lock de escritura. Fuera de transacción también espera a txMu,
// así un rollback no descarta escrituras ajenas.
func (s *Store) lock(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// page aplica offset/limit; limit <= 0 = sin límite.
func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
