package store

import (
	"context"
	"fmt"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// OrderStatusUpdater PATCH del estado de un pedido.
type OrderStatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, id, status string) (*entity.Order, error)
}

// OrderStore Store de pedidos con cambio de estado optimista.
type OrderStore struct {
	*Store[entity.Order]
	status OrderStatusUpdater
}

// NewOrderStore construye el store de pedidos.
func NewOrderStore(gw Gateway[entity.Order], status OrderStatusUpdater, opts Options) *OrderStore {
	return &OrderStore{Store: New[entity.Order]("orders", gw, opts), status: status}
}

// UpdateOrderStatus cambia el estado en la lista antes de llamar al backend y
// lo revierte si la llamada falla.
func (s *OrderStore) UpdateOrderStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	current, ok := s.find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	optimistic := current
	optimistic.Status = status
	prev, _ := s.replace(id, optimistic)

	updated, err := s.status.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		s.rollback(id, status, prev)
		return nil, s.fail(err)
	}
	if updated == nil || updated.ID == "" {
		updated = &optimistic
	}
	s.replace(id, *updated)
	s.notifier.Success("Order status updated")
	return updated, nil
}

// rollback restaura el pedido solo si nadie lo reemplazó desde el cambio optimista.
func (s *OrderStore) rollback(id, optimisticStatus string, prev entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].Status == optimisticStatus {
			s.items[i] = prev
			return
		}
	}
}
