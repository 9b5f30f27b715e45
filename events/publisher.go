// Package events publishes catalog and order changes after they commit.
package events

import (
	"context"
	"sync"

	"takeout-api/models"
)

const (
	KeyDishStatus  = "catalog.dish.status"
	KeyComboStatus = "catalog.combo.status"
	KeyOrderStatus = "order.status"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

type DishStatusChanged struct {
	DishID         uint              `json:"dish_id"`
	Status         models.SaleStatus `json:"status"`
	DisabledCombos []uint            `json:"disabled_combos,omitempty"`
}

type ComboStatusChanged struct {
	ComboID uint              `json:"combo_id"`
	Status  models.SaleStatus `json:"status"`
}

type OrderStatusChanged struct {
	OrderID uint               `json:"order_id"`
	Number  string             `json:"number"`
	From    models.OrderStatus `json:"from"`
	To      models.OrderStatus `json:"to"`
}

// Nop drops every event
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                                { return nil }

// Message is an event captured by Memory
type Message struct {
	RoutingKey string
	Payload    any
}

// Memory keeps published events in order; handy for local runs and tests
type Memory struct {
	mu       sync.Mutex
	messages []Message
}

func (m *Memory) Publish(_ context.Context, routingKey string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, Message{RoutingKey: routingKey, Payload: payload})
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}
