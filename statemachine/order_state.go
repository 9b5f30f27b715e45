package statemachine

import (
	"errors"
	"strings"

	"takeout-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor models.UserRole    `json:"actor"`
}

// validTransitions is the authoritative order lifecycle
var validTransitions = []Transition{
	// Customer pays or abandons a fresh order
	{From: models.StatusPendingPayment, To: models.StatusToBeConfirmed, Actor: models.RoleCustomer},
	{From: models.StatusPendingPayment, To: models.StatusCancelled, Actor: models.RoleCustomer},
	{From: models.StatusPendingPayment, To: models.StatusCancelled, Actor: models.RoleAdmin},
	// Paid orders can still be withdrawn before the shop accepts them
	{From: models.StatusToBeConfirmed, To: models.StatusCancelled, Actor: models.RoleCustomer},
	{From: models.StatusToBeConfirmed, To: models.StatusConfirmed, Actor: models.RoleAdmin},
	{From: models.StatusToBeConfirmed, To: models.StatusCancelled, Actor: models.RoleAdmin},
	{From: models.StatusConfirmed, To: models.StatusDeliveryInProgress, Actor: models.RoleAdmin},
	{From: models.StatusConfirmed, To: models.StatusCancelled, Actor: models.RoleAdmin},
	{From: models.StatusDeliveryInProgress, To: models.StatusCompleted, Actor: models.RoleAdmin},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor models.UserRole) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return errors.New(
		string(from) + " → " + string(to) + " is not allowed for actor '" + string(actor) + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

// IsTerminal reports whether no transition leaves the given state
func IsTerminal(status models.OrderStatus) bool {
	return len(ValidTransitionsFrom(status)) == 0
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
