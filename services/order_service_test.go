package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"takeout-api/events"
	"takeout-api/logger"
	"takeout-api/models"

	"github.com/shopspring/decimal"
)

type orderFixture struct {
	*catalog
	cart   *CartService
	orders *OrderService
}

func newOrders(t *testing.T) *orderFixture {
	t.Helper()
	c := newCatalog(t)
	orders := NewOrderService(c.db, c.events, logger.Nop())
	orders.now = func() time.Time { return time.Date(2024, 7, 1, 18, 30, 0, 0, time.UTC) }
	return &orderFixture{
		catalog: c,
		cart:    NewCartService(c.db, logger.Nop()),
		orders:  orders,
	}
}

func (f *orderFixture) submit(t *testing.T, userID uint) *models.Order {
	t.Helper()
	ctx := context.Background()
	d := f.dish(t, "Dish for "+string(rune('A'+userID)), "6.25", models.StatusSellable)
	if err := f.cart.Add(ctx, userID, Selection{DishID: d.ID}); err != nil {
		t.Fatal(err)
	}
	o, err := f.orders.Submit(ctx, userID, SubmitInput{Address: "1 Test Road"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return o
}

func TestSubmit_BuildsOrderFromCart(t *testing.T) {
	f := newOrders(t)
	ctx := context.Background()
	a := f.dish(t, "A", "5.00", models.StatusSellable)
	b := f.dish(t, "B", "2.50", models.StatusSellable)
	for _, sel := range []Selection{{DishID: a.ID}, {DishID: a.ID}, {DishID: b.ID, DishFlavor: "spicy"}} {
		if err := f.cart.Add(ctx, 1, sel); err != nil {
			t.Fatal(err)
		}
	}

	o, err := f.orders.Submit(ctx, 1, SubmitInput{Address: "1 Test Road", Remark: "no onions"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if o.Status != models.StatusPendingPayment {
		t.Errorf("status = %s", o.Status)
	}
	if !o.Amount.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("amount = %s, want 12.50", o.Amount)
	}
	if !strings.HasPrefix(o.Number, "ORD20240701183000") {
		t.Errorf("unexpected order number %s", o.Number)
	}
	if len(o.Details) != 2 || o.Details[1].DishFlavor != "spicy" {
		t.Errorf("unexpected details %+v", o.Details)
	}

	lines, _ := f.cart.List(ctx, 1)
	if len(lines) != 0 {
		t.Errorf("cart should be cleared, got %d lines", len(lines))
	}
	if n := count(t, f.db, &models.OrderStatusHistory{}, "order_id = ?", o.ID); n != 1 {
		t.Errorf("expected 1 history row, got %d", n)
	}
}

func TestSubmit_EmptyCart(t *testing.T) {
	f := newOrders(t)
	_, err := f.orders.Submit(context.Background(), 1, SubmitInput{Address: "x"})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestTransition_FullLifecycle(t *testing.T) {
	f := newOrders(t)
	ctx := context.Background()
	o := f.submit(t, 1)

	steps := []struct {
		actor uint
		role  models.UserRole
		to    models.OrderStatus
	}{
		{1, models.RoleCustomer, models.StatusToBeConfirmed},
		{99, models.RoleAdmin, models.StatusConfirmed},
		{99, models.RoleAdmin, models.StatusDeliveryInProgress},
		{99, models.RoleAdmin, models.StatusCompleted},
	}
	for _, s := range steps {
		if err := f.orders.Transition(ctx, s.actor, s.role, o.ID, s.to, ""); err != nil {
			t.Fatalf("transition to %s: %v", s.to, err)
		}
	}

	got, err := f.orders.Get(ctx, 0, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %s", got.Status)
	}
	if got.CheckoutTime == nil || got.DeliveryTime == nil {
		t.Error("checkout and delivery times should be stamped")
	}
	if len(got.StatusHistory) != 5 {
		t.Errorf("expected 5 history rows, got %d", len(got.StatusHistory))
	}
	last := got.StatusHistory[4]
	if last.FromStatus != models.StatusDeliveryInProgress || last.ToStatus != models.StatusCompleted {
		t.Errorf("unexpected last history row %+v", last)
	}

	msgs := f.events.Messages()
	evt := msgs[len(msgs)-1].Payload.(events.OrderStatusChanged)
	if evt.From != models.StatusDeliveryInProgress || evt.To != models.StatusCompleted || evt.Number != o.Number {
		t.Errorf("unexpected event %+v", evt)
	}
}

func TestTransition_Rejections(t *testing.T) {
	f := newOrders(t)
	ctx := context.Background()
	o := f.submit(t, 1)

	err := f.orders.Transition(ctx, 1, models.RoleCustomer, o.ID, models.StatusConfirmed, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("customer confirm: expected ErrInvalidTransition, got %v", err)
	}
	err = f.orders.Transition(ctx, 2, models.RoleCustomer, o.ID, models.StatusCancelled, "")
	if !errors.Is(err, ErrOrderForbidden) {
		t.Errorf("other customer: expected ErrOrderForbidden, got %v", err)
	}
	err = f.orders.Transition(ctx, 1, models.RoleCustomer, 999, models.StatusCancelled, "")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("missing order: expected ErrOrderNotFound, got %v", err)
	}

	if err := f.orders.Transition(ctx, 1, models.RoleCustomer, o.ID, models.StatusCancelled, "changed my mind"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	err = f.orders.Transition(ctx, 99, models.RoleAdmin, o.ID, models.StatusConfirmed, "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancelled order is terminal, got %v", err)
	}
}

func TestOrders_GetAndList(t *testing.T) {
	f := newOrders(t)
	ctx := context.Background()
	mine := f.submit(t, 1)
	f.submit(t, 2)

	if _, err := f.orders.Get(ctx, 2, mine.ID); !errors.Is(err, ErrOrderForbidden) {
		t.Errorf("expected ErrOrderForbidden, got %v", err)
	}

	list, total, err := f.orders.ListForUser(ctx, 1, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != mine.ID {
		t.Errorf("unexpected user orders total=%d %+v", total, list)
	}

	all, total, err := f.orders.ListAll(ctx, OrderFilter{Status: models.StatusPendingPayment})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("expected 2 pending orders, got %d", total)
	}
}
