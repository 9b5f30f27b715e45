package services

import (
	"context"
	"errors"
	"testing"

	"takeout-api/models"

	"github.com/shopspring/decimal"
)

func TestUpdateDish_ReplacesAllFlavors(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	d, err := c.dishes.Create(ctx, DishInput{
		Name:       "Tea",
		CategoryID: c.cat.ID,
		Price:      decimal.RequireFromString("3.50"),
		Flavors: []models.DishFlavor{
			{Name: "sugar", Value: `["none","full"]`},
			{Name: "ice", Value: `["hot","cold"]`},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.Status != models.StatusUnsellable {
		t.Errorf("new dishes should start off sale, got %s", d.Status)
	}

	err = c.dishes.Update(ctx, d.ID, DishInput{
		Name:       "Milk Tea",
		CategoryID: c.cat.ID,
		Price:      decimal.RequireFromString("4.00"),
		Flavors:    []models.DishFlavor{{Name: "size", Value: `["M","L"]`}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := c.dishes.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Milk Tea" || !got.Price.Equal(decimal.RequireFromString("4.00")) {
		t.Errorf("attributes not updated: %+v", got)
	}
	if len(got.Flavors) != 1 || got.Flavors[0].Name != "size" {
		t.Errorf("expected flavors to be fully replaced, got %+v", got.Flavors)
	}
}

func TestUpdateDish_EmptyFlavorsClearsThem(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	d, err := c.dishes.Create(ctx, DishInput{
		Name:       "Tea",
		CategoryID: c.cat.ID,
		Flavors:    []models.DishFlavor{{Name: "sugar", Value: `["none"]`}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.dishes.Update(ctx, d.ID, DishInput{Name: "Tea", CategoryID: c.cat.ID}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := count(t, c.db, &models.DishFlavor{}, "dish_id = ?", d.ID); n != 0 {
		t.Errorf("expected no flavors, got %d", n)
	}
}

func TestCreateDish_Validation(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	c.dish(t, "Rice", "2.00", "")

	_, err := c.dishes.Create(ctx, DishInput{Name: "Rice", CategoryID: c.cat.ID})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	_, err = c.dishes.Create(ctx, DishInput{Name: "Soup", CategoryID: 999})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
	err = c.dishes.Update(ctx, 999, DishInput{Name: "Soup", CategoryID: c.cat.ID})
	if !errors.Is(err, ErrDishNotFound) {
		t.Errorf("expected ErrDishNotFound, got %v", err)
	}
}

func TestCreateCombo_SnapshotsMemberNameAndPrice(t *testing.T) {
	c := newCatalog(t)
	a := c.dish(t, "A", "5.00", models.StatusSellable)

	cb, err := c.combos.Create(context.Background(), ComboInput{
		Name:       "C",
		CategoryID: c.cat.ID,
		Price:      decimal.RequireFromString("9.00"),
		Dishes:     []models.ComboDish{{DishID: a.ID}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(cb.Dishes) != 1 {
		t.Fatalf("expected 1 member, got %d", len(cb.Dishes))
	}
	m := cb.Dishes[0]
	if m.ComboID != cb.ID || m.Name != "A" || !m.Price.Equal(a.Price) || m.Copies != 1 {
		t.Errorf("unexpected member %+v", m)
	}
}

func TestUpdateCombo_ReplacesAllMembers(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	a := c.dish(t, "A", "5.00", models.StatusSellable)
	b := c.dish(t, "B", "6.00", models.StatusSellable)
	d := c.dish(t, "D", "7.00", models.StatusSellable)
	cb := c.combo(t, "C", models.StatusUnsellable, a, b)

	err := c.combos.Update(ctx, cb.ID, ComboInput{
		Name:       "C",
		CategoryID: c.cat.ID,
		Price:      decimal.RequireFromString("11.00"),
		Dishes:     []models.ComboDish{{DishID: d.ID, Copies: 2}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := c.combos.Get(ctx, cb.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Dishes) != 1 || got.Dishes[0].DishID != d.ID || got.Dishes[0].Copies != 2 {
		t.Errorf("expected membership replaced by dish %d x2, got %+v", d.ID, got.Dishes)
	}
	if n := count(t, c.db, &models.ComboDish{}, "dish_id IN ?", []uint{a.ID, b.ID}); n != 0 {
		t.Errorf("old members should be gone, got %d", n)
	}
}

func TestSellableCombo_CannotGainUnsellableMember(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	a := c.dish(t, "A", "5.00", models.StatusSellable)
	off := c.dish(t, "Off", "1.00", models.StatusUnsellable)
	cb := c.combo(t, "C", models.StatusSellable, a)

	err := c.combos.Update(ctx, cb.ID, ComboInput{
		Name:       "C",
		CategoryID: c.cat.ID,
		Dishes:     []models.ComboDish{{DishID: a.ID}, {DishID: off.ID}},
	})
	if !errors.Is(err, ErrComboEnableBlocked) {
		t.Fatalf("expected ErrComboEnableBlocked, got %v", err)
	}
	if n := count(t, c.db, &models.ComboDish{}, "combo_id = ?", cb.ID); n != 1 {
		t.Errorf("membership must be untouched after a rejected update, got %d", n)
	}

	_, err = c.combos.Create(ctx, ComboInput{
		Name:       "C2",
		CategoryID: c.cat.ID,
		Status:     models.StatusSellable,
		Dishes:     []models.ComboDish{{DishID: off.ID}},
	})
	if !errors.Is(err, ErrComboEnableBlocked) {
		t.Fatalf("expected ErrComboEnableBlocked on create, got %v", err)
	}
}

func TestCreateCombo_UnknownMember(t *testing.T) {
	c := newCatalog(t)
	_, err := c.combos.Create(context.Background(), ComboInput{
		Name:       "C",
		CategoryID: c.cat.ID,
		Dishes:     []models.ComboDish{{DishID: 42}},
	})
	if !errors.Is(err, ErrDishNotFound) {
		t.Fatalf("expected ErrDishNotFound, got %v", err)
	}
	if n := count(t, c.db, &models.Combo{}, ""); n != 0 {
		t.Errorf("combo must not be inserted, got %d", n)
	}
}

func TestListDishes_FiltersAndPages(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	c.dish(t, "Beef Noodles", "9.00", models.StatusSellable)
	c.dish(t, "Pork Noodles", "8.00", models.StatusUnsellable)
	c.dish(t, "Rice", "2.00", models.StatusSellable)

	list, total, err := c.dishes.List(ctx, DishFilter{Name: "Noodles", Page: Page{Page: 1, PageSize: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(list) != 1 {
		t.Errorf("expected total 2 with 1 on the page, got total %d len %d", total, len(list))
	}

	menu, err := c.dishes.ListSellable(ctx, c.cat.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(menu) != 2 {
		t.Errorf("expected 2 sellable dishes, got %d", len(menu))
	}
}

func TestCatalogStatus_SetOnCreateOnly(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	off := c.dish(t, "Plain", "3.00", "")
	if got := c.dishStatus(t, off.ID); got != models.StatusUnsellable {
		t.Errorf("dish created without status = %s, want UNSELLABLE", got)
	}
	if cb := c.combo(t, "Plain combo", ""); c.comboStatus(t, cb.ID) != models.StatusUnsellable {
		t.Error("combo created without status should be UNSELLABLE")
	}

	on := c.dish(t, "Fried rice", "8.00", models.StatusSellable)
	err := c.dishes.Update(ctx, on.ID, DishInput{
		Name:       "Fried rice",
		CategoryID: c.cat.ID,
		Price:      decimal.RequireFromString("8.50"),
		Status:     models.StatusUnsellable,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.dishStatus(t, on.ID); got != models.StatusSellable {
		t.Errorf("update must not change status, got %s", got)
	}

	cb := c.combo(t, "Rice set", models.StatusSellable, on)
	err = c.combos.Update(ctx, cb.ID, ComboInput{
		Name:       "Rice set",
		CategoryID: c.cat.ID,
		Status:     models.StatusUnsellable,
		Dishes:     []models.ComboDish{{DishID: on.ID}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.comboStatus(t, cb.ID); got != models.StatusSellable {
		t.Errorf("combo update must not change status, got %s", got)
	}
}
