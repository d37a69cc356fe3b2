package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

// --- ProfileRepository ---

// GetProfile returns the profile of userID.
func (db *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p, ok := db.profiles[userID]; ok {
		return &p, nil
	}
	return nil, nil
}

// SaveProfile inserts or replaces a profile.
func (db *DB) SaveProfile(ctx context.Context, p domain.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.profiles[p.UserID] = p
	return nil
}

// --- ProductRepository ---

// CreateProduct adds a product to the catalog.
func (db *DB) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.productIDCounter++
	p.ID = db.productIDCounter
	db.products[p.ID] = p
	return p.ID, nil
}

// UpdateProduct replaces the editable fields of a product.
func (db *DB) UpdateProduct(ctx context.Context, p domain.Product) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cur, ok := db.products[p.ID]
	if !ok {
		return false, nil
	}
	cur.Name = p.Name
	cur.Brand = p.Brand
	cur.Per100 = p.Per100
	cur.UpdatedAt = p.UpdatedAt
	db.products[p.ID] = cur
	return true, nil
}

// DeleteProduct removes a product. References from entries, ingredients and
// plan items are cleared.
func (db *DB) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.products[id]; !ok {
		return false, nil
	}
	delete(db.products, id)

	for i := range db.entries {
		if ref := db.entries[i].ProductID; ref != nil && *ref == id {
			db.entries[i].ProductID = nil
		}
	}
	for _, d := range db.dishes {
		for i := range d.Ingredients {
			if ref := d.Ingredients[i].ProductID; ref != nil && *ref == id {
				d.Ingredients[i].ProductID = nil
			}
		}
	}
	for _, p := range db.plans {
		for i := range p.Items {
			if ref := p.Items[i].ProductID; ref != nil && *ref == id {
				p.Items[i].ProductID = nil
			}
		}
	}
	return true, nil
}

// GetProduct returns a product by ID.
func (db *DB) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p, ok := db.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

// SearchProducts returns up to limit products whose name or brand contains
// query, case-insensitively, ordered by name.
func (db *DB) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	q := strings.ToLower(query)
	out := make([]domain.Product, 0)
	for _, p := range db.products {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Brand), q) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- DiaryRepository ---

// AddLogEntry stores a diary entry.
func (db *DB) AddLogEntry(ctx context.Context, e domain.LogEntry) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entryIDCounter++
	e.ID = db.entryIDCounter
	e.LoggedAt = e.LoggedAt.UTC()
	db.entries = append(db.entries, e)
	return e.ID, nil
}

// DeleteLogEntry removes one of userID's entries.
func (db *DB) DeleteLogEntry(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.entries {
		if e.ID == id && e.UserID == userID {
			db.entries = append(db.entries[:i], db.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListLogEntries returns userID's entries logged in [from, to) in log order.
func (db *DB) ListLogEntries(ctx context.Context, userID int64, from, to time.Time) ([]domain.LogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.LogEntry, 0)
	for _, e := range db.entries {
		if e.UserID == userID && !e.LoggedAt.Before(from) && e.LoggedAt.Before(to) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].LoggedAt.Equal(out[j].LoggedAt) {
			return out[i].LoggedAt.Before(out[j].LoggedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// --- DishRepository ---

// CreateDish adds an empty dish.
func (db *DB) CreateDish(ctx context.Context, ownerID int64, name string) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.dishIDCounter++
	now := time.Now().UTC()
	db.dishes[db.dishIDCounter] = domain.Dish{
		ID:         db.dishIDCounter,
		OwnerID:    ownerID,
		Name:       name,
		TotalGrams: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return db.dishIDCounter, nil
}

// GetDish returns a dish with its ingredients.
func (db *DB) GetDish(ctx context.Context, id int64) (*domain.Dish, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	d, ok := db.dishes[id]
	if !ok {
		return nil, nil
	}
	d.Ingredients = append([]domain.DishIngredient{}, d.Ingredients...)
	return &d, nil
}

// ListDishes returns ownerID's dishes ordered by name, without ingredients.
func (db *DB) ListDishes(ctx context.Context, ownerID int64) ([]domain.Dish, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Dish, 0)
	for _, d := range db.dishes {
		if d.OwnerID == ownerID {
			d.Ingredients = nil
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteDish removes one of ownerID's dishes. Diary entries logged from it
// keep their nutrients.
func (db *DB) DeleteDish(ctx context.Context, ownerID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	d, ok := db.dishes[id]
	if !ok || d.OwnerID != ownerID {
		return false, nil
	}
	delete(db.dishes, id)
	for i := range db.entries {
		if ref := db.entries[i].DishID; ref != nil && *ref == id {
			db.entries[i].DishID = nil
		}
	}
	return true, nil
}

// AddDishIngredient appends an ingredient to a dish. Totals are left to
// UpdateDishTotals.
func (db *DB) AddDishIngredient(ctx context.Context, ing domain.DishIngredient) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	d, ok := db.dishes[ing.DishID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	db.ingredientIDCounter++
	ing.ID = db.ingredientIDCounter
	d.Ingredients = append(d.Ingredients, ing)
	db.dishes[ing.DishID] = d
	return ing.ID, nil
}

// DeleteDishIngredient removes an ingredient from a dish.
func (db *DB) DeleteDishIngredient(ctx context.Context, dishID, ingredientID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	d, ok := db.dishes[dishID]
	if !ok {
		return false, nil
	}
	for i, ing := range d.Ingredients {
		if ing.ID == ingredientID {
			d.Ingredients = append(d.Ingredients[:i:i], d.Ingredients[i+1:]...)
			db.dishes[dishID] = d
			return true, nil
		}
	}
	return false, nil
}

// UpdateDishTotals stores recomputed dish totals.
func (db *DB) UpdateDishTotals(ctx context.Context, dishID int64, totals domain.Nutrients, grams decimal.Decimal) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	d, ok := db.dishes[dishID]
	if !ok {
		return domain.ErrNotFound
	}
	d.Totals = totals
	d.TotalGrams = grams
	d.UpdatedAt = time.Now().UTC()
	db.dishes[dishID] = d
	return nil
}

// --- PlanRepository ---

// CreatePlan stores a plan without items.
func (db *DB) CreatePlan(ctx context.Context, p domain.MealPlan) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.planIDCounter++
	p.ID = db.planIDCounter
	p.Items = nil
	db.plans[p.ID] = p
	return p.ID, nil
}

// GetPlan returns a plan with its items.
func (db *DB) GetPlan(ctx context.Context, id int64) (*domain.MealPlan, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.plans[id]
	if !ok {
		return nil, nil
	}
	p.Items = append([]domain.PlanItem{}, p.Items...)
	return &p, nil
}

// ListPlansForClient returns clientID's plans with items, newest day first.
func (db *DB) ListPlansForClient(ctx context.Context, clientID int64) ([]domain.MealPlan, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.MealPlan, 0)
	for _, p := range db.plans {
		if p.ClientID == clientID {
			p.Items = append([]domain.PlanItem{}, p.Items...)
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day > out[j].Day
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// AddPlanItem appends an item to a plan.
func (db *DB) AddPlanItem(ctx context.Context, item domain.PlanItem) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.plans[item.PlanID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	db.planItemIDCounter++
	item.ID = db.planItemIDCounter
	p.Items = append(p.Items, item)
	db.plans[item.PlanID] = p
	return item.ID, nil
}

// DeletePlanItem removes an item from a plan.
func (db *DB) DeletePlanItem(ctx context.Context, planID, itemID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.plans[planID]
	if !ok {
		return false, nil
	}
	for i, it := range p.Items {
		if it.ID == itemID {
			p.Items = append(p.Items[:i:i], p.Items[i+1:]...)
			db.plans[planID] = p
			return true, nil
		}
	}
	return false, nil
}
