package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PlanItem is a planned product portion within a meal plan.
type PlanItem struct {
	ID        int64           `json:"id"`
	PlanID    int64           `json:"planId"`
	ProductID *int64          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Meal      Meal            `json:"meal"`
	Grams     decimal.Decimal `json:"grams"`
	Nutrients Nutrients       `json:"nutrients"`
}

// MealPlan is a one-day menu a dietitian prepares for a client.
type MealPlan struct {
	ID          int64      `json:"id"`
	DietitianID int64      `json:"dietitianId"`
	ClientID    int64      `json:"clientId"`
	Name        string     `json:"name"`
	Day         string     `json:"day"`
	Items       []PlanItem `json:"items"`
	Totals      Nutrients  `json:"totals"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Recompute refreshes Totals from the already scaled items.
func (p *MealPlan) Recompute() {
	var totals Nutrients
	for _, it := range p.Items {
		totals = totals.Add(it.Nutrients)
	}
	p.Totals = totals
}

// PlanRepository is the port for meal plan persistence. GetPlan returns the
// plan with its items.
type PlanRepository interface {
	CreatePlan(ctx context.Context, p MealPlan) (int64, error)
	GetPlan(ctx context.Context, id int64) (*MealPlan, error)
	ListPlansForClient(ctx context.Context, clientID int64) ([]MealPlan, error)
	AddPlanItem(ctx context.Context, item PlanItem) (int64, error)
	DeletePlanItem(ctx context.Context, planID, itemID int64) (bool, error)
}
