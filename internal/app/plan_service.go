package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
)

// PlanView is a meal plan together with how well it covers the client's
// targets.
type PlanView struct {
	Plan     *domain.MealPlan        `json:"plan"`
	Coverage domain.ProgressSnapshot `json:"coverage"`
}

// PlanService lets dietitians author one-day meal plans for their clients.
type PlanService struct {
	plans    domain.PlanRepository
	products domain.ProductRepository
	users    domain.UserRepository
	clients  domain.ClientRepository
	profiles *ProfileService
	log      *slog.Logger
}

// NewPlanService creates a PlanService backed by the given repositories.
func NewPlanService(plans domain.PlanRepository, products domain.ProductRepository, users domain.UserRepository,
	clients domain.ClientRepository, profiles *ProfileService, log *slog.Logger,
) *PlanService {
	return &PlanService{
		plans:    plans,
		products: products,
		users:    users,
		clients:  clients,
		profiles: profiles,
		log:      loggerOrDefault(log),
	}
}

// Create starts an empty plan for clientID on the given local day.
func (s *PlanService) Create(ctx context.Context, actor domain.User, clientID int64, name, day string) (*domain.MealPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if _, _, err := domain.DayBounds(day); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, clientID); err != nil {
		return nil, err
	}
	client, err := s.users.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	p := domain.MealPlan{
		DietitianID: actor.ID,
		ClientID:    clientID,
		Name:        name,
		Day:         day,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.plans.CreatePlan(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	p.ID = id
	p.Items = []domain.PlanItem{}
	s.log.Info("meal plan created", "plan_id", id, "dietitian_id", actor.ID, "client_id", clientID)
	return &p, nil
}

// AddItem adds grams of a product to a plan under meal.
func (s *PlanService) AddItem(ctx context.Context, actor domain.User, planID, productID int64, grams decimal.Decimal, meal domain.Meal) (*PlanView, error) {
	if err := validGrams(grams); err != nil {
		return nil, err
	}
	if _, err := s.editable(ctx, actor, planID); err != nil {
		return nil, err
	}
	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	grams = grams.RoundBank(2)
	item := domain.PlanItem{
		PlanID:    planID,
		ProductID: &p.ID,
		Name:      p.Name,
		Meal:      meal.Normalize(),
		Grams:     grams,
		Nutrients: p.Per100.Scale(grams),
	}
	if _, err := s.plans.AddPlanItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add plan item: %w", err)
	}
	return s.Get(ctx, actor, planID)
}

// RemoveItem deletes an item from a plan.
func (s *PlanService) RemoveItem(ctx context.Context, actor domain.User, planID, itemID int64) (*PlanView, error) {
	if _, err := s.editable(ctx, actor, planID); err != nil {
		return nil, err
	}
	ok, err := s.plans.DeletePlanItem(ctx, planID, itemID)
	if err != nil {
		return nil, fmt.Errorf("remove plan item: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Get(ctx, actor, planID)
}

// Get returns a plan with its coverage of the client's targets. The client
// may read their own plans.
func (s *PlanService) Get(ctx context.Context, actor domain.User, planID int64) (*PlanView, error) {
	p, err := s.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p.ClientID != actor.ID {
		if err := s.authorize(ctx, actor, p.ClientID); err != nil {
			return nil, err
		}
	}
	targets, err := s.profiles.Targets(ctx, p.ClientID)
	if err != nil {
		return nil, err
	}
	return &PlanView{Plan: p, Coverage: domain.Summarize(p.Totals, targets)}, nil
}

// ListForClient returns the plans of clientID with their items, newest day
// first.
func (s *PlanService) ListForClient(ctx context.Context, actor domain.User, clientID int64) ([]domain.MealPlan, error) {
	if clientID != actor.ID {
		if err := s.authorize(ctx, actor, clientID); err != nil {
			return nil, err
		}
	}
	plans, err := s.plans.ListPlansForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if plans[i].Items == nil {
			plans[i].Items = []domain.PlanItem{}
		}
		plans[i].Recompute()
	}
	return plans, nil
}

func (s *PlanService) load(ctx context.Context, planID int64) (*domain.MealPlan, error) {
	p, err := s.plans.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Items == nil {
		p.Items = []domain.PlanItem{}
	}
	p.Recompute()
	return p, nil
}

func (s *PlanService) editable(ctx context.Context, actor domain.User, planID int64) (*domain.MealPlan, error) {
	p, err := s.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, p.ClientID); err != nil {
		return nil, err
	}
	return p, nil
}

// authorize allows admins and dietitians linked to clientID.
func (s *PlanService) authorize(ctx context.Context, actor domain.User, clientID int64) error {
	return authorizeClient(ctx, s.clients, actor, clientID)
}

func authorizeClient(ctx context.Context, clients domain.ClientRepository, actor domain.User, clientID int64) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleDietitian:
		ok, err := clients.IsClient(ctx, actor.ID, clientID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return domain.ErrForbidden
}
