package postgres

import (
	"context"

	"dietlog/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// GetProfile returns the profile of userID.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	var p domain.Profile
	ok, err := d.scanOne(ctx,
		d.sb.Select("user_id", "weight_kg", "height_cm", "age", "sex", "activity", "goal",
			"target_calories", "target_protein", "target_fat", "target_carbs", "updated_at").
			From("profiles").Where(sq.Eq{"user_id": userID}),
		&p.UserID, &p.WeightKg, &p.HeightCm, &p.Age, &p.Sex, &p.Activity, &p.Goal,
		&p.Targets.Calories, &p.Targets.Protein, &p.Targets.Fat, &p.Targets.Carbs, &p.UpdatedAt,
	)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// SaveProfile inserts or replaces a profile.
func (d *DB) SaveProfile(ctx context.Context, p domain.Profile) error {
	_, err := d.exec(ctx, d.sb.Insert("profiles").
		Columns("user_id", "weight_kg", "height_cm", "age", "sex", "activity", "goal",
			"target_calories", "target_protein", "target_fat", "target_carbs", "updated_at").
		Values(p.UserID, p.WeightKg, p.HeightCm, p.Age, string(p.Sex), string(p.Activity), string(p.Goal),
			p.Targets.Calories, p.Targets.Protein, p.Targets.Fat, p.Targets.Carbs, p.UpdatedAt.UTC()).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			weight_kg = EXCLUDED.weight_kg,
			height_cm = EXCLUDED.height_cm,
			age = EXCLUDED.age,
			sex = EXCLUDED.sex,
			activity = EXCLUDED.activity,
			goal = EXCLUDED.goal,
			target_calories = EXCLUDED.target_calories,
			target_protein = EXCLUDED.target_protein,
			target_fat = EXCLUDED.target_fat,
			target_carbs = EXCLUDED.target_carbs,
			updated_at = EXCLUDED.updated_at`))
	return err
}
