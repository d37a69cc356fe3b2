package main

import (
	"fmt"
	"log/slog"

	"dietlog/internal/app"
	"dietlog/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newTargetsCmd() *cobra.Command {
	var (
		weight, height string
		in             app.ProfileInput
		sex, activity  string
		goal           string
	)
	cmd := &cobra.Command{
		Use:     "targets",
		Short:   "Compute daily nutrition targets from a body profile",
		Example: "  dietlog targets --weight 80 --height 180 --age 30 --sex male --activity medium --goal maintenance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.WeightKg, err = decimal.NewFromString(weight); err != nil {
				return fmt.Errorf("invalid --weight %q", weight)
			}
			if in.HeightCm, err = decimal.NewFromString(height); err != nil {
				return fmt.Errorf("invalid --height %q", height)
			}
			in.Sex = domain.Sex(sex)
			in.Activity = domain.ActivityLevel(activity)
			in.Goal = domain.Goal(goal)

			t, err := app.NewProfileService(nil, slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))).Preview(in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Calories: %s kcal\n", t.Calories.StringFixedBank(2))
			fmt.Fprintf(out, "Protein:  %s g\n", t.Protein.StringFixedBank(2))
			fmt.Fprintf(out, "Fat:      %s g\n", t.Fat.StringFixedBank(2))
			fmt.Fprintf(out, "Carbs:    %s g\n", t.Carbs.StringFixedBank(2))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&weight, "weight", "", "body weight in kg")
	f.StringVar(&height, "height", "", "height in cm")
	f.IntVar(&in.Age, "age", 0, "age in years")
	f.StringVar(&sex, "sex", "male", "male or female")
	f.StringVar(&activity, "activity", "low", "low, medium or high")
	f.StringVar(&goal, "goal", "maintenance", "weight_loss, muscle_gain or maintenance")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}
