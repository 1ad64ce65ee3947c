package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"churnpredict/churn"
)

// scoreFlags maps command line flags to form fields.
var scoreFlags = map[string]string{
	"age":               churn.FieldAge,
	"gender":            churn.FieldGender,
	"country":           churn.FieldCountry,
	"subscription":      churn.FieldSubscription,
	"device":            churn.FieldDevice,
	"offline-listening": churn.FieldOfflineListening,
	"listening-time":    churn.FieldListeningTime,
	"songs-per-day":     churn.FieldSongsPerDay,
	"skip-rate":         churn.FieldSkipRate,
	"ads-per-week":      churn.FieldAdsPerWeek,
}

func (a *app) newScoreCmd() *cobra.Command {
	var asJSON bool
	defaults := churn.DefaultInput()
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one user from flags and print the assessment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if field, ok := scoreFlags[f.Name]; ok {
					values.Set(field, f.Value.String())
				}
			})
			in, err := churn.ParseValues(values)
			if err != nil {
				return err
			}
			predictor, err := a.loadPredictor()
			if err != nil {
				return err
			}
			pred, err := predictor.Predict(in)
			if err != nil {
				return err
			}
			assessment := churn.Assess(pred, a.cfg.UI.Language())
			if asJSON {
				return writeScoreJSON(cmd.OutOrStdout(), pred, assessment)
			}
			writeAssessment(cmd.OutOrStdout(), assessment)
			return nil
		},
	}

	f := cmd.Flags()
	f.Int("age", defaults.Age, rangeUsage("age", churn.AgeRange))
	f.String("gender", defaults.Gender.String(), choiceUsage("gender", churn.GenderChoices()))
	f.String("country", defaults.Country.String(), choiceUsage("country", churn.CountryChoices()))
	f.String("subscription", defaults.Subscription.String(), choiceUsage("subscription type", churn.SubscriptionChoices()))
	f.String("device", defaults.Device.String(), choiceUsage("device type", churn.DeviceChoices()))
	f.Int("offline-listening", defaults.OfflineListening, rangeUsage("offline listening flag", churn.OfflineListeningRange))
	f.Int("listening-time", defaults.ListeningTime, rangeUsage("listening time in minutes", churn.ListeningTimeRange))
	f.Int("songs-per-day", defaults.SongsPerDay, rangeUsage("songs played per day", churn.SongsPerDayRange))
	f.Float64("skip-rate", defaults.SkipRate, fmt.Sprintf("skip rate [%g, %g]", churn.SkipRateRange.Min, churn.SkipRateRange.Max))
	f.Int("ads-per-week", defaults.AdsPerWeek, rangeUsage("ads listened per week", churn.AdsPerWeekRange))
	f.BoolVar(&asJSON, "json", false, "print the prediction as JSON")
	return cmd
}

func rangeUsage(name string, r churn.IntRange) string {
	return fmt.Sprintf("%s [%d, %d]", name, r.Min, r.Max)
}

func choiceUsage(name string, choices []string) string {
	return fmt.Sprintf("%s (%s)", name, strings.Join(choices, ", "))
}

func writeAssessment(w io.Writer, a churn.Assessment) {
	fmt.Fprintln(w, a.Headline)
	fmt.Fprintf(w, "Churn Probability: %s (%s)\n", a.ProbabilityText, a.Delta)
	fmt.Fprintf(w, "Recommendation: %s\n", a.Recommendation)
	for _, action := range a.Actions {
		fmt.Fprintf(w, "  - %s\n", action)
	}
}

func writeScoreJSON(w io.Writer, pred *churn.Prediction, a churn.Assessment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*churn.Prediction
		Assessment churn.Assessment `json:"assessment"`
	}{pred, a})
}
