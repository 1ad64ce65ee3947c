package churn

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CampaignThreshold is the churn probability above which a retention campaign
// is suggested. It is independent of the model's label, so a label of 0 can
// still come with a campaign suggestion.
const CampaignThreshold = 0.3

var retentionActions = []string{
	"Offer Premium discount",
	"Personalized playlist",
	"Offline listening promotion",
}

type Assessment struct {
	HighRisk        bool     `json:"high_risk"`
	Headline        string   `json:"headline"`
	Delta           string   `json:"delta"`
	Probability     float64  `json:"probability"`
	ProbabilityText string   `json:"probability_text"`
	Campaign        bool     `json:"campaign"`
	Recommendation  string   `json:"recommendation"`
	Actions         []string `json:"actions,omitempty"`
}

func Assess(pred *Prediction, tag language.Tag) Assessment {
	a := Assessment{
		HighRisk:        pred.Label == 1,
		Probability:     pred.Probability,
		ProbabilityText: FormatProbability(pred.Probability, tag),
	}
	if a.HighRisk {
		a.Headline, a.Delta = "HIGH Churn Risk", "High Risk"
	} else {
		a.Headline, a.Delta = "LOW Churn Risk", "Safe"
	}
	if pred.Probability > CampaignThreshold {
		a.Campaign = true
		a.Recommendation = "Target for retention campaign"
		a.Actions = append([]string(nil), retentionActions...)
	} else {
		a.Recommendation = "Monitor engagement"
	}
	return a
}

// FormatProbability renders p as a percentage with one decimal in the
// conventions of tag.
func FormatProbability(p float64, tag language.Tag) string {
	return message.NewPrinter(tag).Sprint(number.Percent(p, number.Scale(1)))
}
