package churn

import "strconv"

type ControlKind string

const (
	KindSlider ControlKind = "slider"
	KindSelect ControlKind = "select"
)

// Control describes one form widget. Ranges and choice lists come from the
// same tables Validate and the encoders use.
type Control struct {
	Name    string      `json:"name"`
	Label   string      `json:"label"`
	Kind    ControlKind `json:"kind"`
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Step    float64     `json:"step"`
	Default string      `json:"default"`
	Choices []string    `json:"choices,omitempty"`
	Value   string      `json:"value"`
}

// Controls lists the form widgets in display order, with Value taken from in.
func Controls(in Input) []Control {
	defaults := DefaultInput()
	return []Control{
		intSlider(FieldAge, "Age", AgeRange, in.Age),
		selectControl(FieldGender, "Gender", genderNames, defaults.Gender.String(), in.Gender.String()),
		selectControl(FieldCountry, "Country", countryNames, defaults.Country.String(), in.Country.String()),
		selectControl(FieldSubscription, "Subscription", subscriptionNames, defaults.Subscription.String(), in.Subscription.String()),
		selectControl(FieldDevice, "Device", deviceNames, defaults.Device.String(), in.Device.String()),
		selectControl(FieldOfflineListening, "Offline Listening", []string{"0", "1"},
			strconv.Itoa(OfflineListeningRange.Default), strconv.Itoa(in.OfflineListening)),
		intSlider(FieldListeningTime, "Listening Time (min)", ListeningTimeRange, in.ListeningTime),
		intSlider(FieldSongsPerDay, "Songs Played/Day", SongsPerDayRange, in.SongsPerDay),
		{
			Name:    FieldSkipRate,
			Label:   "Skip Rate",
			Kind:    KindSlider,
			Min:     SkipRateRange.Min,
			Max:     SkipRateRange.Max,
			Step:    SkipRateRange.Step,
			Default: formatFloat(SkipRateRange.Default),
			Value:   formatFloat(in.SkipRate),
		},
		intSlider(FieldAdsPerWeek, "Ads Listened/Week", AdsPerWeekRange, in.AdsPerWeek),
	}
}

func intSlider(name, label string, r IntRange, value int) Control {
	return Control{
		Name:    name,
		Label:   label,
		Kind:    KindSlider,
		Min:     float64(r.Min),
		Max:     float64(r.Max),
		Step:    1,
		Default: strconv.Itoa(r.Default),
		Value:   strconv.Itoa(value),
	}
}

func selectControl(name, label string, choices []string, def, value string) Control {
	return Control{
		Name:    name,
		Label:   label,
		Kind:    KindSelect,
		Default: def,
		Choices: append([]string(nil), choices...),
		Value:   value,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
