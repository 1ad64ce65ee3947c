package churn

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
)

// Raw form field names.
const (
	FieldAge              = "age"
	FieldGender           = "gender"
	FieldCountry          = "country"
	FieldSubscription     = "subscription"
	FieldDevice           = "device"
	FieldOfflineListening = "offline_listening"
	FieldListeningTime    = "listening_time"
	FieldSongsPerDay      = "songs_per_day"
	FieldSkipRate         = "skip_rate"
	FieldAdsPerWeek       = "ads_per_week"
)

// Input is one user's raw form values.
type Input struct {
	Age              int          `json:"age"`
	Gender           Gender       `json:"gender"`
	Country          Country      `json:"country"`
	Subscription     Subscription `json:"subscription"`
	Device           Device       `json:"device"`
	OfflineListening int          `json:"offline_listening"`
	ListeningTime    int          `json:"listening_time"`
	SongsPerDay      int          `json:"songs_per_day"`
	SkipRate         float64      `json:"skip_rate"`
	AdsPerWeek       int          `json:"ads_per_week"`
}

type IntRange struct {
	Min, Max, Default int
}

type FloatRange struct {
	Min, Max, Default, Step float64
}

var (
	AgeRange              = IntRange{Min: 16, Max: 59, Default: 38}
	OfflineListeningRange = IntRange{Min: 0, Max: 1, Default: 0}
	ListeningTimeRange    = IntRange{Min: 10, Max: 299, Default: 154}
	SongsPerDayRange      = IntRange{Min: 1, Max: 99, Default: 50}
	AdsPerWeekRange       = IntRange{Min: 0, Max: 49, Default: 7}
	SkipRateRange         = FloatRange{Min: 0, Max: 0.6, Default: 0.3, Step: 0.01}
)

func (r IntRange) check(field string, v int) error {
	if v < r.Min || v > r.Max {
		return &InputError{Field: field, Reason: fmt.Sprintf("%d outside [%d, %d]", v, r.Min, r.Max)}
	}
	return nil
}

func (r FloatRange) check(field string, v float64) error {
	if math.IsNaN(v) || v < r.Min || v > r.Max {
		return &InputError{Field: field, Reason: fmt.Sprintf("%g outside [%g, %g]", v, r.Min, r.Max)}
	}
	return nil
}

// DefaultInput returns the values the form shows before the user touches it.
// Choice fields default to their first option.
func DefaultInput() Input {
	return Input{
		Age:              AgeRange.Default,
		Gender:           GenderFemale,
		Country:          CountryCA,
		Subscription:     SubscriptionFree,
		Device:           DeviceDesktop,
		OfflineListening: OfflineListeningRange.Default,
		ListeningTime:    ListeningTimeRange.Default,
		SongsPerDay:      SongsPerDayRange.Default,
		SkipRate:         SkipRateRange.Default,
		AdsPerWeek:       AdsPerWeekRange.Default,
	}
}

func (in Input) Validate() error {
	checks := []error{
		AgeRange.check(FieldAge, in.Age),
		enumCheck(FieldGender, in.Gender),
		enumCheck(FieldCountry, in.Country),
		enumCheck(FieldSubscription, in.Subscription),
		enumCheck(FieldDevice, in.Device),
		OfflineListeningRange.check(FieldOfflineListening, in.OfflineListening),
		ListeningTimeRange.check(FieldListeningTime, in.ListeningTime),
		SongsPerDayRange.check(FieldSongsPerDay, in.SongsPerDay),
		SkipRateRange.check(FieldSkipRate, in.SkipRate),
		AdsPerWeekRange.check(FieldAdsPerWeek, in.AdsPerWeek),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func enumCheck(field string, v validEnum) error {
	if !v.Valid() {
		return &InputError{Field: field, Reason: v.String()}
	}
	return nil
}

// Set parses one raw form value into the matching field.
func (in *Input) Set(field, raw string) error {
	var err error
	switch field {
	case FieldAge:
		in.Age, err = parseInt(field, raw)
	case FieldGender:
		in.Gender, err = ParseGender(raw)
	case FieldCountry:
		in.Country, err = ParseCountry(raw)
	case FieldSubscription:
		in.Subscription, err = ParseSubscription(raw)
	case FieldDevice:
		in.Device, err = ParseDevice(raw)
	case FieldOfflineListening:
		in.OfflineListening, err = parseInt(field, raw)
	case FieldListeningTime:
		in.ListeningTime, err = parseInt(field, raw)
	case FieldSongsPerDay:
		in.SongsPerDay, err = parseInt(field, raw)
	case FieldSkipRate:
		in.SkipRate, err = parseFloat(field, raw)
	case FieldAdsPerWeek:
		in.AdsPerWeek, err = parseInt(field, raw)
	default:
		err = &InputError{Field: field, Reason: "unknown field"}
	}
	return err
}

// ParseValues builds an Input from form values. Fields the form did not send
// keep their defaults; unknown keys are ignored.
func ParseValues(values url.Values) (Input, error) {
	in := DefaultInput()
	for _, field := range fieldOrder {
		if !values.Has(field) {
			continue
		}
		if err := in.Set(field, values.Get(field)); err != nil {
			return Input{}, err
		}
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// DecodeInput reads a JSON object of raw fields. Absent fields keep their
// defaults; unknown fields are rejected.
func DecodeInput(r io.Reader) (Input, error) {
	in := DefaultInput()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return Input{}, jsonInputError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Input{}, &InputError{Field: "body", Reason: "unexpected data after JSON object", Err: err}
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

func jsonInputError(err error) error {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &InputError{Field: typeErr.Field, Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)}
	}
	return &InputError{Field: "body", Reason: err.Error(), Err: err}
}

func parseInt(field, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &InputError{Field: field, Reason: fmt.Sprintf("%q is not an integer", raw)}
	}
	return v, nil
}

func parseFloat(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &InputError{Field: field, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	return v, nil
}

var fieldOrder = []string{
	FieldAge,
	FieldGender,
	FieldCountry,
	FieldSubscription,
	FieldDevice,
	FieldOfflineListening,
	FieldListeningTime,
	FieldSongsPerDay,
	FieldSkipRate,
	FieldAdsPerWeek,
}
