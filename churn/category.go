package churn

import (
	"fmt"
	"strings"
)

// Each categorical field is a closed enumeration. The constant's ordinal is
// the integer code the model was trained with, and the name table doubles as
// the form's choice list, so encoding and UI cannot drift apart.

type Gender int

const (
	GenderFemale Gender = iota
	GenderMale
	GenderOther
)

var genderNames = []string{"Female", "Male", "Other"}

type Country int

const (
	CountryCA Country = iota
	CountryDE
	CountryAU
	CountryUS
	CountryUK
	CountryIN
	CountryFR
	CountryPK
)

var countryNames = []string{"CA", "DE", "AU", "US", "UK", "IN", "FR", "PK"}

type Subscription int

const (
	SubscriptionFree Subscription = iota
	SubscriptionFamily
	SubscriptionPremium
	SubscriptionStudent
)

var subscriptionNames = []string{"Free", "Family", "Premium", "Student"}

type Device int

const (
	DeviceDesktop Device = iota
	DeviceWeb
	DeviceMobile
)

var deviceNames = []string{"Desktop", "Web", "Mobile"}

func ParseGender(s string) (Gender, error) { return parseEnum[Gender](FieldGender, genderNames, s) }

func ParseCountry(s string) (Country, error) {
	return parseEnum[Country](FieldCountry, countryNames, s)
}

func ParseSubscription(s string) (Subscription, error) {
	return parseEnum[Subscription](FieldSubscription, subscriptionNames, s)
}

func ParseDevice(s string) (Device, error) { return parseEnum[Device](FieldDevice, deviceNames, s) }

func GenderChoices() []string       { return append([]string(nil), genderNames...) }
func CountryChoices() []string      { return append([]string(nil), countryNames...) }
func SubscriptionChoices() []string { return append([]string(nil), subscriptionNames...) }
func DeviceChoices() []string       { return append([]string(nil), deviceNames...) }

func (g Gender) Code() int       { return int(g) }
func (c Country) Code() int      { return int(c) }
func (s Subscription) Code() int { return int(s) }
func (d Device) Code() int       { return int(d) }

func (g Gender) String() string       { return enumName(genderNames, int(g)) }
func (c Country) String() string      { return enumName(countryNames, int(c)) }
func (s Subscription) String() string { return enumName(subscriptionNames, int(s)) }
func (d Device) String() string       { return enumName(deviceNames, int(d)) }

func (g Gender) Valid() bool       { return validOrdinal(genderNames, int(g)) }
func (c Country) Valid() bool      { return validOrdinal(countryNames, int(c)) }
func (s Subscription) Valid() bool { return validOrdinal(subscriptionNames, int(s)) }
func (d Device) Valid() bool       { return validOrdinal(deviceNames, int(d)) }

func (g Gender) MarshalText() ([]byte, error)       { return marshalEnum(FieldGender, g) }
func (c Country) MarshalText() ([]byte, error)      { return marshalEnum(FieldCountry, c) }
func (s Subscription) MarshalText() ([]byte, error) { return marshalEnum(FieldSubscription, s) }
func (d Device) MarshalText() ([]byte, error)       { return marshalEnum(FieldDevice, d) }

func (g *Gender) UnmarshalText(text []byte) (err error) {
	*g, err = ParseGender(string(text))
	return err
}

func (c *Country) UnmarshalText(text []byte) (err error) {
	*c, err = ParseCountry(string(text))
	return err
}

func (s *Subscription) UnmarshalText(text []byte) (err error) {
	*s, err = ParseSubscription(string(text))
	return err
}

func (d *Device) UnmarshalText(text []byte) (err error) {
	*d, err = ParseDevice(string(text))
	return err
}

func parseEnum[T ~int](field string, names []string, s string) (T, error) {
	for i, name := range names {
		if name == s {
			return T(i), nil
		}
	}
	return 0, &InputError{
		Field:  field,
		Reason: fmt.Sprintf("unknown value %q, expected one of %s", s, strings.Join(names, ", ")),
	}
}

func enumName(names []string, ordinal int) string {
	if !validOrdinal(names, ordinal) {
		return fmt.Sprintf("invalid(%d)", ordinal)
	}
	return names[ordinal]
}

func validOrdinal(names []string, ordinal int) bool {
	return ordinal >= 0 && ordinal < len(names)
}

type validEnum interface {
	fmt.Stringer
	Valid() bool
}

func marshalEnum(field string, v validEnum) ([]byte, error) {
	if !v.Valid() {
		return nil, &InputError{Field: field, Reason: v.String()}
	}
	return []byte(v.String()), nil
}
