package churn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnpredict/ml"
)

func TestEncodeLowerBoundary(t *testing.T) {
	in := Input{
		Age:              16,
		Gender:           GenderFemale,
		Country:          CountryCA,
		Subscription:     SubscriptionFree,
		Device:           DeviceDesktop,
		OfflineListening: 0,
		ListeningTime:    10,
		SongsPerDay:      1,
		SkipRate:         0.0,
		AdsPerWeek:       0,
	}
	require.NoError(t, in.Validate())

	want := ml.Row{
		ColumnAge:                     16,
		ColumnListeningTime:           10,
		ColumnSongsPlayedPerDay:       1,
		ColumnSkipRate:                0,
		ColumnAdsListenedPerWeek:      0,
		ColumnOfflineListening:        0,
		ColumnGenderEncoded:           0,
		ColumnCountryEncoded:          0,
		ColumnSubscriptionTypeEncoded: 0,
		ColumnDeviceTypeEncoded:       0,
		ColumnIsPremium:               0,
		ColumnHasAds:                  0,
	}
	if diff := cmp.Diff(want, Encode(in)); diff != "" {
		t.Fatalf("encoded row mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodePremiumWithAds(t *testing.T) {
	in := DefaultInput()
	in.Subscription = SubscriptionPremium
	in.AdsPerWeek = 49

	row := Encode(in)
	assert.Equal(t, 1.0, row[ColumnIsPremium])
	assert.Equal(t, 1.0, row[ColumnHasAds])
	assert.Equal(t, 2.0, row[ColumnSubscriptionTypeEncoded])
	assert.Equal(t, 49.0, row[ColumnAdsListenedPerWeek])
}

func TestIsPremiumOnlyForPremium(t *testing.T) {
	for _, name := range SubscriptionChoices() {
		sub, err := ParseSubscription(name)
		require.NoError(t, err)
		in := DefaultInput()
		in.Subscription = sub

		want := 0.0
		if name == "Premium" {
			want = 1
		}
		assert.Equal(t, want, Encode(in)[ColumnIsPremium], name)
	}
}

func TestHasAdsIffAdsPositive(t *testing.T) {
	for ads := AdsPerWeekRange.Min; ads <= AdsPerWeekRange.Max; ads++ {
		in := DefaultInput()
		in.AdsPerWeek = ads
		want := 0.0
		if ads > 0 {
			want = 1
		}
		assert.Equal(t, want, Encode(in)[ColumnHasAds], "ads=%d", ads)
	}
}

func TestEncodeCoversEveryColumn(t *testing.T) {
	row := Encode(DefaultInput())
	assert.Len(t, row, len(EncodedColumns()))
	for _, col := range EncodedColumns() {
		assert.Contains(t, row, col)
	}
}

// Every combination of enumerated inputs must align to exactly the schema.
func TestAlignedColumnsMatchSchemaForAllChoices(t *testing.T) {
	schema, err := ml.NewFeatureSchema(append(EncodedColumns(), "engagement_score"))
	require.NoError(t, err)
	want := schema.Columns()

	count := 0
	for g := range GenderChoices() {
		for c := range CountryChoices() {
			for s := range SubscriptionChoices() {
				for d := range DeviceChoices() {
					for offline := 0; offline <= 1; offline++ {
						in := DefaultInput()
						in.Gender, in.Country = Gender(g), Country(c)
						in.Subscription, in.Device = Subscription(s), Device(d)
						in.OfflineListening = offline
						require.NoError(t, in.Validate())

						aligned := schema.Align(Encode(in))
						if diff := cmp.Diff(want, aligned.Columns); diff != "" {
							t.Fatalf("columns mismatch for %+v (-want +got):\n%s", in, diff)
						}
						require.Len(t, aligned.Values, len(want))
						count++
					}
				}
			}
		}
	}
	assert.Equal(t, 3*8*4*3*2, count)
}

func TestEncodeIsDeterministic(t *testing.T) {
	in := DefaultInput()
	in.Country = CountryIN
	in.SkipRate = 0.42
	first := Encode(in)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Encode(in)); diff != "" {
			t.Fatalf("encoding changed on call %d:\n%s", i, diff)
		}
	}
}
