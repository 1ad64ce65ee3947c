package churn

import "churnpredict/ml"

// Encoded feature row columns.
const (
	ColumnAge                     = "age"
	ColumnListeningTime           = "listening_time"
	ColumnSongsPlayedPerDay       = "songs_played_per_day"
	ColumnSkipRate                = "skip_rate"
	ColumnAdsListenedPerWeek      = "ads_listened_per_week"
	ColumnOfflineListening        = "offline_listening"
	ColumnGenderEncoded           = "gender_encoded"
	ColumnCountryEncoded          = "country_encoded"
	ColumnSubscriptionTypeEncoded = "subscription_type_encoded"
	ColumnDeviceTypeEncoded       = "device_type_encoded"
	ColumnIsPremium               = "is_premium"
	ColumnHasAds                  = "has_ads"
)

// EncodedColumns is every column Encode produces, in training-export order.
func EncodedColumns() []string {
	return []string{
		ColumnAge,
		ColumnListeningTime,
		ColumnSongsPlayedPerDay,
		ColumnSkipRate,
		ColumnAdsListenedPerWeek,
		ColumnOfflineListening,
		ColumnGenderEncoded,
		ColumnCountryEncoded,
		ColumnSubscriptionTypeEncoded,
		ColumnDeviceTypeEncoded,
		ColumnIsPremium,
		ColumnHasAds,
	}
}

// Encode maps validated raw input to numeric features. Categories use their
// lookup codes; is_premium and has_ads are derived from subscription and ads.
func Encode(in Input) ml.Row {
	return ml.Row{
		ColumnAge:                     float64(in.Age),
		ColumnListeningTime:           float64(in.ListeningTime),
		ColumnSongsPlayedPerDay:       float64(in.SongsPerDay),
		ColumnSkipRate:                in.SkipRate,
		ColumnAdsListenedPerWeek:      float64(in.AdsPerWeek),
		ColumnOfflineListening:        float64(in.OfflineListening),
		ColumnGenderEncoded:           float64(in.Gender.Code()),
		ColumnCountryEncoded:          float64(in.Country.Code()),
		ColumnSubscriptionTypeEncoded: float64(in.Subscription.Code()),
		ColumnDeviceTypeEncoded:       float64(in.Device.Code()),
		ColumnIsPremium:               indicator(in.Subscription == SubscriptionPremium),
		ColumnHasAds:                  indicator(in.AdsPerWeek > 0),
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
