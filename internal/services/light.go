package services

import (
	"time"

	"github.com/ddk220-light/drive-conditions/internal/domain"
)

// TwilightWindow is how close to sunrise/sunset an arrival counts as
// twilight. The boundary is inclusive: exactly 30 minutes out is twilight.
const TwilightWindow = 30 * time.Minute

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// ClassifyLightLevel buckets an arrival time into day/twilight/night for its
// location. Missing sun data defaults to day.
func ClassifyLightLevel(at time.Time, sunrise, sunset *time.Time) domain.LightLevel {
	if sunrise == nil || sunset == nil {
		return domain.LightDay
	}

	if absDuration(at.Sub(*sunrise)) <= TwilightWindow || absDuration(at.Sub(*sunset)) <= TwilightWindow {
		return domain.LightTwilight
	}
	if at.After(sunrise.Add(TwilightWindow)) && at.Before(sunset.Add(-TwilightWindow)) {
		return domain.LightDay
	}
	return domain.LightNight
}

// SunTimesFor picks the sunrise/sunset pair for the arrival's calendar day,
// falling back to the series' first day. Nil when the source supplied none.
func SunTimesFor(days []domain.SunDay, at time.Time) (sunrise, sunset *time.Time) {
	if len(days) == 0 {
		return nil, nil
	}

	date := at.Format("2006-01-02")
	for i := range days {
		if days[i].Date == date {
			return &days[i].Sunrise, &days[i].Sunset
		}
	}
	return &days[0].Sunrise, &days[0].Sunset
}
