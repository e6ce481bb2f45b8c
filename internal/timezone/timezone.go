package timezone

import "time"

const DefaultTimezone = "Asia/Seoul"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to Seoul and then to a fixed +09:00
// zone when the host has no tzdata.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*60*60)
}

// Clock lets use cases take "now" as a dependency.
type Clock func() time.Time

func SystemClock() Clock {
	return time.Now
}
