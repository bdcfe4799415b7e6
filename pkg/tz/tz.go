package tz

import "time"

// Lima is the America/Lima location (PET, no DST). The venue clock.
var Lima *time.Location

func init() {
	var err error
	Lima, err = time.LoadLocation("America/Lima")
	if err != nil {
		// Containers without tzdata: Peru has no DST, a fixed zone is exact.
		Lima = time.FixedZone("PET", -5*60*60)
	}
}

// Stamp formats t in venue time as used in attendance notifications.
func Stamp(t time.Time) string {
	return t.In(Lima).Format("02/01/2006 15:04")
}
