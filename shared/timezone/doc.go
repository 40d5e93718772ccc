// Package timezone keeps every date the application handles in one location.
//
// The location comes from APP_TIMEZONE (an IANA name such as "Asia/Kolkata")
// and defaults to UTC. Booking arithmetic is done on calendar days:
//
//	checkIn, _ := timezone.Parse(time.DateOnly, "2025-03-01")
//	checkOut, _ := timezone.Parse(time.DateOnly, "2025-03-04")
//	timezone.Nights(checkIn, checkOut) // 3
package timezone
