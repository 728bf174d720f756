// Package timezone keeps every timestamp the API reads or writes in one
// location, normally Africa/Casablanca for the Taghazout catalog.
//
// Booking dates arrive either as bare calendar days ("2025-04-12") or as
// RFC 3339 timestamps; ParseDate accepts both and anchors bare days at
// midnight in the configured location so night counts do not drift across
// DST changes. Responses go back out through Format, which renders zero
// times as an empty string.
//
// The location comes from APP_TIMEZONE and is loaded once at import time.
// Tests that need a fixed zone call Load directly.
package timezone
