package model

import "time"

// DateToMS truncates t to UTC midnight and returns milliseconds since epoch.
// Delivery dates and schedule dates are always compared in this form.
func DateToMS(t time.Time) int64 {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
}

// TruncateMS snaps an epoch-ms value to UTC midnight of its day.
func TruncateMS(ms int64) int64 {
	return DateToMS(time.UnixMilli(ms))
}

// DateLabel renders an epoch-ms date the way it appears on payment line items,
// e.g. "Mon, 02 Jan".
func DateLabel(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("Mon, 02 Jan")
}
