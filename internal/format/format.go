package format

import (
	"strings"
	"time"
)

// Date formats time in a locale-friendly short form.
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "es":
		return t.Format("2/1/2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Time formats the clock portion of t.
func Time(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "es":
		return t.Format("15:04")
	default:
		return t.Format("3:04 PM")
	}
}

// DateRange formats an interval, collapsing same-day ranges.
func DateRange(start, end time.Time, lang string) string {
	if start.IsZero() {
		return ""
	}
	if end.IsZero() || sameDay(start, end) {
		return Date(start, lang)
	}
	return Date(start, lang) + " – " + Date(end, lang)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
