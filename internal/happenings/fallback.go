package happenings

import "time"

// Fallback listings are anchored to the current time so the site
// always shows something upcoming, even with the store offline.

func fallbackEvents(now time.Time) []Event {
	day := now.Truncate(24 * time.Hour)
	return []Event{
		{
			Slug:    "makers-market",
			Title:   "Makers Market Weekend",
			Summary: "Forty local makers fill the central atrium with ceramics, prints and small-batch foods.",
			Body: "<p>Our quarterly makers market returns with forty stalls across the " +
				"central atrium and east wing. Expect ceramics, textiles, prints and " +
				"small-batch foods, plus live demonstrations every afternoon.</p>",
			Venue:    "Central Atrium",
			StartsAt: day.AddDate(0, 0, 5).Add(10 * time.Hour),
			EndsAt:   day.AddDate(0, 0, 7).Add(18 * time.Hour),
		},
		{
			Slug:    "family-movie-morning",
			Title:   "Family Movie Morning",
			Summary: "Free family screening at Meridian Cinemas, doors at 9:30.",
			Body: "<p>Join us for a free family screening at Meridian Cinemas. Doors " +
				"open at 9:30 with activities in the lobby; the film starts at 10:00. " +
				"Seats are first come, first served.</p>",
			Venue:    "Meridian Cinemas, Screen 1",
			StartsAt: day.AddDate(0, 0, 12).Add(9*time.Hour + 30*time.Minute),
			EndsAt:   day.AddDate(0, 0, 12).Add(12 * time.Hour),
		},
		{
			Slug:    "late-night-shopping",
			Title:   "Late Night Shopping",
			Summary: "Extended hours until midnight with live music in the food hall.",
			Body: "<p>Shops stay open until midnight with live acoustic sets in the " +
				"food hall from 19:00 and tasting counters throughout the dining level.</p>",
			Venue:    "Mall-wide",
			StartsAt: day.AddDate(0, 0, 20).Add(18 * time.Hour),
			EndsAt:   day.AddDate(0, 0, 20).Add(24 * time.Hour),
		},
	}
}

func fallbackPromotions(now time.Time) []Promotion {
	day := now.Truncate(24 * time.Hour)
	return []Promotion{
		{
			Slug:       "back-to-school-books",
			Title:      "20% off school reading lists",
			Summary:    "Atlas Books takes 20% off every title on local school reading lists.",
			TenantSlug: "atlas-books",
			ValidFrom:  day.AddDate(0, 0, -7),
			ValidUntil: day.AddDate(0, 0, 21),
		},
		{
			Slug:       "lunch-club",
			Title:      "Weekday lunch club",
			Summary:    "Cedar & Salt: two-course weekday lunch for $18 before 14:00.",
			TenantSlug: "cedar-and-salt",
			ValidFrom:  day.AddDate(0, 0, -30),
			ValidUntil: day.AddDate(0, 0, 60),
		},
		{
			Slug:       "trail-ready",
			Title:      "Trail-ready bundle",
			Summary:    "Northloop Outfitters bundles boots and a daypack for 15% off.",
			TenantSlug: "northloop-outfitters",
			ValidFrom:  day.AddDate(0, 0, -3),
			ValidUntil: day.AddDate(0, 0, 14),
		},
	}
}
