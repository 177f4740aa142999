package cinema

import "time"

func fallbackProgramme(now time.Time) []Movie {
	day := now.Truncate(24 * time.Hour)
	slot := func(days int, hour, min int) time.Time {
		return day.AddDate(0, 0, days).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}
	return []Movie{
		{
			Slug:           "harbor-lights",
			Title:          "Harbor Lights",
			Rating:         "PG",
			RuntimeMinutes: 104,
			Synopsis:       "A lighthouse keeper's daughter uncovers a village secret the summer the ships stop coming.",
			Showtimes: []Showtime{
				{Screen: "3", StartsAt: slot(1, 14, 0), Format: "2D"},
				{Screen: "3", StartsAt: slot(1, 19, 30), Format: "2D"},
				{Screen: "3", StartsAt: slot(2, 19, 30), Format: "2D"},
			},
		},
		{
			Slug:           "orbit-decay",
			Title:          "Orbit Decay",
			Rating:         "PG-13",
			RuntimeMinutes: 131,
			Synopsis:       "A salvage crew races a collapsing station's orbit to bring its last researcher home.",
			Showtimes: []Showtime{
				{Screen: "1", StartsAt: slot(1, 17, 0), Format: "IMAX"},
				{Screen: "1", StartsAt: slot(1, 21, 0), Format: "IMAX"},
				{Screen: "2", StartsAt: slot(2, 20, 15), Format: "3D"},
			},
		},
		{
			Slug:           "the-long-table",
			Title:          "The Long Table",
			Rating:         "G",
			RuntimeMinutes: 96,
			Synopsis:       "Three generations of a restaurant family cook their way through one unforgettable weekend.",
			Showtimes: []Showtime{
				{Screen: "5", StartsAt: slot(1, 11, 30), Format: "2D"},
				{Screen: "5", StartsAt: slot(2, 11, 30), Format: "2D"},
			},
		},
	}
}
