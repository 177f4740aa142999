package directory

var fallbackTenants = []Tenant{
	{
		Slug:     "atlas-books",
		Name:     "Atlas Books",
		Category: "Books & Stationery",
		Floor:    "1",
		Unit:     "112",
		Summary:  "Independent bookshop with a dedicated local-authors wall.",
		Description: "Atlas Books stocks new releases, classics and a curated " +
			"selection of regional writing, plus stationery and reading club events " +
			"every second Thursday.",
		Phone:    "+1 (517) 555-0182",
		Hours:    "Mon–Sat 10:00–21:00, Sun 11:00–19:00",
		Featured: true,
	},
	{
		Slug:     "brightside-toys",
		Name:     "Brightside Toys",
		Category: "Kids & Toys",
		Floor:    "2",
		Unit:     "214",
		Summary:  "Toys, games and crafts for every age.",
		Hours:    "Daily 10:00–21:00",
	},
	{
		Slug:     "cedar-and-salt",
		Name:     "Cedar & Salt",
		Category: "Dining",
		Floor:    "3",
		Unit:     "301",
		Summary:  "Wood-fired kitchen with a seasonal menu.",
		Description: "Cedar & Salt serves lunch and dinner built around a " +
			"wood-fired oven, with a rotating seasonal menu and a full bar.",
		Phone:    "+1 (517) 555-0114",
		Hours:    "Daily 11:00–23:00",
		Website:  "https://cedarandsalt.example.com",
		Featured: true,
	},
	{
		Slug:     "meridian-optics",
		Name:     "Meridian Optics",
		Category: "Health & Beauty",
		Floor:    "1",
		Unit:     "127",
		Summary:  "Eyewear and same-day lens service.",
		Hours:    "Mon–Sat 10:00–20:00",
	},
	{
		Slug:     "northloop-outfitters",
		Name:     "Northloop Outfitters",
		Category: "Fashion",
		Floor:    "2",
		Unit:     "240",
		Summary:  "Outdoor apparel and footwear.",
		Hours:    "Daily 10:00–21:00",
		Featured: true,
	},
	{
		Slug:     "verde-juice-bar",
		Name:     "Verde Juice Bar",
		Category: "Dining",
		Floor:    "1",
		Unit:     "104",
		Summary:  "Cold-pressed juices and smoothie bowls.",
		Hours:    "Daily 09:00–20:00",
	},
}
