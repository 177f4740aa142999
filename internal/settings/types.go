// Package settings loads the site-wide configuration bundle from the
// remote store: one aggregate query, a soft-TTL cache with request
// deduplication, and narrowed views consumed by the page handlers and
// the script injection layer.
package settings

// SEOSettings carries the home-page document metadata. Every other
// page supplies its own metadata through the seo package and must not
// be overwritten by these values.
type SEOSettings struct {
	MetaTitle          string `json:"meta_title"`
	MetaDescription    string `json:"meta_description"`
	MetaKeywords       string `json:"meta_keywords"`
	OGTitle            string `json:"og_title"`
	OGDescription      string `json:"og_description"`
	OGImage            string `json:"og_image"`
	OGType             string `json:"og_type"`
	TwitterCard        string `json:"twitter_card"`
	TwitterSite        string `json:"twitter_site"`
	TwitterImage       string `json:"twitter_image"`
	CanonicalURL       string `json:"canonical_url"`
	Robots             string `json:"robots"`
	GoogleVerification string `json:"google_site_verification"`
	BingVerification   string `json:"bing_site_verification"`
}

// AnalyticsSettings maps each supported provider to its identifier.
// An empty string disables that provider.
type AnalyticsSettings struct {
	GA4MeasurementID string `json:"ga4_measurement_id"`
	GTMContainerID   string `json:"gtm_container_id"`
	FacebookPixelID  string `json:"facebook_pixel_id"`
	GoogleAdsID      string `json:"google_ads_id"`
	HotjarSiteID     string `json:"hotjar_site_id"`
}

// GeneralSettings holds branding and locale defaults.
type GeneralSettings struct {
	SiteName        string `json:"site_name"`
	Tagline         string `json:"tagline"`
	SiteDescription string `json:"site_description"`
	LogoLightURL    string `json:"logo_light_url"`
	LogoDarkURL     string `json:"logo_dark_url"`
	FaviconURL      string `json:"favicon_url"`
	DefaultLanguage string `json:"default_language"`
	Timezone        string `json:"timezone"`
}

// ContactSettings holds the mall's public contact channels.
type ContactSettings struct {
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	WhatsApp  string  `json:"whatsapp"`
	MapEmbed  string  `json:"map_embed"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SocialSettings holds one profile URL per platform.
type SocialSettings struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	YouTube   string `json:"youtube"`
	TikTok    string `json:"tiktok"`
	LinkedIn  string `json:"linkedin"`
}

// Point names a document location where a custom script is placed.
type Point string

const (
	HeadStart Point = "head_start"
	HeadEnd   Point = "head_end"
	BodyStart Point = "body_start"
	BodyEnd   Point = "body_end"
)

// Kind tags the payload of a custom script row.
type Kind string

const (
	KindMetaTag    Kind = "meta_tag"
	KindScript     Kind = "script"
	KindLink       Kind = "link"
	KindJSONLD     Kind = "json_ld"
	KindCustomHTML Kind = "custom_html"
)

// CustomScript is one externally authored fragment destined for a
// fixed injection point. The payload is opaque: the loader never
// executes or validates it.
type CustomScript struct {
	ID        string
	Key       string
	Label     string
	Payload   string
	Kind      Kind
	Point     Point
	SortOrder int
}

// Scripts holds the four ordered injection sequences.
type Scripts struct {
	HeadStart []CustomScript
	HeadEnd   []CustomScript
	BodyStart []CustomScript
	BodyEnd   []CustomScript
}

// ForPoint returns the sequence for a point, nil for unknown points.
func (s Scripts) ForPoint(p Point) []CustomScript {
	switch p {
	case HeadStart:
		return s.HeadStart
	case HeadEnd:
		return s.HeadEnd
	case BodyStart:
		return s.BodyStart
	case BodyEnd:
		return s.BodyEnd
	}
	return nil
}

// Bundle is the aggregate result of one load cycle. It is created
// fresh on load and replaced wholesale, never mutated field by field.
type Bundle struct {
	SEO       SEOSettings
	Analytics AnalyticsSettings
	General   GeneralSettings
	Contact   ContactSettings
	Social    SocialSettings
	Scripts   Scripts
}

// Defaults returns the bundle served when the store is unreachable or
// a group's stored value is unusable.
func Defaults() Bundle {
	return Bundle{
		SEO: SEOSettings{
			MetaTitle:       "Meridian Mall – Shopping, Dining & Entertainment",
			MetaDescription: "Discover over 120 shops, restaurants, events and a nine-screen cinema at Meridian Mall.",
			OGType:          "website",
			TwitterCard:     "summary_large_image",
			Robots:          "index, follow",
		},
		General: GeneralSettings{
			SiteName:        "Meridian Mall",
			Tagline:         "Where the city comes together",
			SiteDescription: "Shopping, dining and entertainment under one roof.",
			FaviconURL:      "/assets/img/favicon.svg",
			DefaultLanguage: "en",
			Timezone:        "America/New_York",
		},
		Contact: ContactSettings{
			Address: "400 Meridian Way, Lansing, MI 48912",
			Phone:   "+1 (517) 555-0140",
			Email:   "hello@meridianmall.com",
		},
	}
}
