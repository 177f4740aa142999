package settings

import (
	"encoding/json"
	"strings"
)

// Row is the wire shape of one record in the site_settings table.
// Rows arrive pre-sorted by sort_order from the query.
type Row struct {
	ID             string  `json:"id"`
	Key            string  `json:"key"`
	Value          *string `json:"value"`
	SettingType    string  `json:"setting_type"`
	InjectionPoint string  `json:"injection_point"`
	DisplayName    string  `json:"display_name"`
	SortOrder      int     `json:"sort_order"`
}

// Reserved keys carrying a JSON-encoded group object in Value.
const (
	keySEO       = "settings_seo"
	keyAnalytics = "settings_analytics"
	keyGeneral   = "settings_general"
	keyContact   = "settings_contact"
	keySocial    = "settings_social"
)

// Parse routes rows into a fully-defaulted Bundle. It is total: a
// malformed group value leaves that group at its default, a row that
// is neither a reserved group nor a complete custom script is dropped.
func Parse(rows []Row) Bundle {
	b := Defaults()
	for _, row := range rows {
		value := ""
		if row.Value != nil {
			value = *row.Value
		}
		switch row.Key {
		case keySEO:
			mergeGroup(&b.SEO, value)
		case keyAnalytics:
			mergeGroup(&b.Analytics, value)
		case keyGeneral:
			mergeGroup(&b.General, value)
		case keyContact:
			mergeGroup(&b.Contact, value)
		case keySocial:
			mergeGroup(&b.Social, value)
		default:
			if script, ok := customScript(row, value); ok {
				appendScript(&b.Scripts, script)
			}
		}
	}
	return b
}

// mergeGroup overlays stored JSON on top of the group default. Fields
// absent from the JSON keep their defaults; invalid JSON leaves the
// whole group untouched.
func mergeGroup[T any](group *T, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	merged := *group
	if err := json.Unmarshal([]byte(value), &merged); err != nil {
		return
	}
	*group = merged
}

func customScript(row Row, value string) (CustomScript, bool) {
	point := Point(strings.TrimSpace(row.InjectionPoint))
	kind := Kind(strings.TrimSpace(row.SettingType))
	if !validPoint(point) || !validKind(kind) || strings.TrimSpace(value) == "" {
		return CustomScript{}, false
	}
	return CustomScript{
		ID:        row.ID,
		Key:       row.Key,
		Label:     row.DisplayName,
		Payload:   value,
		Kind:      kind,
		Point:     point,
		SortOrder: row.SortOrder,
	}, true
}

// appendScript preserves input order: rows are already sorted by rank
// and the parser must not re-sort.
func appendScript(s *Scripts, script CustomScript) {
	switch script.Point {
	case HeadStart:
		s.HeadStart = append(s.HeadStart, script)
	case HeadEnd:
		s.HeadEnd = append(s.HeadEnd, script)
	case BodyStart:
		s.BodyStart = append(s.BodyStart, script)
	case BodyEnd:
		s.BodyEnd = append(s.BodyEnd, script)
	}
}

func validPoint(p Point) bool {
	switch p {
	case HeadStart, HeadEnd, BodyStart, BodyEnd:
		return true
	}
	return false
}

func validKind(k Kind) bool {
	switch k {
	case KindMetaTag, KindScript, KindLink, KindJSONLD, KindCustomHTML:
		return true
	}
	return false
}
