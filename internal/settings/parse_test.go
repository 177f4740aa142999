package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestParseMergesGroupOverDefaults(t *testing.T) {
	rows := []Row{
		{Key: "settings_seo", Value: strp(`{"meta_title":"X"}`)},
	}
	b := Parse(rows)
	def := Defaults()

	assert.Equal(t, "X", b.SEO.MetaTitle)
	assert.Equal(t, def.SEO.MetaDescription, b.SEO.MetaDescription)
	assert.Equal(t, def.SEO.OGType, b.SEO.OGType)
	assert.Equal(t, def.SEO.TwitterCard, b.SEO.TwitterCard)
	assert.Equal(t, def.SEO.Robots, b.SEO.Robots)
}

func TestParseMalformedGroupIsIsolated(t *testing.T) {
	rows := []Row{
		{Key: "settings_analytics", Value: strp(`{"ga4_measurement_id":`)},
		{Key: "settings_seo", Value: strp(`{"meta_title":"Valid"}`)},
		{Key: "settings_general", Value: strp(`{"site_name":"Meridian"}`)},
	}
	b := Parse(rows)

	assert.Equal(t, Defaults().Analytics, b.Analytics, "corrupt group falls back whole")
	assert.Equal(t, "Valid", b.SEO.MetaTitle, "sibling groups unaffected")
	assert.Equal(t, "Meridian", b.General.SiteName)
}

func TestParseEmptyReservedValueKeepsDefaults(t *testing.T) {
	empty := ""
	rows := []Row{
		{Key: "settings_contact", Value: nil},
		{Key: "settings_social", Value: &empty},
	}
	b := Parse(rows)
	assert.Equal(t, Defaults().Contact, b.Contact)
	assert.Equal(t, Defaults().Social, b.Social)
}

func TestParseRoutesCustomScripts(t *testing.T) {
	rows := []Row{
		{ID: "1", Key: "chat_widget", Value: strp("<script>chat()</script>"), SettingType: "script", InjectionPoint: "body_end", SortOrder: 2},
		{ID: "2", Key: "no_point", Value: strp("<script>lost()</script>"), SettingType: "script"},
		{ID: "3", Key: "empty_payload", Value: strp("   "), SettingType: "script", InjectionPoint: "head_end"},
		{ID: "4", Key: "bad_kind", Value: strp("x"), SettingType: "widget", InjectionPoint: "head_end"},
	}
	b := Parse(rows)

	require.Len(t, b.Scripts.BodyEnd, 1)
	assert.Equal(t, "chat_widget", b.Scripts.BodyEnd[0].Key)
	assert.Empty(t, b.Scripts.HeadStart)
	assert.Empty(t, b.Scripts.HeadEnd)
	assert.Empty(t, b.Scripts.BodyStart)
}

func TestParsePreservesInputOrder(t *testing.T) {
	rows := []Row{
		{ID: "a", Key: "first", Value: strp("1"), SettingType: "script", InjectionPoint: "head_end", SortOrder: 10},
		{ID: "b", Key: "second", Value: strp("2"), SettingType: "json_ld", InjectionPoint: "head_end", SortOrder: 20},
		{ID: "c", Key: "third", Value: strp("3"), SettingType: "meta_tag", InjectionPoint: "head_end", SortOrder: 30},
	}
	b := Parse(rows)

	require.Len(t, b.Scripts.HeadEnd, 3)
	keys := []string{b.Scripts.HeadEnd[0].Key, b.Scripts.HeadEnd[1].Key, b.Scripts.HeadEnd[2].Key}
	assert.Equal(t, []string{"first", "second", "third"}, keys, "parser must not re-sort pre-sorted rows")
}

func TestParsePartialJSONContributesDefinedFieldsOnly(t *testing.T) {
	rows := []Row{
		{Key: "settings_general", Value: strp(`{"site_name":"Custom","tagline":""}`)},
	}
	b := Parse(rows)
	def := Defaults()

	assert.Equal(t, "Custom", b.General.SiteName)
	assert.Equal(t, "", b.General.Tagline, "explicit empty overrides default")
	assert.Equal(t, def.General.DefaultLanguage, b.General.DefaultLanguage)
	assert.Equal(t, def.General.Timezone, b.General.Timezone)
}
