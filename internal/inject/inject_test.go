package inject

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meridianmall.com/meridian-web/internal/settings"
)

func TestAttachIsIdempotentPerKey(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewConsumer("analytics")
	a := settings.AnalyticsSettings{GA4MeasurementID: "G-TEST123"}

	ApplyAnalytics(c, a)
	ApplyAnalytics(c, a)

	out := string(reg.Fragments(settings.HeadEnd))
	assert.Equal(t, 1, strings.Count(out, "G-TEST123"), "second invocation must not duplicate fragments")
}

func TestCloseRemovesOnlyOwnFragments(t *testing.T) {
	reg := NewRegistry()
	a := reg.NewConsumer("a")
	b := reg.NewConsumer("b")

	a.Attach(settings.HeadEnd, "a:one", "<meta name=\"a\">")
	b.Attach(settings.HeadEnd, "b:one", "<meta name=\"b\">")

	a.Close()

	out := string(reg.Fragments(settings.HeadEnd))
	assert.NotContains(t, out, `name="a"`)
	assert.Contains(t, out, `name="b"`, "fragments of a still-mounted consumer remain")

	// Double close tolerates already-removed fragments.
	a.Close()
}

func TestAttachYieldsToExistingKey(t *testing.T) {
	reg := NewRegistry()
	a := reg.NewConsumer("a")
	b := reg.NewConsumer("b")

	a.Attach(settings.BodyEnd, "chat_widget", "<script>one()</script>")
	b.Attach(settings.BodyEnd, "chat_widget", "<script>two()</script>")
	b.Close()

	out := string(reg.Fragments(settings.BodyEnd))
	assert.Contains(t, out, "one()", "the duplicate attach must not displace the original")
	assert.NotContains(t, out, "two()")
}

func TestFragmentsPreserveAttachOrder(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewConsumer("scripts")
	ApplyCustomScripts(c, settings.Scripts{
		HeadEnd: []settings.CustomScript{
			{Key: "first", Payload: "alpha()", Kind: settings.KindScript, Point: settings.HeadEnd},
			{Key: "second", Payload: `{"@type":"Organization"}`, Kind: settings.KindJSONLD, Point: settings.HeadEnd},
		},
	})

	out := string(reg.Fragments(settings.HeadEnd))
	require.Contains(t, out, "alpha()")
	require.Contains(t, out, "application/ld+json")
	assert.Less(t, strings.Index(out, "alpha()"), strings.Index(out, "application/ld+json"))
}

func TestScriptRoutingByPoint(t *testing.T) {
	reg := NewRegistry()
	c := reg.NewConsumer("scripts")
	ApplyCustomScripts(c, settings.Scripts{
		BodyEnd: []settings.CustomScript{
			{Key: "live_chat", Payload: "<script>chat()</script>", Kind: settings.KindScript, Point: settings.BodyEnd},
		},
	})

	assert.Contains(t, string(reg.Fragments(settings.BodyEnd)), "chat()")
	assert.Empty(t, string(reg.Fragments(settings.HeadStart)))
	assert.Empty(t, string(reg.Fragments(settings.HeadEnd)))
	assert.Empty(t, string(reg.Fragments(settings.BodyStart)))
}

func TestBindWaitsForFirstLoadAndTracksReplacements(t *testing.T) {
	rows := []settings.Row{
		{Key: "settings_analytics", Value: strp(`{"gtm_container_id":"GTM-ABC"}`)},
	}
	svc := settings.NewService(func(context.Context) ([]settings.Row, error) {
		return rows, nil
	})
	reg := NewRegistry()
	stop := Bind(svc, reg)
	defer stop()

	// Nothing attached before the bundle is loaded.
	assert.Empty(t, string(reg.Fragments(settings.HeadStart)))

	svc.LoadAll(context.Background())
	assert.Contains(t, string(reg.Fragments(settings.HeadStart)), "GTM-ABC")
	assert.Contains(t, string(reg.Fragments(settings.BodyStart)), "ns.html?id=GTM-ABC")

	// Replacement swaps fragments wholesale.
	rows = []settings.Row{
		{Key: "settings_analytics", Value: strp(`{"gtm_container_id":"GTM-XYZ"}`)},
	}
	svc.Refresh(context.Background())
	out := string(reg.Fragments(settings.HeadStart))
	assert.Contains(t, out, "GTM-XYZ")
	assert.NotContains(t, out, "GTM-ABC")

	stop()
	assert.Empty(t, string(reg.Fragments(settings.HeadStart)))
}

func strp(s string) *string { return &s }
