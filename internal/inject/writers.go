package inject

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"meridianmall.com/meridian-web/internal/settings"
)

// ApplyCustomScripts attaches every configured custom script at its
// declared injection point, keyed by the script's machine key.
func ApplyCustomScripts(c *Consumer, scripts settings.Scripts) {
	for _, p := range []settings.Point{settings.HeadStart, settings.HeadEnd, settings.BodyStart, settings.BodyEnd} {
		for _, cs := range scripts.ForPoint(p) {
			c.Attach(p, cs.Key, renderScript(cs))
		}
	}
}

// renderScript wraps the opaque payload according to its kind. A
// payload that already starts with a tag is passed through untouched.
func renderScript(cs settings.CustomScript) string {
	payload := strings.TrimSpace(cs.Payload)
	switch cs.Kind {
	case settings.KindScript:
		if strings.HasPrefix(payload, "<") {
			return payload
		}
		return "<script>" + payload + "</script>"
	case settings.KindJSONLD:
		if strings.HasPrefix(payload, "<") {
			return payload
		}
		return `<script type="application/ld+json">` + payload + `</script>`
	default:
		// meta_tag, link and custom_html are complete markup already.
		return payload
	}
}

// ApplyAnalytics attaches the loader snippet for every provider with a
// non-empty identifier. Identifiers are HTML-escaped on the way in.
func ApplyAnalytics(c *Consumer, a settings.AnalyticsSettings) {
	if id := strings.TrimSpace(a.GTMContainerID); id != "" {
		id = html.EscapeString(id)
		c.Attach(settings.HeadStart, "analytics:gtm", fmt.Sprintf(
			`<script>(function(w,d,s,l,i){w[l]=w[l]||[];w[l].push({'gtm.start':new Date().getTime(),event:'gtm.js'});var f=d.getElementsByTagName(s)[0],j=d.createElement(s),dl=l!='dataLayer'?'&l='+l:'';j.async=true;j.src='https://www.googletagmanager.com/gtm.js?id='+i+dl;f.parentNode.insertBefore(j,f);})(window,document,'script','dataLayer','%s');</script>`, id))
		c.Attach(settings.BodyStart, "analytics:gtm-noscript", fmt.Sprintf(
			`<noscript><iframe src="https://www.googletagmanager.com/ns.html?id=%s" height="0" width="0" style="display:none;visibility:hidden"></iframe></noscript>`, id))
	}
	if id := strings.TrimSpace(a.GA4MeasurementID); id != "" {
		id = html.EscapeString(id)
		c.Attach(settings.HeadEnd, "analytics:ga4", fmt.Sprintf(
			`<script async src="https://www.googletagmanager.com/gtag/js?id=%s"></script><script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config','%s');</script>`, id, id))
	}
	if id := strings.TrimSpace(a.GoogleAdsID); id != "" {
		id = html.EscapeString(id)
		c.Attach(settings.HeadEnd, "analytics:google-ads", fmt.Sprintf(
			`<script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('config','%s');</script>`, id))
	}
	if id := strings.TrimSpace(a.FacebookPixelID); id != "" {
		id = html.EscapeString(id)
		c.Attach(settings.HeadEnd, "analytics:facebook-pixel", fmt.Sprintf(
			`<script>!function(f,b,e,v,n,t,s){if(f.fbq)return;n=f.fbq=function(){n.callMethod?n.callMethod.apply(n,arguments):n.queue.push(arguments)};if(!f._fbq)f._fbq=n;n.push=n;n.loaded=!0;n.version='2.0';n.queue=[];t=b.createElement(e);t.async=!0;t.src=v;s=b.getElementsByTagName(e)[0];s.parentNode.insertBefore(t,s)}(window,document,'script','https://connect.facebook.net/en_US/fbevents.js');fbq('init','%s');fbq('track','PageView');</script>`, id))
	}
	if id := strings.TrimSpace(a.HotjarSiteID); id != "" {
		id = html.EscapeString(id)
		c.Attach(settings.HeadEnd, "analytics:hotjar", fmt.Sprintf(
			`<script>(function(h,o,t,j,a,r){h.hj=h.hj||function(){(h.hj.q=h.hj.q||[]).push(arguments)};h._hjSettings={hjid:%s,hjsv:6};a=o.getElementsByTagName('head')[0];r=o.createElement('script');r.async=1;r.src=t+h._hjSettings.hjid+j+h._hjSettings.hjsv;a.appendChild(r);})(window,document,'https://static.hotjar.com/c/hotjar-','.js?sv=');</script>`, id))
	}
}

// ApplyVerification attaches the search-engine verification tokens.
// These are site-wide; the rest of the SEO group is applied only on
// the home view through its view model.
func ApplyVerification(c *Consumer, s settings.SEOSettings) {
	if v := strings.TrimSpace(s.GoogleVerification); v != "" {
		c.Attach(settings.HeadEnd, "seo:google-verification",
			fmt.Sprintf(`<meta name="google-site-verification" content="%s">`, html.EscapeString(v)))
	}
	if v := strings.TrimSpace(s.BingVerification); v != "" {
		c.Attach(settings.HeadEnd, "seo:bing-verification",
			fmt.Sprintf(`<meta name="msvalidate.01" content="%s">`, html.EscapeString(v)))
	}
}

// Bind subscribes the registry to bundle replacements: on every new
// bundle the previous consumer is torn down and a fresh one attaches
// the analytics, verification and custom script fragments. Nothing is
// attached before the first successful load, so default values never
// flash into served pages. The returned func unsubscribes and removes
// the current fragments.
func Bind(svc *settings.Service, reg *Registry) func() {
	var mu sync.Mutex
	var current *Consumer
	apply := func(b settings.Bundle) {
		mu.Lock()
		prev := current
		mu.Unlock()
		// Tear down before attaching: the replacement bundle owns the
		// same machine keys, and Attach yields to an existing key.
		if prev != nil {
			prev.Close()
		}
		next := reg.NewConsumer("site-scripts")
		ApplyAnalytics(next, b.Analytics)
		ApplyVerification(next, b.SEO)
		ApplyCustomScripts(next, b.Scripts)
		mu.Lock()
		current = next
		mu.Unlock()
	}
	if b, ok := svc.Bundle(); ok {
		apply(b)
	}
	unsubscribe := svc.Subscribe(apply)
	return func() {
		unsubscribe()
		mu.Lock()
		prev := current
		current = nil
		mu.Unlock()
		if prev != nil {
			prev.Close()
		}
	}
}
