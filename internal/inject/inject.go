// Package inject manages the HTML fragments placed into the four
// document injection points (head_start, head_end, body_start,
// body_end). Attachment is idempotent per machine key, and every
// consumer tracks the handles it created so teardown removes exactly
// those and nothing else.
package inject

import (
	"html/template"
	"strings"
	"sync"

	"meridianmall.com/meridian-web/internal/settings"
)

// Handle identifies one attached fragment.
type Handle struct {
	point settings.Point
	key   string
}

type node struct {
	key   string
	owner *Consumer
	html  string
}

// Registry holds the attached fragments per injection point. Fragments
// render in attach order; rows arrive pre-sorted by rank, so attach
// order is rank order. A *_start point renders at the opening of its
// element, a *_end point before its closing tag.
type Registry struct {
	mu     sync.Mutex
	points map[settings.Point][]*node
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{points: map[settings.Point][]*node{}}
}

// NewConsumer creates a named consumer whose attachments can be torn
// down as a unit.
func (r *Registry) NewConsumer(name string) *Consumer {
	return &Consumer{reg: r, name: name}
}

// Fragments renders the fragments attached at p, in attach order.
func (r *Registry) Fragments(p settings.Point) template.HTML {
	r.mu.Lock()
	defer r.mu.Unlock()
	nodes := r.points[p]
	if len(nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.html)
		b.WriteByte('\n')
	}
	return template.HTML(b.String())
}

func (r *Registry) attach(c *Consumer, p settings.Point, key, html string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.points[p] {
		if n.key == key {
			// Already present: repeated invocations must never
			// duplicate fragments.
			return Handle{point: p, key: key}, false
		}
	}
	r.points[p] = append(r.points[p], &node{key: key, owner: c, html: html})
	return Handle{point: p, key: key}, true
}

// remove drops the fragment for h if it is still present and owned by
// c. Removal of an already-removed fragment is a no-op.
func (r *Registry) remove(c *Consumer, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	nodes := r.points[h.point]
	for i, n := range nodes {
		if n.key == h.key && n.owner == c {
			r.points[h.point] = append(nodes[:i], nodes[i+1:]...)
			return
		}
	}
}

// Consumer is one writer of fragments. It records only the handles it
// created, never fragments belonging to another consumer.
type Consumer struct {
	reg  *Registry
	name string

	mu      sync.Mutex
	handles []Handle
}

// Attach places html at p under key. If a fragment with that key is
// already present at p (created by anyone), Attach does nothing and
// the handle is not recorded as owned.
func (c *Consumer) Attach(p settings.Point, key, html string) Handle {
	h, created := c.reg.attach(c, p, key, html)
	if created {
		c.mu.Lock()
		c.handles = append(c.handles, h)
		c.mu.Unlock()
	}
	return h
}

// Close removes every fragment this consumer created, tolerating
// fragments that are already gone.
func (c *Consumer) Close() {
	c.mu.Lock()
	handles := c.handles
	c.handles = nil
	c.mu.Unlock()
	for _, h := range handles {
		c.reg.remove(c, h)
	}
}
