package settings

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the soft cache window. A cached bundle younger than
// this is served without a network call; freshness beyond it requires
// the explicit Refresh path.
const DefaultTTL = 5 * time.Minute

const loadKey = "settings"

// FetchFunc performs the single aggregate query against the store.
type FetchFunc func(ctx context.Context) ([]Row, error)

// Option configures a Service.
type Option func(*Service)

// WithTTL overrides the soft cache window.
func WithTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock injects the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger for transport failures.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

type subscriber struct {
	id int
	fn func(Bundle)
}

// Service is the single process-wide settings loader: soft-TTL cache,
// one outstanding request at a time, and replacement broadcast to
// subscribers. Construct once at startup and pass by reference.
type Service struct {
	fetch FetchFunc
	now   func() time.Time
	ttl   time.Duration
	log   *zap.Logger
	group singleflight.Group

	mu       sync.Mutex
	bundle   *Bundle
	loadedAt time.Time
	subs     []subscriber
	nextSub  int
}

// NewService builds a Service around fetch.
func NewService(fetch FetchFunc, opts ...Option) *Service {
	s := &Service{
		fetch: fetch,
		now:   time.Now,
		ttl:   DefaultTTL,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAll returns the current bundle, fetching at most once no matter
// how many callers arrive concurrently. It never fails: on transport
// error it logs and returns the all-defaults bundle without caching
// it, so a later call retries against the network.
func (s *Service) LoadAll(ctx context.Context) Bundle {
	if b, ok := s.cached(); ok {
		return b
	}
	v, _, _ := s.group.Do(loadKey, func() (any, error) {
		rows, err := s.fetch(ctx)
		if err != nil {
			s.log.Warn("settings load failed, serving defaults", zap.Error(err))
			return Defaults(), nil
		}
		b := Parse(rows)
		s.replace(b)
		return b, nil
	})
	return v.(Bundle)
}

// Refresh drops the cached bundle and any joinable in-flight slot,
// then loads again. The load it triggers is a genuine network fetch
// regardless of the soft TTL.
func (s *Service) Refresh(ctx context.Context) Bundle {
	s.mu.Lock()
	s.bundle = nil
	s.loadedAt = time.Time{}
	s.mu.Unlock()
	s.group.Forget(loadKey)
	return s.LoadAll(ctx)
}

// Bundle returns the currently visible bundle and whether a load has
// succeeded since startup (or the last Refresh).
func (s *Service) Bundle() (Bundle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bundle == nil {
		return Bundle{}, false
	}
	return *s.bundle, true
}

// Loaded reports whether a bundle is visible.
func (s *Service) Loaded() bool {
	_, ok := s.Bundle()
	return ok
}

// Narrowed accessors, each paired with the loading flag.

func (s *Service) SEO() (SEOSettings, bool) {
	b, ok := s.Bundle()
	return b.SEO, ok
}

func (s *Service) Analytics() (AnalyticsSettings, bool) {
	b, ok := s.Bundle()
	return b.Analytics, ok
}

func (s *Service) General() (GeneralSettings, bool) {
	b, ok := s.Bundle()
	return b.General, ok
}

func (s *Service) ContactInfo() (ContactSettings, bool) {
	b, ok := s.Bundle()
	return b.Contact, ok
}

func (s *Service) Social() (SocialSettings, bool) {
	b, ok := s.Bundle()
	return b.Social, ok
}

func (s *Service) CustomScripts() (Scripts, bool) {
	b, ok := s.Bundle()
	return b.Scripts, ok
}

// Subscribe registers fn to run once per bundle replacement, in
// subscription order. The returned func unsubscribes.
func (s *Service) Subscribe(fn func(Bundle)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Service) cached() (Bundle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bundle == nil || s.now().Sub(s.loadedAt) >= s.ttl {
		return Bundle{}, false
	}
	return *s.bundle, true
}

// replace installs the new bundle by single assignment and notifies
// subscribers outside the lock.
func (s *Service) replace(b Bundle) {
	s.mu.Lock()
	s.bundle = &b
	s.loadedAt = s.now()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, sub := range subs {
		sub.fn(b)
	}
}
