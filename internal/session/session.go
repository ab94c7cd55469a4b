// Package session holds the per-view showcase state: search query,
// selected product, cart counter and the cart animation flag.
//
// A Session publishes exactly one notify.Completion, on the addition that
// takes the cart from zero to one item. Operations are safe for concurrent
// use; Close cancels the pending animation reset so nothing touches a
// torn-down session.
package session

import (
	"errors"
	"sync"
	"time"

	"ProductShowcase/internal/catalog"
	"ProductShowcase/internal/notify"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrNoSelection    = errors.New("no product selected")
	ErrClosed         = errors.New("session closed")
	ErrNotFound       = errors.New("session not found")
)

const DefaultAnimationDelay = 300 * time.Millisecond

// Publisher receives the completion event. Publish must not block.
type Publisher interface {
	Publish(c notify.Completion)
}

type Options struct {
	AnimationDelay time.Duration
	Publisher      Publisher
	Metrics        *Metrics
	Now            func() time.Time
}

// View is everything a front end needs to render the showcase.
type View struct {
	ID        string            `json:"id"`
	Query     string            `json:"query"`
	Products  []catalog.Product `json:"products"`
	Selected  *catalog.Product  `json:"selected,omitempty"`
	CartCount int               `json:"cart_count"`
	Animating bool              `json:"animating"`
	Notified  bool              `json:"notified"`
	Stats     catalog.Stats     `json:"stats"`
}

type Session struct {
	id        string
	products  []catalog.Product
	byID      map[int]int
	delay     time.Duration
	pub       Publisher
	metrics   *Metrics
	now       func() time.Time
	createdAt time.Time

	mu        sync.Mutex
	query     string
	selected  int
	cartCount int
	animating bool
	animGen   uint64
	animTimer *time.Timer
	notified  bool
	closed    bool
	lastSeen  time.Time
}

func New(id string, products []catalog.Product, opts Options) *Session {
	if opts.AnimationDelay <= 0 {
		opts.AnimationDelay = DefaultAnimationDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{
		id:       id,
		products: append([]catalog.Product(nil), products...),
		byID:     make(map[int]int, len(products)),
		delay:    opts.AnimationDelay,
		pub:      opts.Publisher,
		metrics:  opts.Metrics,
		now:      opts.Now,
		selected: -1,
	}
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
	s.createdAt = s.now()
	s.lastSeen = s.createdAt
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) SetQuery(q string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.query = q
	s.lastSeen = s.now()
	return nil
}

func (s *Session) SelectProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	i, ok := s.byID[id]
	if !ok {
		return ErrUnknownProduct
	}
	s.selected = i
	s.lastSeen = s.now()
	return nil
}

func (s *Session) DismissSelection() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.selected = -1
	s.lastSeen = s.now()
	return nil
}

// AddToCart does not require the product to be selected.
func (s *Session) AddToCart(id int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	i, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownProduct
	}
	c, first := s.addLocked(i)
	s.mu.Unlock()

	s.afterAdd(c, first)
	return nil
}

// PurchaseSelected adds the selected product to the cart and closes the
// detail view.
func (s *Session) PurchaseSelected() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.selected < 0 {
		s.mu.Unlock()
		return ErrNoSelection
	}
	c, first := s.addLocked(s.selected)
	s.selected = -1
	s.mu.Unlock()

	s.afterAdd(c, first)
	return nil
}

func (s *Session) addLocked(i int) (notify.Completion, bool) {
	now := s.now()
	first := s.cartCount == 0

	s.cartCount++
	s.lastSeen = now
	s.armAnimationLocked()

	if !first {
		return notify.Completion{}, false
	}
	s.notified = true
	return notify.NewCompletion(s.id, s.products[i].Name, now), true
}

func (s *Session) afterAdd(c notify.Completion, first bool) {
	s.metrics.cartAdded()
	if !first {
		return
	}
	s.metrics.completed()
	if s.pub != nil {
		s.pub.Publish(c)
	}
}

func (s *Session) armAnimationLocked() {
	s.animating = true
	s.animGen++
	gen := s.animGen

	if s.animTimer != nil {
		s.animTimer.Stop()
	}
	s.animTimer = time.AfterFunc(s.delay, func() { s.endAnimation(gen) })
}

func (s *Session) endAnimation(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// a newer addition re-armed the timer, or the session is gone
	if s.closed || gen != s.animGen {
		return
	}
	s.animating = false
	s.animTimer = nil
}

func (s *Session) Snapshot() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return View{}, ErrClosed
	}
	s.lastSeen = s.now()

	filtered := catalog.Filter(s.query, s.products)
	v := View{
		ID:        s.id,
		Query:     s.query,
		Products:  filtered,
		CartCount: s.cartCount,
		Animating: s.animating,
		Notified:  s.notified,
		Stats:     catalog.Summarize(s.products, filtered, s.cartCount),
	}
	if s.selected >= 0 {
		p := s.products[s.selected]
		v.Selected = &p
	}
	return v, nil
}

// Close ends the session. It is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.animating = false
	s.animGen++
	if s.animTimer != nil {
		s.animTimer.Stop()
		s.animTimer = nil
	}
}
