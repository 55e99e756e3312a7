// Package panel holds the deep-link detail panel state machine.
//
// The panel has exactly two states, Closed and Open(slug), and every
// transition is a named method rather than an implicit side effect of a
// re-render. That keeps the two historical hazards (double-firing the
// dismiss navigation, racing the dismissal against the URL update)
// explicit and testable.
package panel

import (
	"strings"
	"sync"

	"github.com/showcasehub/gallery/internal/analytics"
	"github.com/showcasehub/gallery/internal/catalog"
	"github.com/showcasehub/gallery/internal/urlstate"
)

// Navigator pushes a new query string, the panel's only outward effect
// besides analytics.
type Navigator interface {
	Push(query string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(query string)

func (f NavigatorFunc) Push(query string) { f(query) }

// Tick defers fn by one scheduling step. The dismiss transition uses it
// to sequence the local state change before the URL mutation.
type Tick func(fn func())

// Controller synchronizes the open panel with the `card` URL parameter.
type Controller struct {
	nav    Navigator
	events analytics.Emitter
	tick   Tick

	mu   sync.Mutex
	open string // open panel slug, "" when closed
}

// New builds a controller in the Closed state. A nil tick defers via a
// goroutine, which is the production behavior.
func New(nav Navigator, events analytics.Emitter, tick Tick) *Controller {
	if tick == nil {
		tick = func(fn func()) { go fn() }
	}
	return &Controller{nav: nav, events: events, tick: tick}
}

// OpenSlug returns the slug of the open panel, or "" when closed.
func (c *Controller) OpenSlug() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// OpenCard handles a card click: transition to Open, push the card
// parameter onto the current query string and emit the click event.
func (c *Controller) OpenCard(entry *catalog.Entry, currentQuery string) {
	c.mu.Lock()
	c.open = entry.Slug
	c.mu.Unlock()

	c.nav.Push(urlstate.Encode(currentQuery, urlstate.Patch{
		Card: urlstate.Str(entry.Slug),
	}))

	c.events.Emit(analytics.Event{
		Name: analytics.EventCardClick,
		Fields: map[string]string{
			"title":  entry.Title,
			"slug":   entry.Slug,
			"author": strings.Join(entry.Authors, ", "),
			"tags":   strings.Join(entry.Tags, ","),
		},
	})
}

// SyncFromURL reconciles the state machine with an externally changed
// card parameter (back/forward navigation, shared link).
//
// Closed + matching card  -> Open, deep_link_open emitted.
// Open + cleared card     -> Closed, without re-firing the dismiss
// navigation that already happened.
func (c *Controller) SyncFromURL(card, referrer string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.open == "" && card != "":
		c.open = card
		c.events.Emit(analytics.Event{
			Name: analytics.EventDeepLinkOpen,
			Fields: map[string]string{
				"slug":     card,
				"referrer": referrer,
			},
		})
	case c.open != "" && card == "":
		c.open = ""
	case card != "":
		// A different card while open: follow the URL.
		c.open = card
	}
}

// Dismiss closes the panel, then removes the card parameter one tick
// later so the close is observable before the navigation lands.
func (c *Controller) Dismiss(currentQuery string) {
	c.mu.Lock()
	if c.open == "" {
		c.mu.Unlock()
		return
	}
	c.open = ""
	c.mu.Unlock()

	c.tick(func() {
		c.nav.Push(urlstate.Encode(currentQuery, urlstate.Patch{
			Card: urlstate.Str(""),
		}))
	})
}
