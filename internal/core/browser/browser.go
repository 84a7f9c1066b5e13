// Package browser defines BrowserSession as a pure injected abstraction
// over a headless-browser page. No concrete driver library is bound
// here: a protocol-level WhatsApp client has no concept of a page or a
// DOM selector, and no other available library provides headless-browser
// automation, so Driver stays an interface with NullDriver/NullSession as
// the reference implementation.
package browser

import (
	"context"
	"errors"
)

// ErrElementNotFound is returned by QuerySelector when nothing matches;
// callers treat a nil handle + nil error as "not found" instead, this is
// kept only for driver implementations that prefer an explicit sentinel.
var ErrElementNotFound = errors.New("element not found")

// ElementHandle is an opaque reference to a matched DOM element. Drivers
// decide its concrete representation; the CORE never inspects it beyond
// passing it back to Driver-provided operations.
type ElementHandle interface {
	// Tag is a short, driver-defined description used only for logging.
	Tag() string
}

// Session is a thin, transport-level abstraction over a browser page for
// exactly one moderator. It is not thread-safe by itself — serialization
// is enforced by the caller (SessionManager's per-moderator lock).
type Session interface {
	// Initialize is idempotent: the first call launches a browser with a
	// persistent profile directory keyed by moderator; subsequent calls are
	// no-ops. Returns a transport error if the browser binary is missing or
	// the profile is corrupt.
	Initialize(ctx context.Context) error

	// NavigateTo navigates the single page and awaits "document loaded".
	NavigateTo(ctx context.Context, url string) error

	// QuerySelector returns the first element matching selector, or nil if
	// absent. kind distinguishes css/xpath/text selector syntax.
	QuerySelector(ctx context.Context, kind SelectorKind, selector string) (ElementHandle, error)

	// Press focuses selector and issues a keyboard key (e.g. "Enter").
	Press(ctx context.Context, kind SelectorKind, selector, key string) error

	// Fill focuses selector and types text into it.
	Fill(ctx context.Context, kind SelectorKind, selector, text string) error

	// Click focuses selector and issues a click.
	Click(ctx context.Context, kind SelectorKind, selector string) error

	// Dispose releases the browser and profile handles. Safe to call
	// exactly once; must tolerate being called twice.
	Dispose(ctx context.Context) error
}

// SelectorKind is the syntax family a selector pattern is written in.
type SelectorKind string

const (
	SelectorCSS   SelectorKind = "css"
	SelectorXPath SelectorKind = "xpath"
	SelectorText  SelectorKind = "text"
)

// Driver launches Session instances bound to a persistent profile
// directory, one per moderator.
type Driver interface {
	Launch(ctx context.Context, profileDir string) (Session, error)
}
