package browser

import (
	"context"
	"sync"
)

// nullElement is the ElementHandle returned by NullSession when a selector
// is configured to match.
type nullElement struct{ tag string }

func (n nullElement) Tag() string { return n.tag }

// NullSession is a reference Session implementation that never talks to a
// real browser. It exists so internal/core packages and their tests can
// depend on the browser.Session interface without a concrete driver —
// production deployments supply their own Driver/Session pair.
type NullSession struct {
	mu        sync.Mutex
	disposed  bool
	matches   map[string]bool
	navigated []string
}

// NewNullSession builds a NullSession. matches maps "kind:selector" to
// whether QuerySelector should report a hit for it.
func NewNullSession(matches map[string]bool) *NullSession {
	return &NullSession{matches: matches}
}

func (s *NullSession) Initialize(ctx context.Context) error { return nil }

func (s *NullSession) NavigateTo(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigated = append(s.navigated, url)
	return nil
}

func (s *NullSession) QuerySelector(ctx context.Context, kind SelectorKind, selector string) (ElementHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(kind) + ":" + selector
	if s.matches[key] {
		return nullElement{tag: key}, nil
	}
	return nil, nil
}

func (s *NullSession) Press(ctx context.Context, kind SelectorKind, selector, key string) error {
	return nil
}

func (s *NullSession) Fill(ctx context.Context, kind SelectorKind, selector, text string) error {
	return nil
}

func (s *NullSession) Click(ctx context.Context, kind SelectorKind, selector string) error {
	return nil
}

func (s *NullSession) Dispose(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	return nil
}

// NullDriver launches NullSession instances; no profile is written to disk.
type NullDriver struct{}

func (NullDriver) Launch(ctx context.Context, profileDir string) (Session, error) {
	return NewNullSession(nil), nil
}
