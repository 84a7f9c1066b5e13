package ui

import (
	"context"
	"strings"
	"time"

	"clinicwa/internal/core/browser"
	"clinicwa/internal/core/coreresult"
	"clinicwa/internal/core/netcheck"
	"clinicwa/pkg/logger"
)

// MessageStatus is the outcome of inspecting the most recent outgoing
// message bubble: a semantic icon key plus the raw text observed, if any.
type MessageStatus struct {
	IconKey IconKey
	RawText string
}

// Empty reports the absence of any observed status.
func Empty() MessageStatus { return MessageStatus{} }

func (m MessageStatus) IsEmpty() bool { return m.IconKey == IconNone && m.RawText == "" }

// Service implements the CORE's UIInteractionService.
type Service struct {
	families      Families
	network       *netcheck.Service
	logger        logger.Logger
	terminalIcons map[IconKey]bool
}

// Config configures which icon keys are considered terminal "delivered"
// markers — a closed set, injected rather than hard-coded.
type Config struct {
	TerminalDeliveryIcons []IconKey
}

// New builds a UIInteractionService.
func New(families Families, network *netcheck.Service, cfg Config, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoopLogger{}
	}
	terminal := make(map[IconKey]bool, len(cfg.TerminalDeliveryIcons))
	for _, k := range cfg.TerminalDeliveryIcons {
		terminal[k] = true
	}
	return &Service{families: families, network: network, logger: log, terminalIcons: terminal}
}

// WaitForPageLoad polls each family in order on every tick; on first match
// of PageReady it reports Success(true). A match in AuthQR takes precedence
// and is reported as PendingQR. If the network probe fails mid-wait,
// PendingNET is reported. Timeout with no match yields Waiting.
func (s *Service) WaitForPageLoad(
	ctx context.Context,
	session browser.Session,
	pollInterval time.Duration,
	maxWait time.Duration,
) coreresult.Result[bool] {
	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if result, done := s.pollPageLoadOnce(ctx, session); done {
			return result
		}

		if time.Now().After(deadline) {
			return coreresult.Waiting[bool]("page load timed out")
		}

		select {
		case <-ctx.Done():
			return coreresult.Waiting[bool]("cancelled")
		case <-ticker.C:
		}
	}
}

func (s *Service) pollPageLoadOnce(ctx context.Context, session browser.Session) (coreresult.Result[bool], bool) {
	// Tie-break: the QR page wins over input-field/page-ready.
	if qr, _, err := firstMatch(ctx, session, s.families.AuthQR); err == nil && qr != nil {
		return coreresult.PendingQR[bool]("authentication required"), true
	}

	if s.network != nil && !s.network.CheckInternetConnectivity(ctx) {
		return coreresult.PendingNET[bool]("network unreachable"), true
	}

	if ready, _, err := firstMatch(ctx, session, s.families.PageReady); err == nil && ready != nil {
		return coreresult.Success(true, "page ready"), true
	}

	return coreresult.Result[bool]{}, false
}

// ContinuousMonitoring runs alongside a send, polling for a disruption:
// a QR dialog appearing mid-send, a network drop, or a new error dialog.
// It returns the disruption result, or an empty (zero-value, ok=false)
// result if the monitor window closed without observing one.
func (s *Service) ContinuousMonitoring(
	ctx context.Context,
	session browser.Session,
	pollInterval time.Duration,
	maxWait time.Duration,
) (coreresult.Result[bool], bool) {
	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if qr, _, err := firstMatch(ctx, session, s.families.AuthQR); err == nil && qr != nil {
			return coreresult.PendingQR[bool]("authentication required mid-send"), true
		}
		if s.network != nil && !s.network.CheckInternetConnectivity(ctx) {
			return coreresult.PendingNET[bool]("network lost mid-send"), true
		}
		if dlg, rule, err := firstMatch(ctx, session, s.families.ErrorDialog); err == nil && dlg != nil {
			return coreresult.Failure[bool](errorDialogMessage(rule)), true
		}

		if time.Now().After(deadline) {
			return coreresult.Result[bool]{}, false
		}

		select {
		case <-ctx.Done():
			return coreresult.Result[bool]{}, false
		case <-ticker.C:
		}
	}
}

// GetLastOutgoingMessageStatus locates the most recent outgoing message
// bubble (optionally matching a substring of the just-sent content) and
// extracts a status icon key. Returns Empty() if nothing is found.
func (s *Service) GetLastOutgoingMessageStatus(ctx context.Context, session browser.Session, expectedSubstring string) MessageStatus {
	bubble, _, err := firstMatch(ctx, session, s.families.OutgoingBubble)
	if err != nil || bubble == nil {
		return Empty()
	}
	if expectedSubstring != "" && !strings.Contains(bubble.Tag(), expectedSubstring) {
		return Empty()
	}

	icon, rule, err := firstMatch(ctx, session, s.families.StatusIcon)
	if err != nil || icon == nil {
		return Empty()
	}
	return MessageStatus{IconKey: iconKeyFromPattern(rule.Pattern), RawText: icon.Tag()}
}

// Families returns the selector families this service was configured with.
func (s *Service) Families() Families { return s.families }

// IsTerminalDeliveryIcon reports whether key is in the configured closed
// set of terminal "delivered/sent" markers (vs. a non-terminal spinner).
func (s *Service) IsTerminalDeliveryIcon(key IconKey) bool {
	return s.terminalIcons[key]
}

// CheckForWhatsAppErrorDialog returns Failure if an invalid-number dialog
// is shown; Success(true) if the input field is visible; Waiting otherwise.
// Tie-break: the error dialog wins if both appear.
func (s *Service) CheckForWhatsAppErrorDialog(ctx context.Context, session browser.Session, phoneNumber string) coreresult.Result[bool] {
	if dlg, rule, err := firstMatch(ctx, session, s.families.ErrorDialog); err == nil && dlg != nil {
		return coreresult.Failure[bool](phoneNumber + " does not have WhatsApp registered. Error dialog detected using selector: " + rule.Pattern)
	}
	if input, _, err := firstMatch(ctx, session, s.families.InputField); err == nil && input != nil {
		return coreresult.Success(true, "input field visible")
	}
	return coreresult.Waiting[bool]("neither error dialog nor input field visible yet")
}

func errorDialogMessage(rule *SelectorRule) string {
	if rule == nil {
		return "error dialog detected"
	}
	return "error dialog detected using selector: " + rule.Pattern
}

func iconKeyFromPattern(pattern string) IconKey {
	switch {
	case strings.Contains(pattern, string(IconDblCheck)):
		return IconDblCheck
	case strings.Contains(pattern, string(IconCheck)):
		return IconCheck
	case strings.Contains(pattern, string(IconTime)):
		return IconTime
	default:
		return IconNone
	}
}
