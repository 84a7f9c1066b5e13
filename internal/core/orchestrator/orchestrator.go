// Package orchestrator implements the send orchestrator: the per-message
// state machine combining navigation, input fill, send, and outbound-status
// classification with retry semantics.
package orchestrator

import (
	"context"
	"time"

	"clinicwa/internal/core/browser"
	"clinicwa/internal/core/coordinator"
	"clinicwa/internal/core/coreresult"
	"clinicwa/internal/core/netcheck"
	"clinicwa/internal/core/retry"
	"clinicwa/internal/core/sessionmgr"
	"clinicwa/internal/core/ui"
	"clinicwa/pkg/logger"
)

// State names the per-message state machine's steps, in order.
type State int

const (
	StateIdle State = iota
	StateNavigating
	StateAwaitingPage
	StateCheckingErrorDialog
	StateAwaitingInput
	StateFilling
	StateClicking
	StateAwaitingStatus
	StateDone
)

// Config bounds every timeout and poll interval the orchestrator uses.
// None of these are magic constants inline: they flow from
// internal/infra/config.CoreConfig.
type Config struct {
	BaseURL                     string
	PageLoadTimeout             time.Duration
	SelectorPollInterval        time.Duration
	StatusClassificationTimeout time.Duration
	RetryMaxAttempts            uint
}

// Orchestrator drives one send/validate operation end to end.
type Orchestrator struct {
	cfg         Config
	sessions    *sessionmgr.Manager
	coordinator *coordinator.Coordinator
	ui          *ui.Service
	network     *netcheck.Service
	retrySvc    *retry.Service
	logger      logger.Logger
}

// New builds a SendOrchestrator.
func New(cfg Config, sessions *sessionmgr.Manager, coord *coordinator.Coordinator, uiSvc *ui.Service, network *netcheck.Service, retrySvc *retry.Service, log logger.Logger) *Orchestrator {
	if log == nil {
		log = &logger.NoopLogger{}
	}
	return &Orchestrator{cfg: cfg, sessions: sessions, coordinator: coord, ui: uiSvc, network: network, retrySvc: retrySvc, logger: log}
}

// preflight checks the coordinator's pause state before touching the
// browser. Every send through the orchestrator checks IsPaused before
// navigation; if paused, it returns a result reflecting the pause's tier
// without touching the browser.
func (o *Orchestrator) preflight(ctx context.Context, moderatorID string) (coreresult.Result[string], bool) {
	state, ok, err := o.coordinator.CurrentPause(ctx, moderatorID)
	if err != nil || !ok || !state.IsPaused {
		return coreresult.Result[string]{}, false
	}

	switch {
	case startsWith(state.PauseReason, coordinator.ReasonPrefixAuthQR):
		return coreresult.PendingQR[string](state.PauseReason), true
	case startsWith(state.PauseReason, coordinator.ReasonPrefixNetwork):
		return coreresult.PendingNET[string](state.PauseReason), true
	default:
		return coreresult.Waiting[string](state.PauseReason), true
	}
}

func startsWith(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// ensureSlot creates an unpaused coordinator slot the first time a
// moderator's session is created; idempotent, errors are logged and
// otherwise ignored since a missing slot only affects pause gating.
func (o *Orchestrator) ensureSlot(ctx context.Context, moderatorID string) {
	if err := o.coordinator.EnsureSlot(ctx, moderatorID); err != nil {
		o.logger.WarnWithError("failed to ensure coordinator slot", err, logger.Fields{"moderator_id": moderatorID})
	}
}

// DisposeBrowserSession tears down the moderator's live BrowserSession, if
// any. The coordinator slot and its pause state are left unchanged.
func (o *Orchestrator) DisposeBrowserSession(ctx context.Context, moderatorID string) error {
	return o.sessions.DisposeSession(ctx, moderatorID)
}

// pauseForTier imposes the coordinator pause matching a tiered result.
func (o *Orchestrator) pauseForTier(ctx context.Context, moderatorID, userID string, result coreresult.Result[string]) {
	var reason string
	switch result.State {
	case coreresult.StatePendingQR:
		reason = coordinator.ReasonPrefixAuthQR + " - " + result.Message
	case coreresult.StatePendingNET:
		reason = coordinator.ReasonPrefixNetwork + " - " + result.Message
	default:
		return
	}
	if _, err := o.coordinator.PauseAllOngoingTasks(ctx, moderatorID, userID, reason); err != nil {
		o.logger.WarnWithError("failed to impose tiered pause", err, logger.Fields{"moderator_id": moderatorID})
	}
}

// CheckWhatsAppNumber reports whether phoneNumber is reachable on
// WhatsApp: the orchestrator stops right after the error-dialog check
// and returns Success(true) without sending anything.
func (o *Orchestrator) CheckWhatsAppNumber(ctx context.Context, moderatorID, countryCode, phoneNumber string) coreresult.Result[bool] {
	if pre, paused := o.preflight(ctx, moderatorID); paused {
		return toBool(pre)
	}

	session, err := o.sessions.GetOrCreateSession(ctx, moderatorID)
	if err != nil {
		return coreresult.Failure[bool](err.Error())
	}
	o.ensureSlot(ctx, moderatorID)

	url := BuildSendURL(o.cfg.BaseURL, countryCode, phoneNumber, "")
	if err := session.NavigateTo(ctx, url); err != nil {
		return coreresult.Failure[bool](err.Error())
	}

	if result := o.ui.WaitForPageLoad(ctx, session, o.cfg.SelectorPollInterval, o.cfg.PageLoadTimeout); !result.IsSuccess() {
		o.pauseIfTiered(ctx, moderatorID, result)
		return result
	}

	dialogCheck := retry.ExecuteWithRetry(ctx, o.retrySvc, func(ctx context.Context) (coreresult.Result[bool], error) {
		return o.ui.CheckForWhatsAppErrorDialog(ctx, session, phoneNumber), nil
	}, o.cfg.RetryMaxAttempts, nil, nil)

	if dialogCheck.State == coreresult.StateFailure {
		return dialogCheck
	}

	return coreresult.Success(true, "number reachable")
}

// SendMessageWithIconType sends message to phoneNumber over the given
// moderator's session, returning a semantic icon key in Data on success.
func (o *Orchestrator) SendMessageWithIconType(ctx context.Context, moderatorID, countryCode, phoneNumber, message string) coreresult.Result[string] {
	if pre, paused := o.preflight(ctx, moderatorID); paused {
		return pre
	}

	// StateNavigating
	session, err := o.sessions.GetOrCreateSession(ctx, moderatorID)
	if err != nil {
		return coreresult.Failure[string](err.Error())
	}
	o.ensureSlot(ctx, moderatorID)

	opID, err := o.coordinator.BeginOperation(ctx, moderatorID, phoneNumber)
	if err != nil {
		o.logger.WarnWithError("failed to record outbound operation", err, logger.Fields{"moderator_id": moderatorID})
	}
	finish := func(status coordinator.OutboundStatus) {
		if opID == "" {
			return
		}
		if err := o.coordinator.FinishOperation(ctx, opID, status); err != nil {
			o.logger.WarnWithError("failed to finalize outbound operation", err, logger.Fields{"moderator_id": moderatorID, "id": opID})
		}
	}

	url := BuildSendURL(o.cfg.BaseURL, countryCode, phoneNumber, message)
	if err := session.NavigateTo(ctx, url); err != nil {
		finish(coordinator.OutboundFailed)
		return coreresult.Failure[string](err.Error())
	}

	// StateAwaitingPage
	pageLoad := o.ui.WaitForPageLoad(ctx, session, o.cfg.SelectorPollInterval, o.cfg.PageLoadTimeout)
	if !pageLoad.IsSuccess() {
		result := retag[string](pageLoad)
		o.pauseForTier(ctx, moderatorID, "system", result)
		finish(coordinator.OutboundRetrying)
		return result
	}

	// StateCheckingErrorDialog
	dialogCheck := retry.ExecuteWithRetry(ctx, o.retrySvc, func(ctx context.Context) (coreresult.Result[bool], error) {
		return o.ui.CheckForWhatsAppErrorDialog(ctx, session, phoneNumber), nil
	}, o.cfg.RetryMaxAttempts, nil, nil)

	if dialogCheck.State == coreresult.StateFailure {
		finish(coordinator.OutboundFailed)
		return coreresult.Failure[string](dialogCheck.Message)
	}

	// StateAwaitingInput / StateFilling
	inputResult := retry.ExecuteWithRetry(ctx, o.retrySvc, func(ctx context.Context) (coreresult.Result[bool], error) {
		return o.locateInputField(ctx, session)
	}, o.cfg.RetryMaxAttempts, nil, nil)

	if inputResult.State != coreresult.StateSuccess {
		finish(coordinator.OutboundFailed)
		return coreresult.Failure[string]("Input field not found")
	}

	if err := session.Fill(ctx, o.ui.Families().InputField[0].Kind, o.ui.Families().InputField[0].Pattern, message); err != nil {
		finish(coordinator.OutboundFailed)
		return coreresult.Failure[string](err.Error())
	}

	// StateClicking: first-match send button, Enter-key fallback exactly once.
	if err := o.clickSendOrFallback(ctx, session); err != nil {
		finish(coordinator.OutboundFailed)
		return coreresult.Failure[string](err.Error())
	}

	// StateAwaitingStatus
	result := o.classify(ctx, session, message)
	switch result.State {
	case coreresult.StateSuccess:
		finish(coordinator.OutboundSent)
	case coreresult.StateFailure:
		finish(coordinator.OutboundFailed)
	default:
		finish(coordinator.OutboundRetrying)
	}
	return result
}

func (o *Orchestrator) locateInputField(ctx context.Context, session browser.Session) (coreresult.Result[bool], error) {
	families := o.ui.Families().InputField
	for _, rule := range families {
		el, err := session.QuerySelector(ctx, rule.Kind, rule.Pattern)
		if err != nil {
			return coreresult.Result[bool]{}, err
		}
		if el != nil {
			return coreresult.Success(true, "input field found"), nil
		}
	}
	return coreresult.Waiting[bool]("input field not visible yet"), nil
}

// clickSendOrFallback attempts the first-match send button; if none is
// found, it presses Enter on the focused input exactly once.
func (o *Orchestrator) clickSendOrFallback(ctx context.Context, session browser.Session) error {
	families := o.ui.Families()
	for _, rule := range families.SendButton {
		el, err := session.QuerySelector(ctx, rule.Kind, rule.Pattern)
		if err != nil {
			return err
		}
		if el != nil {
			return session.Click(ctx, rule.Kind, rule.Pattern)
		}
	}

	input := families.InputField[0]
	return session.Press(ctx, input.Kind, input.Pattern, "Enter")
}

// classify runs the classification phase: polling
// GetLastOutgoingMessageStatus while ContinuousMonitoring watches for a
// mid-send disruption in parallel.
func (o *Orchestrator) classify(ctx context.Context, session browser.Session, sentText string) coreresult.Result[string] {
	classifyCtx, cancel := context.WithTimeout(ctx, o.cfg.StatusClassificationTimeout)
	defer cancel()

	disruption := make(chan coreresult.Result[bool], 1)
	go func() {
		if result, ok := o.ui.ContinuousMonitoring(classifyCtx, session, o.cfg.SelectorPollInterval, o.cfg.StatusClassificationTimeout); ok {
			disruption <- result
		}
	}()

	ticker := time.NewTicker(o.cfg.SelectorPollInterval)
	defer ticker.Stop()

	for {
		status := o.ui.GetLastOutgoingMessageStatus(classifyCtx, session, sentText)
		if !status.IsEmpty() {
			if o.ui.IsTerminalDeliveryIcon(status.IconKey) {
				return coreresult.Success(string(status.IconKey), "message delivered")
			}
			// A spinner/clock icon (unsent) is not terminal; keep polling.
		}

		select {
		case d := <-disruption:
			return retag[string](d)
		case <-classifyCtx.Done():
			return coreresult.Waiting[string]("No status icon found")
		case <-ticker.C:
		}
	}
}

func (o *Orchestrator) pauseIfTiered(ctx context.Context, moderatorID string, result coreresult.Result[bool]) {
	if result.State != coreresult.StatePendingQR && result.State != coreresult.StatePendingNET {
		return
	}
	o.pauseForTier(ctx, moderatorID, "system", retag[string](result))
}

// toBool re-tags a string-valued result as bool-valued for
// CheckWhatsAppNumber's contract, carrying no Data on non-success states.
func toBool(r coreresult.Result[string]) coreresult.Result[bool] {
	return coreresult.Result[bool]{State: r.State, Message: r.Message}
}

// retag changes a Result's type parameter while preserving State/Message;
// Data is never meaningful outside StateSuccess so dropping it is safe.
func retag[T any](r coreresult.Result[bool]) coreresult.Result[T] {
	return coreresult.Result[T]{State: r.State, Message: r.Message}
}
