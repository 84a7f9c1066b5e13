// Package ui hides every fragility of the remote WhatsApp-Web DOM behind
// semantic operations. Selector families are immutable configuration,
// loaded once at startup, never hard-coded inline in the orchestrator.
package ui

import (
	"context"

	"clinicwa/internal/core/browser"
)

// SelectorRule is one (kind, pattern) alternative within a SelectorFamily.
type SelectorRule struct {
	Kind    browser.SelectorKind
	Pattern string
}

// SelectorFamily is an ordered, first-match-wins list of alternative
// selectors for one semantic DOM target.
type SelectorFamily []SelectorRule

// Families bundles every selector family the UI layer needs to recognize.
// Families are independent of one another.
type Families struct {
	PageReady      SelectorFamily
	InputField     SelectorFamily
	SendButton     SelectorFamily
	AuthQR         SelectorFamily
	ErrorDialog    SelectorFamily
	StatusIcon     SelectorFamily
	OutgoingBubble SelectorFamily
}

// IconKey is a semantic token extracted from a status-icon marker, e.g.
// "msg-check", "msg-dblcheck", "msg-time".
type IconKey string

const (
	IconCheck    IconKey = "msg-check"
	IconDblCheck IconKey = "msg-dblcheck"
	IconTime     IconKey = "msg-time"
	IconNone     IconKey = ""
)

// DefaultFamilies returns the standard selector families for WhatsApp Web.
// Multiple alternatives per family absorb DOM churn without requiring an
// orchestrator change; this is ordinary startup configuration, not a
// hard-coded brittle selector.
func DefaultFamilies() Families {
	return Families{
		PageReady: SelectorFamily{
			{Kind: browser.SelectorCSS, Pattern: `div[data-testid="chat-list"]`},
			{Kind: browser.SelectorCSS, Pattern: `div#pane-side`},
			{Kind: browser.SelectorXPath, Pattern: `//div[@id='pane-side']`},
		},
		InputField: SelectorFamily{
			{Kind: browser.SelectorCSS, Pattern: `div[data-testid="conversation-compose-box-input"]`},
			{Kind: browser.SelectorCSS, Pattern: `footer div[contenteditable="true"]`},
			{Kind: browser.SelectorXPath, Pattern: `//footer//div[@contenteditable='true']`},
		},
		SendButton: SelectorFamily{
			{Kind: browser.SelectorCSS, Pattern: `button[data-testid="compose-btn-send"]`},
			{Kind: browser.SelectorCSS, Pattern: `span[data-testid="send"]`},
			{Kind: browser.SelectorXPath, Pattern: `//button[@aria-label='Send']`},
		},
		AuthQR: SelectorFamily{
			{Kind: browser.SelectorCSS, Pattern: `div[data-testid="qrcode"]`},
			{Kind: browser.SelectorCSS, Pattern: `canvas[aria-label="Scan this QR code to link a device!"]`},
		},
		ErrorDialog: SelectorFamily{
			{Kind: browser.SelectorCSS, Pattern: `div[data-testid="popup-contents"]`},
			{Kind: browser.SelectorText, Pattern: `Phone number shared via url is invalid`},
		},
		StatusIcon: SelectorFamily{
			{Kind: browser.SelectorCSS, Pattern: `span[data-icon="msg-check"]`},
			{Kind: browser.SelectorCSS, Pattern: `span[data-icon="msg-dblcheck"]`},
			{Kind: browser.SelectorCSS, Pattern: `span[data-icon="msg-time"]`},
		},
		OutgoingBubble: SelectorFamily{
			{Kind: browser.SelectorCSS, Pattern: `div.message-out`},
			{Kind: browser.SelectorXPath, Pattern: `//div[contains(@class,'message-out')]`},
		},
	}
}

// firstMatch tries each rule in order, returning the first element found.
func firstMatch(ctx context.Context, session browser.Session, family SelectorFamily) (browser.ElementHandle, *SelectorRule, error) {
	for i := range family {
		rule := family[i]
		el, err := session.QuerySelector(ctx, rule.Kind, rule.Pattern)
		if err != nil {
			return nil, nil, err
		}
		if el != nil {
			return el, &rule, nil
		}
	}
	return nil, nil, nil
}
