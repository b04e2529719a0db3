package popup

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/hoverline/internal/element"
	"github.com/dshills/hoverline/internal/view"
)

// Content returns the trailing-text window for the caret's block: the
// block text up to the caret, capped to the configured window, with
// non-text inline content as Placeholder runes. It reports ok=false when
// any precondition fails (focus, editability, collapsed caret, matching
// block) — "not applicable here", distinct from an empty string.
//
// A nil match uses the provider's configured matcher.
func (p *Provider) Content(v view.View, match view.BlockMatcher) (string, bool) {
	p.mu.Lock()
	el := p.opts.Element
	env := p.opts.Env
	window := p.opts.TextWindow
	if match == nil {
		match = p.opts.Match
	}
	p.mu.Unlock()

	return trailingText(v, el, env, match, window)
}

// defaultShouldShow is the built-in visibility predicate: the trailing
// text window must end with one of the configured trigger characters.
// The precondition checks short-circuit in a fixed order for efficiency;
// all of them are required.
func (p *Provider) defaultShouldShow(v view.View) bool {
	p.mu.Lock()
	el := p.opts.Element
	env := p.opts.Env
	match := p.opts.Match
	window := p.opts.TextWindow
	triggers := p.opts.Triggers
	p.mu.Unlock()

	text, ok := trailingText(v, el, env, match, window)
	if !ok || text == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(text)
	return strings.ContainsRune(triggers, last)
}

func trailingText(v view.View, el element.Element, env element.Environment, match view.BlockMatcher, window int) (string, bool) {
	if v == nil {
		return "", false
	}

	// Focus may rest on the popup itself (e.g. while filtering menu
	// items) or on the editor surface.
	focused := v.Focused()
	if !focused && env != nil {
		focused = env.FocusWithin(el)
	}
	if !focused {
		return "", false
	}
	if !v.Editable() {
		return "", false
	}
	if _, ok := v.State().Selection.Caret(); !ok {
		return "", false
	}
	blk, ok := v.AncestorBlock(match)
	if !ok {
		return "", false
	}

	text := blk.TextBefore(Placeholder)
	if runes := []rune(text); len(runes) > window {
		text = string(runes[len(runes)-window:])
	}
	return text, true
}
