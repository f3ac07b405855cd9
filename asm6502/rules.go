package asm6502

import (
	"fmt"
	"regexp"
)

// rule is one pattern of a state. A rule with groups emits one token per
// capture group; otherwise it emits a single token of kind for the whole match.
// A rule with neither emits nothing.
type rule struct {
	pattern *regexp.Regexp
	kind    TokenKind
	emits   bool
	groups  []TokenKind
	next    State
	// guard, when set, must accept the cursor before the pattern is tried.
	guard func(*Lexer) bool
}

// entry is a declared grammar line: either a rule or an include of another
// state's entries.
type entry struct {
	rule    *rule
	include State
}

type stateDef struct {
	entries  []entry
	fallback *rule
}

type ruleSet struct {
	rules     [numStates][]*rule
	fallbacks [numStates]*rule
}

func anchored(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)\A(?:` + pattern + `)`)
}

func token(pattern string, kind TokenKind, next State) entry {
	return entry{rule: &rule{pattern: anchored(pattern), kind: kind, emits: true, next: next}}
}

func groups(pattern string, next State, kinds ...TokenKind) entry {
	re := anchored(pattern)
	if re.NumSubexp() != len(kinds) {
		panic(fmt.Sprintf("asm6502: pattern %q has %d groups, %d kinds given", pattern, re.NumSubexp(), len(kinds)))
	}
	return entry{rule: &rule{pattern: re, groups: kinds, next: next}}
}

func guarded(e entry, g func(*Lexer) bool) entry {
	e.rule.guard = g
	return e
}

func include(s State) entry {
	return entry{include: s}
}

const defaultPattern = `.*?`

var grammar = map[State]stateDef{
	StateRoot: {entries: []entry{
		include(StateWhitespace),
		include(StateComment),
		include(StateAddress),
		include(StateInstruction),
		include(StateLabel),
	}},
	StateWhitespace: {entries: []entry{
		token(`\s+`, Whitespace, stay),
	}},
	StateComment: {entries: []entry{
		token(`;.*$`, CommentSingle, StateRoot),
		// an empty end of line is how every other state returns to root
		token(`$`, Whitespace, StateRoot),
		include(StateWhitespace),
	}},
	StateLabel: {entries: []entry{
		include(StateWhitespace),
		guarded(groups(`(@?\w*)?(:)`, StateComment, NameTag, Punctuation), (*Lexer).colonAhead),
	}},
	StateAddress: {entries: []entry{
		include(StateWhitespace),
		include(StateComment),
		groups(`([0-9A-Fa-f]{4})(:)`, StateByte, NameOther, Punctuation),
	}},
	StateByte: {
		entries: []entry{
			include(StateWhitespace),
			include(StateComment),
			groups(`([0-9A-Fa-f]{2})\b`, stay, CommentPreproc),
		},
		fallback: token(defaultPattern, Whitespace, StateInstruction).rule,
	},
	// No fallback: every address line needs an instruction.
	StateInstruction: {entries: []entry{
		include(StateComment),
		groups(`([A-Z]{3}|[a-z]{3})(\*?)\b`, StateOperand, KeywordDeclaration, Punctuation),
		include(StateWhitespace),
	}},
	StateOperand: {entries: []entry{
		include(StateComment),
		token(`[\$#]+[0-9A-Fa-f]+`, LiteralNumber, StateComment),
		groups(`(@?)([a-zA-Z]+)?`, StateOffset, NameTag, NameOther),
	}},
	StateOffset: {
		entries: []entry{
			groups(`(\+)(\d+)`, StateComment, NameTag, LiteralNumber),
		},
		fallback: &rule{pattern: anchored(defaultPattern), next: StateComment},
	},
}

var rules = mustBuildRuleSet(grammar)

// mustBuildRuleSet flattens includes once so the lexer only walks plain rule
// lists. Included states contribute their entries, not their fallbacks.
func mustBuildRuleSet(defs map[State]stateDef) *ruleSet {
	rs := &ruleSet{}
	for s := State(0); s < numStates; s++ {
		def, ok := defs[s]
		if !ok {
			panic(fmt.Sprintf("asm6502: no rules declared for state %s", s))
		}
		rs.rules[s] = flatten(defs, s, nil)
		rs.fallbacks[s] = def.fallback
	}
	return rs
}

func flatten(defs map[State]stateDef, s State, visiting []State) []*rule {
	for _, v := range visiting {
		if v == s {
			panic(fmt.Sprintf("asm6502: state %s includes itself", s))
		}
	}
	visiting = append(visiting, s)

	var out []*rule
	for _, e := range defs[s].entries {
		if e.rule != nil {
			out = append(out, e.rule)
			continue
		}
		out = append(out, flatten(defs, e.include, visiting)...)
	}
	return out
}
