package asm6502

import (
	"maps"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kindText struct {
	Kind TokenKind
	Text string
}

func simplify(tokens []Token) []kindText {
	out := make([]kindText, len(tokens))
	for i, tok := range tokens {
		out[i] = kindText{tok.Kind, tok.Text}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Tokens []kindText
		State  State
	}{
		{
			Name:  "comment",
			Input: "; hello\n",
			Tokens: []kindText{
				{CommentSingle, "; hello"},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "immediate-operand",
			Input: "LDA #$01\n",
			Tokens: []kindText{
				{KeywordDeclaration, "LDA"},
				{Punctuation, ""},
				{Whitespace, " "},
				{LiteralNumber, "#$01"},
				{Whitespace, ""},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "address-and-bytes",
			Input: "0600: A9 01\n",
			Tokens: []kindText{
				{NameOther, "0600"},
				{Punctuation, ":"},
				{Whitespace, " "},
				{CommentPreproc, "A9"},
				{Whitespace, " "},
				{CommentPreproc, "01"},
				{Whitespace, "\n"},
			},
			State: StateByte,
		},
		{
			Name:  "label",
			Input: "loop:\n",
			Tokens: []kindText{
				{NameTag, "loop"},
				{Punctuation, ":"},
				{Whitespace, ""},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "local-label-with-comment",
			Input: "@inner: ; loop body\n",
			Tokens: []kindText{
				{NameTag, "@inner"},
				{Punctuation, ":"},
				{Whitespace, " "},
				{CommentSingle, "; loop body"},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "listing-line",
			Input: "c000: 4c 00 c0  jmp $c000 ; loop forever\n",
			Tokens: []kindText{
				{NameOther, "c000"},
				{Punctuation, ":"},
				{Whitespace, " "},
				{CommentPreproc, "4c"},
				{Whitespace, " "},
				{CommentPreproc, "00"},
				{Whitespace, " "},
				{CommentPreproc, "c0"},
				{Whitespace, "  "},
				{Whitespace, ""},
				{KeywordDeclaration, "jmp"},
				{Punctuation, ""},
				{Whitespace, " "},
				{LiteralNumber, "$c000"},
				{Whitespace, " "},
				{CommentSingle, "; loop forever"},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "symbolic-operand-with-offset",
			Input: "JMP @loop+3\n",
			Tokens: []kindText{
				{KeywordDeclaration, "JMP"},
				{Punctuation, ""},
				{Whitespace, " "},
				{NameTag, "@"},
				{NameOther, "loop"},
				{NameTag, "+"},
				{LiteralNumber, "3"},
				{Whitespace, ""},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "symbolic-operand-without-offset",
			Input: "bne loop\n",
			Tokens: []kindText{
				{KeywordDeclaration, "bne"},
				{Punctuation, ""},
				{Whitespace, " "},
				{NameTag, ""},
				{NameOther, "loop"},
				{Whitespace, ""},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "implied-operand",
			Input: "RTS\n",
			Tokens: []kindText{
				{KeywordDeclaration, "RTS"},
				{Punctuation, ""},
				{Whitespace, ""},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "address-without-mnemonic",
			Input: "0600: EA\n.\n",
			Tokens: []kindText{
				{NameOther, "0600"},
				{Punctuation, ":"},
				{Whitespace, " "},
				{CommentPreproc, "EA"},
				{Whitespace, "\n"},
				{Whitespace, ""},
				{Unrecognized, "."},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "mixed-case-mnemonic",
			Input: "Lda\n",
			Tokens: []kindText{
				{Unrecognized, "L"},
				{Unrecognized, "d"},
				{Unrecognized, "a"},
				{Whitespace, "\n"},
			},
			State: StateRoot,
		},
		{
			Name:  "word-run-before-label",
			Input: "ab@cd:",
			Tokens: []kindText{
				{Unrecognized, "a"},
				{Unrecognized, "b"},
				{NameTag, "@cd"},
				{Punctuation, ":"},
			},
			State: StateComment,
		},
		{
			Name:   "empty",
			Input:  "",
			Tokens: []kindText{},
			State:  StateRoot,
		},
	}

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			l := NewLexer(tc.Input, Config{})
			var got []Token
			for tok := range l.All() {
				got = append(got, tok)
			}
			assert.Equal(t, tc.Tokens, simplify(got))
			assert.Equal(t, tc.State, l.State())
		})
	}
}

func TestLongWordRunIsLinear(t *testing.T) {
	input := strings.Repeat("x", 50_000)

	start := time.Now()
	tokens := Tokenize(input)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("tokenizing a %d byte word took %s", len(input), elapsed)
	}

	// every x is unrecognized except the last three, which read as a mnemonic
	require.Len(t, tokens, len(input)-1)
	assert.Equal(t, kindText{Unrecognized, "x"}, kindText{tokens[0].Kind, tokens[0].Text})
	last := tokens[len(tokens)-2]
	assert.Equal(t, kindText{KeywordDeclaration, "xxx"}, kindText{last.Kind, last.Text})
}

func TestColonAheadAgreesWithLabelPattern(t *testing.T) {
	label := rules.rules[StateLabel][1]
	require.NotNil(t, label.guard)

	inputs := []string{"", ":", "@", "@:", "@@:", "abc", "abc:", "@abc:", "ab_9:", "a b:", "λ:", "x\n:", "loop: rts"}
	for _, input := range inputs {
		l := NewLexer(input, Config{})
		want := label.pattern.MatchString(input)
		assert.Equal(t, want, l.colonAhead(), "input %q", input)
	}
}

// newLexerWithRules returns a lexer over a rule set where every state not in
// overrides is empty.
func newLexerWithRules(input string, overrides map[State]stateDef) *Lexer {
	defs := make(map[State]stateDef, numStates)
	for s := State(0); s < numStates; s++ {
		defs[s] = stateDef{}
	}
	maps.Copy(defs, overrides)

	l := NewLexer(input, Config{})
	l.rules = mustBuildRuleSet(defs)
	return l
}

func TestZeroWidthMatchWithoutTransitionIsSkipped(t *testing.T) {
	l := newLexerWithRules("ab", map[State]stateDef{
		StateRoot: {entries: []entry{
			token(`x*`, Whitespace, stay),
			token(`a`, NameTag, stay),
		}},
	})

	var got []Token
	for tok := range l.All() {
		got = append(got, tok)
	}
	assert.Equal(t, []kindText{{NameTag, "a"}, {Unrecognized, "b"}}, simplify(got))
	require.Len(t, l.Errors(), 1)
	assert.Equal(t, StateRoot, l.Errors()[0].State)
}

func TestZeroWidthTransitionLoopIsCapped(t *testing.T) {
	l := newLexerWithRules("a", map[State]stateDef{
		StateRoot:       {entries: []entry{token(``, Whitespace, StateWhitespace)}},
		StateWhitespace: {entries: []entry{token(``, Whitespace, StateRoot)}},
	})

	var got []Token
	for tok := range l.All() {
		got = append(got, tok)
	}
	require.Len(t, got, numStates+2)
	for _, tok := range got[:numStates+1] {
		assert.Equal(t, kindText{Whitespace, ""}, kindText{tok.Kind, tok.Text})
	}
	assert.Equal(t, kindText{Unrecognized, "a"}, kindText{got[numStates+1].Kind, got[numStates+1].Text})
	require.Len(t, l.Errors(), 1)
	assert.Equal(t, Position{Offset: 1, Line: 1, Column: 2}, l.Pos())
}

func TestTokenizePositions(t *testing.T) {
	tokens := Tokenize("loop:\n  LDA #$01\n")
	require.GreaterOrEqual(t, len(tokens), 5)

	lda := tokens[4]
	require.Equal(t, KeywordDeclaration, lda.Kind)
	assert.Equal(t, Position{Offset: 8, Line: 2, Column: 3}, lda.Pos)
	assert.Equal(t, 11, lda.End())
}

func TestLexerErrors(t *testing.T) {
	l := NewLexer("0600: EA\n.\n", Config{})
	for range l.All() {
	}

	errs := l.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, StateInstruction, errs[0].State)
	assert.Equal(t, Position{Offset: 9, Line: 2, Column: 1}, errs[0].Pos)
	assert.Equal(t, ".", errs[0].Text)
	assert.Contains(t, errs[0].Error(), `unrecognized input "." at 2:1 in state instruction`)
}

func TestUnrecognizedSpansWholeRune(t *testing.T) {
	tokens := Tokenize("λ\n")
	require.Len(t, tokens, 2)
	assert.Equal(t, kindText{Unrecognized, "λ"}, kindText{tokens[0].Kind, tokens[0].Text})
	assert.Equal(t, 2, tokens[1].Pos.Column)
}

func TestLexerNextAfterExhaustion(t *testing.T) {
	l := NewLexer("nop", Config{})
	for range l.All() {
	}
	if _, ok := l.Next(); ok {
		t.Fatalf("expected exhausted lexer to stay exhausted")
	}
}

func TestAllStopsWhenConsumerStops(t *testing.T) {
	l := NewLexer("; one\n; two\n", Config{})
	for range l.All() {
		break
	}
	tok, ok := l.Next()
	if !ok {
		t.Fatalf("expected remaining tokens after early break")
	}
	if tok.Kind != Whitespace || tok.Text != "\n" {
		t.Fatalf("unexpected token after break: %+v", tok)
	}
}

const sampleProgram = `; clear the screen
*=$0600
start:
  LDX #$00
@loop:
  LDA #$20
  STA $0400,X
  INX
  BNE @loop+0
  rts
0600: a2 00     LDX #$00
0602: a9 20     lda #$20
0604: 9d 00 04  STA $0400,X
0607: e8        INX
0608: d0 f8     BNE @loop
060a: 60        RTS ; done
	brk	; tabbed
`

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		sampleProgram,
		strings.ReplaceAll(sampleProgram, "\n", "\r\n"),
		"0600:\n0602: EA NOP\n",
		"LDA ($20),Y\n",
		"no newline at end",
	}
	for _, input := range inputs {
		tokens := Tokenize(input)
		var b strings.Builder
		offset := 0
		for i, tok := range tokens {
			if tok.Pos.Offset != offset {
				t.Fatalf("input %q: token %d starts at %d, want %d", input, i, tok.Pos.Offset, offset)
			}
			b.WriteString(tok.Text)
			offset = tok.End()
		}
		if b.String() != input {
			t.Fatalf("round trip mismatch:\nwant %q\ngot  %q", input, b.String())
		}
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	first := Tokenize(sampleProgram)
	second := Tokenize(sampleProgram)
	assert.Equal(t, first, second)
}

func TestTokenizeConcurrentCallsAgree(t *testing.T) {
	want := Tokenize(sampleProgram)
	results := make(chan []Token, 8)
	for i := 0; i < cap(results); i++ {
		go func() {
			results <- Tokenize(sampleProgram)
		}()
	}
	for i := 0; i < cap(results); i++ {
		assert.Equal(t, want, <-results)
	}
}

func FuzzTokenizeRoundTrip(f *testing.F) {
	f.Add("")
	f.Add(sampleProgram)
	f.Add("0600: A9 01\n")
	f.Add("0600:\n0602:")
	f.Add("JMP @x+")
	f.Add("\xff\xfe;")

	f.Fuzz(func(t *testing.T, input string) {
		var b strings.Builder
		offset := 0
		for _, tok := range Tokenize(input) {
			if tok.Pos.Offset != offset {
				t.Fatalf("gap or overlap at %d (token starts at %d)", offset, tok.Pos.Offset)
			}
			b.WriteString(tok.Text)
			offset = tok.End()
		}
		if b.String() != input {
			t.Fatalf("round trip mismatch for %q", input)
		}
	})
}
