package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"github.com/mgomes/asmlight/asm6502"
)

// semanticTokenTypes is the legend advertised to clients. Kinds missing from
// semanticTokenIndex are not reported as semantic tokens.
var semanticTokenTypes = []string{"comment", "operator", "label", "variable", "keyword", "macro", "number"}

var semanticTokenIndex = map[asm6502.TokenKind]int{
	asm6502.CommentSingle:      0,
	asm6502.Punctuation:        1,
	asm6502.NameTag:            2,
	asm6502.NameOther:          3,
	asm6502.KeywordDeclaration: 4,
	asm6502.CommentPreproc:     5,
	asm6502.LiteralNumber:      6,
}

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspTextDocumentParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	logger logr.Logger
	docs   map[string]string
}

func lspCommand(args []string) error {
	fs := flag.NewFlagSet("lsp", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	debug := fs.Bool("debug", false, "log lexer decisions to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, flush, err := newLogger("lsp", *debug)
	if err != nil {
		return err
	}
	defer flush()

	server := &lspServer{
		reader: bufio.NewReader(os.Stdin),
		writer: bufio.NewWriter(os.Stdout),
		logger: logger,
		docs:   make(map[string]string),
	}
	return server.serve()
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			continue
		}

		messages := s.handleMessage(incoming)
		for _, msg := range messages {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
						"completionProvider": map[string]any{
							"resolveProvider": false,
						},
						"semanticTokensProvider": map[string]any{
							"legend": map[string]any{
								"tokenTypes":     semanticTokenTypes,
								"tokenModifiers": []string{},
							},
							"full": true,
						},
					},
					"serverInfo": map[string]any{
						"name": "asmlight",
					},
				},
			},
		}
	case "initialized":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
	case "exit":
		return nil
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/didClose":
		var params lspTextDocumentParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		delete(s.docs, params.TextDocument.URI)
		return nil
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"isIncomplete": false,
					"items":        completionItems(),
				},
			},
		}
	case "textDocument/semanticTokens/full":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid semantic tokens params"},
				},
			}
		}
		source := s.docs[params.TextDocument.URI]
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"data": semanticTokens(source, asm6502.Tokenize(source)),
				},
			},
		}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid hover params"},
				},
			}
		}
		source := s.docs[params.TextDocument.URI]
		tok, ok := tokenAtPosition(source, params.Position.Line, params.Position.Character)
		if !ok {
			return []lspOutboundMessage{
				{JSONRPC: "2.0", ID: incoming.ID, Result: nil},
			}
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": hoverText(tok),
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error: &lspResponseError{
					Code:    -32601,
					Message: "method not found",
				},
			},
		}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(source, s.logger.WithValues("uri", uri)),
		},
	}
}

func diagnosticsForSource(source string, logger logr.Logger) []map[string]any {
	file := lexSource("", source, logger)
	out := make([]map[string]any, 0, len(file.issues))
	for _, issue := range file.issues {
		line := issue.Pos.Line - 1
		character := utf16Column(source, issue.Pos.Offset)
		width := len(utf16.Encode([]rune(issue.Text)))
		out = append(out, newDiagnostic(line, character, width, fmt.Sprintf("unrecognized input %q in state %s", issue.Text, issue.State)))
	}
	return out
}

func newDiagnostic(line, character, width int, message string) map[string]any {
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + width,
			},
		},
		"severity": 2,
		"source":   "asmlight",
		"message":  message,
	}
}

func completionItems() []map[string]any {
	names := sortedMnemonics()
	items := make([]map[string]any, 0, len(names))
	for _, name := range names {
		items = append(items, map[string]any{
			"label":  name,
			"kind":   14, // Keyword
			"detail": mnemonicDocs[name],
		})
	}
	return items
}

// semanticTokens encodes tokens in the LSP relative format: delta line,
// delta start, length, type, modifiers.
func semanticTokens(source string, tokens []asm6502.Token) []int {
	data := make([]int, 0)
	prevLine, prevChar := 0, 0
	for _, tok := range tokens {
		idx, ok := semanticTokenIndex[tok.Kind]
		if !ok || tok.Text == "" {
			continue
		}
		line := tok.Pos.Line - 1
		char := utf16Column(source, tok.Pos.Offset)
		deltaChar := char
		if line == prevLine {
			deltaChar = char - prevChar
		}
		length := len(utf16.Encode([]rune(tok.Text)))
		data = append(data, line-prevLine, deltaChar, length, idx, 0)
		prevLine, prevChar = line, char
	}
	return data
}

func hoverText(tok asm6502.Token) string {
	text := fmt.Sprintf("`%s`\n\n%s", tok.Text, tok.Kind)
	if tok.Kind == asm6502.KeywordDeclaration {
		if desc, ok := describeMnemonic(tok.Text); ok {
			text += ": " + desc
		}
	}
	return text
}

// tokenAtPosition returns the non-empty, non-whitespace token covering the
// LSP position (0-based line, UTF-16 character).
func tokenAtPosition(source string, line, character int) (asm6502.Token, bool) {
	offset, ok := offsetAt(source, line, character)
	if !ok {
		return asm6502.Token{}, false
	}
	for _, tok := range asm6502.Tokenize(source) {
		if tok.Text == "" || tok.Kind == asm6502.Whitespace {
			continue
		}
		if offset >= tok.Pos.Offset && offset < tok.End() {
			return tok, true
		}
		if tok.Pos.Offset > offset {
			break
		}
	}
	return asm6502.Token{}, false
}

// offsetAt converts a 0-based line and UTF-16 character into a byte offset.
func offsetAt(source string, line, character int) (int, bool) {
	if line < 0 || character < 0 {
		return 0, false
	}
	start := 0
	for i := 0; i < line; i++ {
		next := strings.IndexByte(source[start:], '\n')
		if next < 0 {
			return 0, false
		}
		start += next + 1
	}

	offset := start
	units := 0
	for offset < len(source) && source[offset] != '\n' && units < character {
		r, size := utf8.DecodeRuneInString(source[offset:])
		units += utf16.RuneLen(r)
		offset += size
	}
	return offset, true
}

// utf16Column returns the UTF-16 column of a byte offset within its line.
func utf16Column(source string, offset int) int {
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	units := 0
	for _, r := range source[lineStart:offset] {
		units += utf16.RuneLen(r)
	}
	return units
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
