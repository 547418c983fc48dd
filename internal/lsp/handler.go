package lsp

import (
	"log"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gorpl/internal/lexer"
)

// SemanticTokenTypes is the legend of token types this server reports.
var SemanticTokenTypes = []string{
	"keyword",
	"number",
	"operator",
}

// SemanticTokenModifiers is the legend of token modifiers (none are used,
// but the legend must be advertised).
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// Handler implements the LSP server handlers for RPL sources. Documents are
// tracked from the client's full-sync notifications; every change is re-lexed
// and re-parsed to publish diagnostics.
type Handler struct {
	mu      sync.RWMutex
	content map[protocol.DocumentUri]string
}

// NewHandler creates an empty handler.
func NewHandler() *Handler {
	return &Handler{
		content: make(map[protocol.DocumentUri]string),
	}
}

// Initialize advertises the server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized completes the LSP handshake.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("gorpl LSP initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("gorpl LSP shutdown")
	return nil
}

// SetTrace accepts trace-level changes without acting on them.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen stores the opened document and publishes diagnostics.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	h.setContent(params.TextDocument.URI, params.TextDocument.Text)
	h.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

// TextDocumentDidChange applies a full-document sync and re-publishes
// diagnostics.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			h.setContent(params.TextDocument.URI, whole.Text)
		}
	}
	h.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

// TextDocumentDidClose forgets the document.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, params.TextDocument.URI)
	return nil
}

// TextDocumentCompletion offers the keyword and operator vocabulary.
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(),
	}, nil
}

// TextDocumentSemanticTokensFull classifies the whole document from its
// token stream.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	source, ok := h.getContent(params.TextDocument.URI)
	if !ok {
		return &protocol.SemanticTokens{}, nil
	}

	tokens, err := lexer.New(source).Lex()
	if err != nil {
		// A lexical error leaves the document without token highlighting;
		// the diagnostics channel already reports it.
		return &protocol.SemanticTokens{}, nil
	}

	return &protocol.SemanticTokens{Data: EncodeSemanticTokens(tokens)}, nil
}

func (h *Handler) setContent(uri protocol.DocumentUri, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.content[uri] = text
}

func (h *Handler) getContent(uri protocol.DocumentUri) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	text, ok := h.content[uri]
	return text, ok
}

func (h *Handler) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri) {
	source, ok := h.getContent(uri)
	if !ok {
		return
	}

	diagnostics := Diagnose(source)
	log.Printf("Publishing %d diagnostics for %s\n", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func completionItems() []protocol.CompletionItem {
	keywordKind := protocol.CompletionItemKindKeyword
	operatorKind := protocol.CompletionItemKindOperator

	var items []protocol.CompletionItem
	for word := range lexer.Keywords {
		w := word
		items = append(items, protocol.CompletionItem{
			Label: w,
			Kind:  &keywordKind,
		})
	}
	for _, op := range []string{"<<", ">>", "+", "-", "*", "/", "^", ">", "<", ">=", "<=", "==", "!="} {
		items = append(items, protocol.CompletionItem{
			Label: op,
			Kind:  &operatorKind,
		})
	}
	return items
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
