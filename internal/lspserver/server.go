// Package lspserver implements a Language Server Protocol server for
// OpenSCAD, publishing scadast diagnostics on document open/change/save.
// Adapted from the teacher's pkg/uast/lsp (a mapping-DSL completion/hover
// server with a stubbed-empty publishDiagnostics) into a real diagnostics
// publisher backed by the scadast compiler, plus hover showing the AST
// node under the cursor instead of mapping-DSL keyword docs.
package lspserver

import (
	"log"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/openscad-lang/scadast/pkg/scadast"
)

const serverName = "scadast"

// DocumentStore is a thread-safe store for document contents keyed by URI.
type DocumentStore struct {
	documents map[string]string
	mu        sync.RWMutex
}

// NewDocumentStore creates a new empty DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{documents: make(map[string]string)}
}

// Set stores document content for the given URI.
func (ds *DocumentStore) Set(uri, content string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.documents[uri] = content
}

// Get retrieves document content by URI.
func (ds *DocumentStore) Get(uri string) (string, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	content, ok := ds.documents[uri]

	return content, ok
}

// Delete removes document content by URI.
func (ds *DocumentStore) Delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.documents, uri)
}

// Server implements the OpenSCAD LSP server.
type Server struct {
	store     *DocumentStore
	sessions  *SessionTracker
	handler   protocol.Handler
	newParser func() (*scadast.Parser, error)
}

// NewServer creates a new OpenSCAD LSP server with default handlers. The
// parser factory is injectable so tests can substitute a fake-CST parser
// without linking the real tree-sitter grammar.
func NewServer(newParser func() (*scadast.Parser, error)) *Server {
	if newParser == nil {
		newParser = scadast.NewParser
	}

	srv := &Server{store: NewDocumentStore(), sessions: NewSessionTracker(), newParser: newParser}

	srv.handler = protocol.Handler{
		Initialize:            srv.initialize,
		Initialized:           srv.initialized,
		Shutdown:              srv.shutdown,
		SetTrace:              srv.setTrace,
		TextDocumentDidOpen:   srv.didOpen,
		TextDocumentDidChange: srv.didChange,
		TextDocumentDidSave:   srv.didSave,
		TextDocumentDidClose:  srv.didClose,
		TextDocumentHover:     srv.hover,
	}

	return srv
}

// Run starts the LSP server on stdio.
func (srv *Server) Run() {
	lspServer := server.NewServer(&srv.handler, serverName, false)

	err := lspServer.RunStdio()
	if err != nil {
		log.Printf("LSP server error: %v", err)
	}
}

func (srv *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := srv.handler.CreateServerCapabilities()
	version := "0.1.0"

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (srv *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (srv *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

func (srv *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

func (srv *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	text := params.TextDocument.Text

	sessionID := srv.sessions.Open(uri)
	log.Printf("session %s opened for %s", sessionID, uri)

	srv.store.Set(uri, text)
	srv.publishDiagnostics(ctx, uri, text)

	return nil
}

func (srv *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	if len(params.ContentChanges) > 0 {
		if change, changeOK := params.ContentChanges[0].(map[string]any); changeOK {
			if text, textOK := change["text"].(string); textOK {
				srv.store.Set(uri, text)
				srv.publishDiagnostics(ctx, uri, text)
			}
		}
	}

	return nil
}

func (srv *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	if text, ok := srv.store.Get(uri); ok {
		srv.publishDiagnostics(ctx, uri, text)
	}

	return nil
}

func (srv *Server) didClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	srv.store.Delete(uri)
	srv.sessions.Close(uri)

	return nil
}

// hover shows the kind of the top-level statement whose line range contains
// the cursor, standing in for the teacher's mapping-DSL keyword docs.
func (srv *Server) hover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	pos := params.Position

	text, ok := srv.store.Get(uri)
	if !ok {
		return nil, nil
	}

	parser, err := srv.newParser()
	if err != nil {
		return nil, nil
	}
	defer parser.Close()

	file, err := parser.Parse([]byte(text))
	if err != nil {
		return nil, nil
	}

	line := uint(pos.Line) + 1

	stmt := statementAtLine(file.Statements, line)
	if stmt == nil {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "`" + string(stmt.Kind) + "`",
		},
	}, nil
}

func statementAtLine(stmts []scadast.Statement, line uint) *scadast.Statement {
	for i := range stmts {
		if line >= stmts[i].Span.Start.Line && line <= stmts[i].Span.End.Line {
			return &stmts[i]
		}
	}

	return nil
}

// publishDiagnostics parses text and notifies the client of every
// scadast.Diagnostic, translating scadast's 1-based line/column into the
// LSP's 0-based Position.
func (srv *Server) publishDiagnostics(ctx *glsp.Context, uri, text string) {
	diags := []protocol.Diagnostic{}

	parser, err := srv.newParser()
	if err == nil {
		defer parser.Close()

		file, parseErr := parser.Parse([]byte(text))
		if parseErr == nil {
			diags = make([]protocol.Diagnostic, 0, len(file.Diagnostics))
			for _, d := range file.Diagnostics {
				diags = append(diags, toProtocolDiagnostic(d))
			}
		}
	}

	ctx.Notify("textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func toProtocolDiagnostic(d scadast.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	if d.Level == scadast.DiagError {
		severity = protocol.DiagnosticSeverityError
	}

	source := serverName
	message := "[" + d.Code + "] " + d.Message

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: lspPosition(d.Span.Start),
			End:   lspPosition(d.Span.End),
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func lspPosition(p scadast.Position) protocol.Position {
	line := uint32(0)
	if p.Line > 0 {
		line = uint32(p.Line) - 1
	}

	character := uint32(0)
	if p.Column > 0 {
		character = uint32(p.Column) - 1
	}

	return protocol.Position{Line: line, Character: character}
}

