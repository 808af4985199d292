// Package lsp implements a language server that publishes AMX parse
// diagnostics for open template buffers.
package lsp

import (
	"errors"

	"github.com/dhamidi/amx/lexer"
	"github.com/dhamidi/amx/parser"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "amx"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	jsx     bool
}

func NewServer(version string) *Server {
	s := &Server{
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if opts, ok := params.InitializationOptions.(map[string]any); ok {
		if jsx, ok := opts["jsx"].(bool); ok {
			s.jsx = jsx
		}
	}

	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.publish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.publish(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.publish(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

// publish re-parses the buffer and sends its diagnostics. A clean parse
// clears previously published diagnostics.
func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	opts := []parser.Option{parser.WithFile(string(uri))}
	if s.jsx {
		opts = append(opts, parser.WithJSX())
	}

	diagnostics := []protocol.Diagnostic{}
	_, err := parser.Parse(lexer.Split(text), opts...)
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		severity := protocol.DiagnosticSeverityError
		source := lsName
		at := protocol.Position{
			Line:      protocol.UInteger(perr.Pos.Line),
			Character: protocol.UInteger(perr.Pos.Column),
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: at, End: at},
			Severity: &severity,
			Source:   &source,
			Message:  perr.Message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
