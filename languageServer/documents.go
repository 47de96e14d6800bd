package languageServer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sourcegraph/jsonrpc2"
	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/util"
)

// document is one open editor buffer plus the program from its most recent
// assembly, kept so hover requests never reassemble.
type document struct {
	item    TextDocumentItem
	program *assembler.Program
}

// assemble reassembles the document and returns its diagnostics, never nil:
// the protocol distinguishes "no diagnostics" from an absent field.
func (h *handler) assemble(uri DocumentUri) []assembler.Diagnostic {
	doc, ok := h.documents[string(uri)]
	if !ok {
		return []assembler.Diagnostic{}
	}

	doc.program = assembler.NewSession(h.server.Config).Assemble(doc.item.Text)
	if doc.program.Diagnostics == nil {
		return []assembler.Diagnostic{}
	}
	return doc.program.Diagnostics
}

func (h *handler) documentOpenNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	if err := json.Unmarshal(*req.Params, &decodedParams); err != nil {
		replyInvalidParams(conn, req)
		return
	}

	h.documents[string(decodedParams.TextDocument.URI)] = &document{item: decodedParams.TextDocument}

	diagnostics := h.assemble(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentCloseNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	if err := json.Unmarshal(*req.Params, &decodedParams); err != nil {
		replyInvalidParams(conn, req)
		return
	}

	delete(h.documents, string(decodedParams.TextDocument.URI))
}

func (h *handler) documentChangeNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	if err := json.Unmarshal(*req.Params, &decodedParams); err != nil {
		replyInvalidParams(conn, req)
		return
	}
	if len(decodedParams.ContentChanges) == 0 {
		return
	}

	doc, ok := h.documents[string(decodedParams.TextDocument.URI)]
	if !ok {
		doc = &document{}
		h.documents[string(decodedParams.TextDocument.URI)] = doc
	}
	// only the full-document sync capability is registered
	doc.item.Text = decodedParams.ContentChanges[0].Text
	doc.item.Version = decodedParams.TextDocument.Version

	diagnostics := h.assemble(decodedParams.TextDocument.URI)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     doc.item.Version,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentDiagnostics(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	if err := json.Unmarshal(*req.Params, &decodedParams); err != nil {
		replyInvalidParams(conn, req)
		return
	}

	diagnostics := h.assemble(decodedParams.TextDocument.URI)
	conn.Reply(context.Background(), req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: diagnostics,
	})
}

// reformatDocument left-aligns labels and indents unlabeled instructions to
// the column after the longest label, squeezing runs of whitespace down to
// single spaces. Comments ride along untouched.
func (h *handler) reformatDocument(uri DocumentUri) string {
	doc, ok := h.documents[string(uri)]
	if !ok {
		return ""
	}
	program := assembler.NewSession(h.server.Config).Assemble(doc.item.Text)

	maxLabelLength := 0
	for _, name := range program.Symbols.Names() {
		if len(name) > maxLabelLength {
			maxLabelLength = len(name)
		}
	}

	lines := strings.Split(doc.item.Text, "\n")
	for i, line := range lines {
		code, comment := line, ""
		if idx := strings.Index(line, "#"); idx >= 0 {
			code, comment = line[:idx], line[idx:]
		}

		code = strings.ReplaceAll(strings.TrimSpace(code), "\t", " ")
		for strings.Contains(code, "  ") {
			code = strings.ReplaceAll(code, "  ", " ")
		}

		if idx := strings.Index(code, ":"); idx >= 0 {
			label := strings.TrimSpace(code[:idx])
			rest := strings.TrimSpace(code[idx+1:])
			code = label + ":"
			if rest != "" {
				pad := maxLabelLength - len(label) + 1
				if pad < 1 {
					pad = 1
				}
				code += strings.Repeat(" ", pad) + rest
			}
		} else if code != "" {
			code = strings.Repeat(" ", maxLabelLength+2) + code
		}
		if code != "" && comment != "" {
			comment = " " + comment
		}
		lines[i] = code + comment
	}
	return strings.Join(lines, "\n")
}

func (h *handler) documentWillSaveWaitUntil(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentWillSaveWaitUntilParams{}
	if err := json.Unmarshal(*req.Params, &decodedParams); err != nil {
		replyInvalidParams(conn, req)
		return
	}

	doc, ok := h.documents[string(decodedParams.TextDocument.URI)]
	if !ok {
		conn.Reply(context.Background(), req.ID, []TextEdit{})
		return
	}
	lines := strings.Split(doc.item.Text, "\n")

	edits := []TextEdit{
		{
			Range: assembler.TextRange{
				Start: assembler.TextPosition{Line: 0, Char: 0},
				End:   assembler.TextPosition{Line: len(lines) - 1, Char: len(lines[len(lines)-1])},
			},
			NewText: h.reformatDocument(decodedParams.TextDocument.URI),
		},
	}

	conn.Reply(context.Background(), req.ID, edits)
	util.LogF("RISC-V language server: reformatted document")
}
