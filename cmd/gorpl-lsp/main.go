// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"gorpl/internal/lsp"
)

const lsName = "gorpl"

var handler protocol.Handler

func main() {
	commonlog.Configure(1, nil)

	rplHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:                     rplHandler.Initialize,
		Initialized:                    rplHandler.Initialized,
		Shutdown:                       rplHandler.Shutdown,
		SetTrace:                       rplHandler.SetTrace,
		TextDocumentDidOpen:            rplHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           rplHandler.TextDocumentDidClose,
		TextDocumentDidChange:          rplHandler.TextDocumentDidChange,
		TextDocumentCompletion:         rplHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: rplHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting gorpl LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting gorpl LSP server:", err)
		os.Exit(1)
	}
}
