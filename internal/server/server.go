// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the framework stores, the
// optional journal and the output renderer, and injects them into the
// tools, prompts and resources. No business logic lives here, only wiring.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/analysis-support/internal/app"
	"github.com/HendryAvila/analysis-support/internal/config"
	"github.com/HendryAvila/analysis-support/internal/journal"
	"github.com/HendryAvila/analysis-support/internal/output"
	"github.com/HendryAvila/analysis-support/internal/prompts"
	"github.com/HendryAvila/analysis-support/internal/resources"
	"github.com/HendryAvila/analysis-support/internal/tools"
)

// Name is the server name announced to MCP clients.
const Name = "analysis-support"

// Version is set at build time via ldflags.
var Version = "dev"

// openJournal is a package-level var to allow test injection.
var openJournal = journal.New

// components are the wired parts of a server.
type components struct {
	mcp     *server.MCPServer
	catalog *tools.Catalog
	journal *journal.Store
}

// New creates and configures the MCP server with all tools, prompts and
// resources registered.
//
// The returned cleanup function closes the journal database and must be
// called on shutdown. It is always non-nil and safe to call even if the
// journal is disabled or failed to open.
func New(cfg *config.Config, logger *zap.Logger) (*server.MCPServer, func(), error) {
	c, cleanup, err := build(cfg, logger)
	if err != nil {
		return nil, noop, err
	}
	return c.mcp, cleanup, nil
}

func build(cfg *config.Config, logger *zap.Logger) (*components, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, noop, err
	}
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, noop, fmt.Errorf("output format: %w", err)
	}
	out := output.NewRenderer(format)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Journal ---
	//
	// The journal is optional: if it fails to open, the frameworks keep
	// working without it and the journal tools are not registered.

	cleanup := noop
	var store *journal.Store
	var rec tools.Recorder
	if cfg.Journal.Enabled {
		store, err = openJournal(cfg.JournalStoreConfig())
		if err != nil {
			logger.Warn("journal disabled", zap.Error(err))
			store = nil
		} else {
			cleanup = func() {
				if err := store.Close(); err != nil {
					logger.Warn("journal close", zap.Error(err))
				}
			}
			rec = tools.NewJournalBridge(store, logger.Named("journal"))
		}
	}

	// --- Tools ---

	catalog := tools.NewCatalog(app.New(), out, rec, logger.Named("tools"))
	if store != nil {
		catalog.Add(
			tools.NewJournalSearchTool(store, out),
			tools.NewJournalStatsTool(store, out),
		)
	}
	catalog.Register(s)

	// --- Prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	// --- Resources ---

	resourceHandler := resources.NewHandler()
	s.AddResource(resourceHandler.CatalogResource(), resourceHandler.HandleCatalog)

	logger.Info("server ready",
		zap.String("version", Version),
		zap.Int("tools", len(catalog.Names())),
		zap.Bool("journal", store != nil),
		zap.String("output", string(format)),
	)
	return &components{mcp: s, catalog: catalog, journal: store}, cleanup, nil
}

// noop is a no-op cleanup function used when the journal is disabled.
func noop() {}

// serverInstructions tells the AI how to use the frameworks.
func serverInstructions() string {
	return `You have access to analysis-support, a server of business-analysis frameworks.

## Frameworks
- 5 Whys (why_analysis_*): find the root cause of a problem. Start with
  why_analysis_start, then answer levels 0 to 4 strictly in order with
  why_analysis_add_answer. Answering level 4 completes the chain.
- MECE (mece_*): check that categories are mutually exclusive and
  collectively exhaustive with mece_analyze_categories, or propose a
  breakdown with mece_create_structure. Shortcuts: swot_analysis,
  4p_analysis, 3c_analysis, timeline_analysis, internal_external_analysis.
- SCAMPER (scamper_*): generate ideas with the 7 techniques, then score
  them with scamper_evaluate_ideas (feasibility and impact 0-10).
- RBS (rbs_*): build a risk register by category, rate probability and
  impact 1-5 and evaluate it into a matrix with priorities.
- m-SHELL (mshell_*): analyse the human factors of a system element by
  element (severity 1-4) and interface by interface (quality 1-10), then
  rate the system with mshell_evaluate_system.

## How tools answer
Every tool returns an envelope {success, message, error_code, data}.
On failure read error_code: NOT_FOUND means the id is wrong (list the
analyses to find it); INVALID_* codes name the argument to fix.

## Guidance
- The tools store what the user tells you. Ask the user for answers,
  categories, ideas and ratings; do not invent them.
- Analysis state lasts for this server session only. When the journal
  is enabled, finished analyses can be found later with journal_search.
- The analysis://catalog resource lists the reference data of every
  framework.`
}
