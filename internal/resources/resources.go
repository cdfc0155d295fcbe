// Package resources implements MCP resource handlers for the analysis
// server.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (analysis://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/analysis-support/internal/mece"
	"github.com/HendryAvila/analysis-support/internal/mshell"
	"github.com/HendryAvila/analysis-support/internal/rbs"
	"github.com/HendryAvila/analysis-support/internal/scamper"
)

// CatalogURI addresses the framework reference data.
const CatalogURI = "analysis://catalog"

// Catalog is the reference data of every framework.
type Catalog struct {
	Whys    WhysInfo           `json:"whys"`
	MECE    []FrameworkInfo    `json:"mece_frameworks"`
	SCAMPER []TechniqueInfo    `json:"scamper_techniques"`
	RBS     []rbs.CategoryNode `json:"rbs_structure"`
	MShell  MShellInfo         `json:"mshell"`
}

// WhysInfo describes the 5 Whys method.
type WhysInfo struct {
	Levels      int    `json:"levels"`
	Description string `json:"description"`
}

// FrameworkInfo lists the categories of one MECE framework.
type FrameworkInfo struct {
	Framework  mece.Framework `json:"framework"`
	Categories []string       `json:"categories"`
}

// TechniqueInfo is one SCAMPER technique with its guide.
type TechniqueInfo struct {
	Technique scamper.Technique `json:"technique"`
	scamper.Guide
}

// MShellInfo lists the m-SHELL elements and rating scales.
type MShellInfo struct {
	Elements       []mshell.ElementDescription `json:"elements"`
	SeverityLabels map[int]string              `json:"severity_labels"`
	QualityRange   [2]int                      `json:"quality_range"`
}

// BuildCatalog assembles the reference data from the framework packages.
func BuildCatalog() Catalog {
	c := Catalog{
		Whys: WhysInfo{
			Levels:      5,
			Description: "Ask why five times, each question about the previous answer; the last answer is the root cause.",
		},
		RBS: rbs.StructureTemplate(),
		MShell: MShellInfo{
			Elements:       mshell.DescribeElements(),
			SeverityLabels: make(map[int]string),
			QualityRange:   [2]int{mshell.MinQuality, mshell.MaxQuality},
		},
	}
	for _, f := range mece.Frameworks {
		c.MECE = append(c.MECE, FrameworkInfo{Framework: f, Categories: mece.CategoriesOf(f)})
	}
	for _, t := range scamper.Techniques {
		c.SCAMPER = append(c.SCAMPER, TechniqueInfo{Technique: t, Guide: scamper.GuideFor(t)})
	}
	for s := mshell.MinSeverity; s <= mshell.MaxSeverity; s++ {
		c.MShell.SeverityLabels[s] = mshell.SeverityLabel(s)
	}
	return c
}

// Handler manages analysis resource endpoints.
type Handler struct {
	catalog Catalog
}

// NewHandler creates a resource Handler.
func NewHandler() *Handler {
	return &Handler{catalog: BuildCatalog()}
}

// CatalogResource returns the MCP resource definition for the catalog.
func (h *Handler) CatalogResource() mcp.Resource {
	return mcp.NewResource(
		CatalogURI,
		"Analysis framework catalog",
		mcp.WithResourceDescription("Reference data of every framework: MECE structures, SCAMPER guides, the RBS template and m-SHELL elements"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleCatalog returns the catalog as JSON.
func (h *Handler) HandleCatalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(h.catalog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
