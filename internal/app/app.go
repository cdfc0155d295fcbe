// Package app holds the analysis components shared by every tool handler.
package app

import (
	"github.com/HendryAvila/analysis-support/internal/mece"
	"github.com/HendryAvila/analysis-support/internal/mshell"
	"github.com/HendryAvila/analysis-support/internal/rbs"
	"github.com/HendryAvila/analysis-support/internal/scamper"
	"github.com/HendryAvila/analysis-support/internal/whys"
)

// App is the application context: exactly one store per framework.
// It is built once by the server and passed to the tool handlers.
type App struct {
	Whys    *whys.Tracker
	MECE    *mece.Classifier
	SCAMPER *scamper.Sessions
	RBS     *rbs.Register
	MShell  *mshell.Analyzer
}

// New creates an App with empty stores.
func New() *App {
	return &App{
		Whys:    whys.NewTracker(),
		MECE:    mece.NewClassifier(),
		SCAMPER: scamper.NewSessions(),
		RBS:     rbs.NewRegister(),
		MShell:  mshell.NewAnalyzer(),
	}
}
