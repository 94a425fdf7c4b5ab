package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vellumhq/vellum/pkg/codegen"
	"github.com/vellumhq/vellum/pkg/config"
	"github.com/vellumhq/vellum/pkg/engine"
	"github.com/vellumhq/vellum/pkg/preview"
	"github.com/vellumhq/vellum/pkg/scene"
	"github.com/vellumhq/vellum/pkg/script"
	"github.com/vellumhq/vellum/pkg/store"
)

// App is the Wails backend. It exposes the editor operations to the
// frontend via bindings; every method is JSON-serializable end to end.
type App struct {
	ctx     context.Context
	cfg     config.Config
	log     *slog.Logger
	engine  *engine.Engine
	runner  *script.Runner
	store   *store.Store
	preview *preview.Server
	// persisted is set once the open document has a store row, gating
	// autosave so scratch documents are not written until first saved.
	persisted bool
}

// DocumentState is the full editor state pushed to the frontend after
// every mutation.
type DocumentState struct {
	ProjectName   string                    `json:"projectName"`
	Elements      map[string]*scene.Element `json:"elements"`
	Pages         map[string]*scene.Page    `json:"pages"`
	PageOrder     []string                  `json:"pageOrder"`
	CurrentPageID string                    `json:"currentPageId"`
	SelectedIDs   []string                  `json:"selectedIds"`
	HoveredID     string                    `json:"hoveredId,omitempty"`
	CanUndo       bool                      `json:"canUndo"`
	CanRedo       bool                      `json:"canRedo"`
}

// ScriptResult is a script run's value and errors for the frontend.
type ScriptResult struct {
	Value  string            `json:"value"`
	Errors []ScriptErrorData `json:"errors"`
}

type ScriptErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// NewApp wires the engine, script runner, store and preview server from
// the loaded configuration.
func NewApp(cfg config.Config, log *slog.Logger) (*App, error) {
	eng := engine.New(scene.NewDocument("Untitled"),
		engine.WithLogger(log),
		engine.WithHistoryLimit(cfg.HistoryLimit),
	)
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a := &App{
		ctx:     context.Background(),
		cfg:     cfg,
		log:     log,
		engine:  eng,
		runner:  script.NewRunner(eng),
		store:   st,
		preview: preview.New(log),
	}
	if cfg.Autosave {
		eng.OnCommit(a.autosave)
	}
	return a, nil
}

// autosave writes the open project back to the store after a history
// commit. It only runs once the project has been saved or loaded, so an
// unsaved scratch document never hits the database.
func (a *App) autosave(label string) {
	if !a.persisted {
		return
	}
	doc := a.engine.Document()
	if doc.ProjectName == "" {
		return
	}
	if err := a.store.Save(a.ctx, doc.ProjectName, doc.Snapshot()); err != nil {
		a.log.Error("autosave failed", "project", doc.ProjectName, "label", label, "err", err)
	}
}

// startup is called by Wails on app startup.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if a.cfg.Preview.Enabled {
		if err := a.preview.Start(a.cfg.Preview.Addr); err != nil {
			a.log.Error("preview start failed", "err", err)
		}
	}
}

// shutdown is called by Wails when the window closes.
func (a *App) shutdown(ctx context.Context) {
	if err := a.preview.Shutdown(ctx); err != nil {
		a.log.Error("preview shutdown failed", "err", err)
	}
	if err := a.store.Close(); err != nil {
		a.log.Error("store close failed", "err", err)
	}
}

// State returns the current editor state.
func (a *App) State() DocumentState {
	doc := a.engine.Document()
	h := a.engine.History()
	return DocumentState{
		ProjectName:   doc.ProjectName,
		Elements:      doc.Elements,
		Pages:         doc.Pages,
		PageOrder:     doc.PageOrder,
		CurrentPageID: doc.CurrentPageID,
		SelectedIDs:   doc.SelectedIDs,
		HoveredID:     doc.HoveredID,
		CanUndo:       h.CanUndo(),
		CanRedo:       h.CanRedo(),
	}
}

// ---------------------------------------------------------------------------
// Structural mutations. Each delegates to the engine and returns the
// refreshed state so the frontend can re-render in one round trip.
// ---------------------------------------------------------------------------

// AddElement inserts a new element under parentID (empty means the
// current page root), auto-positioned.
func (a *App) AddElement(kind, parentID string) string {
	k, ok := scene.KindFromString(kind)
	if !ok {
		a.log.Warn("add rejected: unknown kind", "kind", kind)
		return ""
	}
	return a.engine.AddElement(k, parentID, nil)
}

// AddElementAt inserts a new element at an explicit canvas position.
func (a *App) AddElementAt(kind, parentID string, x, y float64) string {
	k, ok := scene.KindFromString(kind)
	if !ok {
		a.log.Warn("add rejected: unknown kind", "kind", kind)
		return ""
	}
	return a.engine.AddElement(k, parentID, &scene.Position{X: x, Y: y})
}

func (a *App) DeleteElement(id string)    { a.engine.DeleteElement(id) }
func (a *App) DuplicateElement(id string) string {
	return a.engine.DuplicateElement(id)
}

func (a *App) MoveElement(id string, x, y float64) {
	a.engine.MoveElement(id, scene.Position{X: x, Y: y})
}

func (a *App) ResizeElement(id string, w, h float64) {
	a.engine.ResizeElement(id, scene.Size{Width: w, Height: h})
}

func (a *App) ReparentElement(id, newParentID string) {
	a.engine.ReparentElement(id, newParentID)
}

func (a *App) WrapInFrame(ids []string) string { return a.engine.WrapInFrame(ids) }
func (a *App) Ungroup(id string)               { a.engine.Ungroup(id) }

// ---------------------------------------------------------------------------
// Styling and properties.
// ---------------------------------------------------------------------------

func (a *App) UpdateStyles(id string, partial scene.Styles) {
	a.engine.UpdateElementStyles(id, &partial)
}

func (a *App) SetResponsiveStyles(id, breakpoint string, partial scene.Styles) {
	a.engine.SetResponsiveStyles(id, scene.Breakpoint(breakpoint), &partial)
}

func (a *App) SetVariantStyles(id, variant string, partial scene.Styles) {
	a.engine.SetVariantStyles(id, scene.Variant(variant), &partial)
}

func (a *App) RenameElement(id, name string) { a.engine.RenameElement(id, name) }
func (a *App) SetLocked(id string, locked bool)   { a.engine.SetLocked(id, locked) }
func (a *App) SetVisible(id string, visible bool) { a.engine.SetVisible(id, visible) }

func (a *App) AddInteraction(id string, t scene.Trigger) { a.engine.AddInteraction(id, t) }
func (a *App) AddAnimation(id string, t scene.Trigger)   { a.engine.AddAnimation(id, t) }

func (a *App) SetTextContent(id, content string)  { a.engine.SetTextContent(id, content) }
func (a *App) SetButtonLabel(id, label string)    { a.engine.SetButtonLabel(id, label) }
func (a *App) SetIconName(id, name string)        { a.engine.SetIconName(id, name) }
func (a *App) SetCardLabel(id, label string)      { a.engine.SetCardLabel(id, label) }
func (a *App) SetImageSource(id, src, alt string) { a.engine.SetImageSource(id, src, alt) }

func (a *App) SetLinkTarget(id, text, href string, newTab bool) {
	a.engine.SetLinkTarget(id, text, href, newTab)
}

func (a *App) SetInputPlaceholder(id, placeholder, typ string) {
	a.engine.SetInputPlaceholder(id, placeholder, typ)
}

func (a *App) SetVideoSource(id, src string, autoplay, loop, muted, controls bool) {
	a.engine.SetVideoSource(id, src, autoplay, loop, muted, controls)
}

// ---------------------------------------------------------------------------
// Pages, selection, clipboard, history.
// ---------------------------------------------------------------------------

func (a *App) AddPage(name string) string     { return a.engine.AddPage(name) }
func (a *App) DeletePage(id string)           { a.engine.DeletePage(id) }
func (a *App) RenamePage(id, name string)     { a.engine.RenamePage(id, name) }
func (a *App) SetPageNotes(id, notes string)  { a.engine.SetPageNotes(id, notes) }
func (a *App) SetCurrentPage(id string)       { a.engine.SetCurrentPage(id) }
func (a *App) MovePageCanvas(id string, x, y float64) {
	a.engine.MovePageCanvas(id, x, y)
}

func (a *App) Select(ids []string)       { a.engine.Select(ids...) }
func (a *App) AddToSelection(id string)  { a.engine.AddToSelection(id) }
func (a *App) ClearSelection()           { a.engine.ClearSelection() }
func (a *App) SetHovered(id string)      { a.engine.SetHovered(id) }

func (a *App) Copy() { a.engine.Copy() }
func (a *App) Cut()  { a.engine.Cut() }

func (a *App) Paste() []string { return a.engine.Paste(nil) }
func (a *App) PasteAt(x, y float64) []string {
	return a.engine.Paste(&scene.Position{X: x, Y: y})
}

func (a *App) Undo() bool { return a.engine.Undo() }
func (a *App) Redo() bool { return a.engine.Redo() }

// ---------------------------------------------------------------------------
// Code synthesis.
// ---------------------------------------------------------------------------

// GenerateCode synthesizes the project into React source files and
// publishes them to the preview server.
func (a *App) GenerateCode() map[string]string {
	files := codegen.Generate(a.engine.Document())
	a.preview.Publish(files)
	return files
}

// RunScript evaluates an automation script against the document.
func (a *App) RunScript(source string) ScriptResult {
	res, err := a.runner.Run(source)
	out := ScriptResult{Value: res.Value, Errors: []ScriptErrorData{}}
	if err != nil {
		out.Errors = append(out.Errors, ScriptErrorData{Message: err.Error()})
		return out
	}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, ScriptErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
	}
	return out
}

// ---------------------------------------------------------------------------
// Project persistence.
// ---------------------------------------------------------------------------

// SaveProject writes the open document to the store under name; an empty
// name reuses the document's project name. A rename goes through the
// engine so it lands in undo history like any other change.
func (a *App) SaveProject(name string) error {
	doc := a.engine.Document()
	if name == "" {
		name = doc.ProjectName
	}
	if name == "" {
		return errors.New("project has no name")
	}
	a.engine.SetProjectName(name)
	if err := a.store.Save(a.ctx, name, doc.Snapshot()); err != nil {
		return err
	}
	a.persisted = true
	return nil
}

// LoadProject replaces the open document with a stored one. The undo
// history restarts from the loaded state.
func (a *App) LoadProject(name string) error {
	snap, err := a.store.Load(a.ctx, name)
	if err != nil {
		return err
	}
	a.engine.LoadSnapshot(name, snap)
	a.persisted = true
	return nil
}

// ListProjects returns the stored projects, most recent first.
func (a *App) ListProjects() ([]store.ProjectInfo, error) {
	return a.store.List(a.ctx)
}

// DeleteProject removes a stored project.
func (a *App) DeleteProject(name string) error {
	return a.store.Delete(a.ctx, name)
}
