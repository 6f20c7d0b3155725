// Package screen assembles render-ready views: it joins a compiled formatter
// blueprint with a session's data payload and hands the result to a renderer.
// Every failure path degrades to a visible notice; assembly never panics over
// missing or broken data files.
package screen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-screenfmt/pkg/cell"
	"github.com/goliatone/go-screenfmt/pkg/fields"
	"github.com/goliatone/go-screenfmt/pkg/formatter"
	"github.com/goliatone/go-screenfmt/pkg/render"
	"github.com/goliatone/go-screenfmt/pkg/store"
)

// DefaultUser identifies the shared formatter record.
const DefaultUser = "default"

// Option customises a Screen at construction.
type Option func(*Screen)

// WithUser sets the user whose formatter is loaded. Defaults to DefaultUser.
func WithUser(userID string) Option {
	return func(s *Screen) {
		if userID != "" {
			s.userID = userID
		}
	}
}

// WithTitle sets the document title shown on the rendered screen.
func WithTitle(title string) Option {
	return func(s *Screen) {
		s.title = title
	}
}

// WithDebug switches the screen to fixture data.
func WithDebug(debug bool) Option {
	return func(s *Screen) {
		s.debug = debug
	}
}

// WithDecorator replaces the cell decorator.
func WithDecorator(d *cell.Decorator) Option {
	return func(s *Screen) {
		if d != nil {
			s.decorator = d
		}
	}
}

// WithScripts appends client-side behavior emitted after the screen body.
func WithScripts(scripts ...string) Option {
	return func(s *Screen) {
		s.scripts = append(s.scripts, scripts...)
	}
}

// WithDefinitions injects preloaded field definitions, bypassing the config
// filesystem.
func WithDefinitions(defs fields.Definitions) Option {
	return func(s *Screen) {
		s.defs = defs
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Screen) {
		s.log = logger
	}
}

// Screen is one render/edit session for a screen code. Field definitions,
// the formatter document, and the blueprint materialize lazily on first
// access and are cached for the life of the Screen.
type Screen struct {
	code      string
	title     string
	sessionID string
	userID    string
	debug     bool
	scripts   []string

	cfg       Config
	manager   *store.Manager
	decorator *cell.Decorator
	log       zerolog.Logger

	defs      fields.Definitions
	doc       *formatter.Document
	blueprint *formatter.Blueprint
}

// New builds a Screen for a code and session.
func New(code, sessionID string, cfg Config, manager *store.Manager, options ...Option) *Screen {
	s := &Screen{
		code:      code,
		sessionID: sessionID,
		userID:    DefaultUser,
		cfg:       cfg,
		manager:   manager,
		decorator: cell.NewDecorator(),
		log:       zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Code returns the screen code.
func (s *Screen) Code() string { return s.code }

// Title returns the document title.
func (s *Screen) Title() string { return s.title }

// SetUser switches the formatter owner and drops any materialized formatter
// state so the next access reloads for the new user.
func (s *Screen) SetUser(userID string) {
	if userID == "" {
		userID = DefaultUser
	}
	s.userID = userID
	s.doc = nil
	s.blueprint = nil
}

// SetDebug toggles fixture data for subsequent renders.
func (s *Screen) SetDebug(debug bool) {
	s.debug = debug
}

// DataPath returns the payload file this screen reads.
func (s *Screen) DataPath() string {
	return s.cfg.DataPath(s.sessionID, s.code, s.debug)
}

// PreviewURL builds the preview address for this screen from a base page URL.
func (s *Screen) PreviewURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("screen: parse preview base %q: %w", base, err)
	}
	q := u.Query()
	q.Set("preview", "preview")
	q.Set("debug", "debug")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Definitions returns the field definitions, loading them on first access.
func (s *Screen) Definitions() (fields.Definitions, error) {
	if s.defs != nil {
		return s.defs, nil
	}
	defs, err := fields.Load(s.cfg.Fields, s.code)
	if err != nil {
		return nil, err
	}
	s.defs = defs
	return defs, nil
}

// Formatter returns the formatter document, resolving it through the store
// manager on first access.
func (s *Screen) Formatter() (formatter.Document, error) {
	if s.doc != nil {
		return *s.doc, nil
	}
	doc, err := s.manager.Load(s.code, s.userID)
	if err != nil {
		return formatter.Document{}, err
	}
	s.doc = &doc
	s.blueprint = nil
	return doc, nil
}

// Blueprint returns the compiled table blueprint, materializing it on first
// access. Recompiling the same document yields a structurally identical grid.
func (s *Screen) Blueprint() (formatter.Blueprint, error) {
	if s.blueprint != nil {
		return *s.blueprint, nil
	}
	defs, err := s.Definitions()
	if err != nil {
		return formatter.Blueprint{}, err
	}
	doc, err := s.Formatter()
	if err != nil {
		return formatter.Blueprint{}, err
	}
	bp := formatter.CompileBlueprint(defs, doc)
	s.blueprint = &bp
	return bp, nil
}

// ApplySubmission replaces the screen's formatter with one compiled from a
// posted configuration and rebuilds the blueprint. The document is not
// persisted; call Save for that.
func (s *Screen) ApplySubmission(sub formatter.Submission) (formatter.Document, error) {
	defs, err := s.Definitions()
	if err != nil {
		return formatter.Document{}, err
	}
	doc := formatter.CompileFromSubmission(defs, sub)
	s.doc = &doc
	bp := formatter.CompileBlueprint(defs, doc)
	s.blueprint = &bp
	return doc, nil
}

// Save persists the current formatter document for this screen's user.
func (s *Screen) Save() (store.SaveResult, error) {
	doc, err := s.Formatter()
	if err != nil {
		return store.SaveResult{}, err
	}
	return s.manager.Save(s.code, s.userID, doc)
}

// Render assembles and renders the screen. Missing or broken data files come
// back as rendered notices, not errors; the error return covers renderer and
// formatter failures only.
func (s *Screen) Render(ctx context.Context, renderer render.Renderer) ([]byte, error) {
	path := s.DataPath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.log.Debug().Str("code", s.code).Str("path", path).Msg("data file missing")
		return renderer.RenderNotice(ctx, render.Notice{
			Kind:    render.NoticeUnavailable,
			Message: "Information Not Available",
		})
	}
	if err != nil {
		return nil, fmt.Errorf("screen: read data file %s: %w", path, err)
	}

	payload, err := parsePayload(data)
	if err != nil {
		s.log.Warn().Err(err).Str("code", s.code).Str("path", path).Msg("data file invalid")
		return renderer.RenderNotice(ctx, render.Notice{
			Kind:    render.NoticeInvalid,
			Message: fmt.Sprintf("The %s JSON contains errors. JSON ERROR: %v", s.title, err),
		})
	}

	bp, err := s.Blueprint()
	if err != nil {
		return nil, err
	}

	return renderer.Render(ctx, s.buildView(bp, payload))
}

// payload maps section names to their data records.
type payload map[string][]map[string]any

func parsePayload(data []byte) (payload, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty data file")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty data file")
	}

	out := make(payload, len(raw))
	for section, message := range raw {
		var records []map[string]any
		if err := json.Unmarshal(message, &records); err == nil {
			out[section] = records
			continue
		}
		// Header-style sections carry a single object rather than a list.
		var record map[string]any
		if err := json.Unmarshal(message, &record); err != nil {
			return nil, fmt.Errorf("section %q: %w", section, err)
		}
		out[section] = []map[string]any{record}
	}
	return out, nil
}

func (s *Screen) buildView(bp formatter.Blueprint, data payload) render.View {
	view := render.View{
		Code:     s.code,
		Title:    s.title,
		ColCount: bp.ColCount,
		Scripts:  s.scripts,
	}

	for _, name := range bp.SectionNames() {
		section := bp.Sections[name]
		sv := render.SectionView{
			Name:     name,
			RowCount: section.RowCount,
			ColCount: section.ColCount,
		}

		for _, record := range data[name] {
			for i := 1; i <= section.RowCount; i++ {
				row := section.Rows[i]
				rv := render.RowView{}
				for _, pos := range row.Positions() {
					c := row.Columns[pos]
					rv.Cells = append(rv.Cells, render.CellView{
						Cell:     c,
						Rendered: s.decorator.Render(record, c),
					})
				}
				sv.Rows = append(sv.Rows, rv)
			}
		}

		view.Sections = append(view.Sections, sv)
	}

	return view
}
