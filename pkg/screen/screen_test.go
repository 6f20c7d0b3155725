package screen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-screenfmt/pkg/render"
	"github.com/goliatone/go-screenfmt/pkg/store"
)

type captureRenderer struct {
	view    *render.View
	notice  *render.Notice
	payload []byte
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, view render.View) ([]byte, error) {
	r.view = &view
	return r.payload, nil
}

func (r *captureRenderer) RenderNotice(_ context.Context, notice render.Notice) ([]byte, error) {
	r.notice = &notice
	return []byte(notice.Message), nil
}

func testFieldsFS() fstest.MapFS {
	return fstest.MapFS{
		"orders.json": {Data: []byte(`{
			"header": {"Order Number": "C", "Order Total": "N"}
		}`)},
	}
}

func testDefaultsFS() fstest.MapFS {
	return fstest.MapFS{
		"orders.json": {Data: []byte(`{
			"colcount": 16,
			"sections": {
				"header": {
					"rows": 1,
					"colcount": 16,
					"columns": {
						"Order Number": {"line": 1, "column": 1, "col-length": 10, "label": "Order #"},
						"Order Total": {"line": 1, "column": 2, "col-length": 6, "label": "Total", "after-decimal": 2}
					}
				}
			}
		}`)},
	}
}

func testScreen(t *testing.T, dataDir string, options ...Option) *Screen {
	t.Helper()
	cfg := Config{
		DataDir: dataDir,
		Fields:  testFieldsFS(),
	}
	manager := store.NewManager(store.NewMemory(), store.NewDefaults(testDefaultsFS()))
	return New("orders", "sess1", cfg, manager, options...)
}

func TestRenderMissingDataFileYieldsNotice(t *testing.T) {
	s := testScreen(t, t.TempDir())
	r := &captureRenderer{}

	out, err := s.Render(context.Background(), r)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.notice == nil || r.notice.Kind != render.NoticeUnavailable {
		t.Fatalf("expected unavailable notice, got %+v", r.notice)
	}
	if string(out) != "Information Not Available" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderEmptyDataFileYieldsInvalidNotice(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sess1-orders.json"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	s := testScreen(t, dir, WithTitle("Orders"))
	r := &captureRenderer{}

	if _, err := s.Render(context.Background(), r); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.notice == nil || r.notice.Kind != render.NoticeInvalid {
		t.Fatalf("expected invalid notice, got %+v", r.notice)
	}
	if r.notice.Message == "" {
		t.Fatal("expected an error indicator in the notice message")
	}
}

func TestRenderCorruptDataFileYieldsInvalidNotice(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sess1-orders.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := testScreen(t, dir)
	r := &captureRenderer{}

	if _, err := s.Render(context.Background(), r); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.notice == nil || r.notice.Kind != render.NoticeInvalid {
		t.Fatalf("expected invalid notice, got %+v", r.notice)
	}
}

func TestRenderBuildsViewFromBlueprintAndData(t *testing.T) {
	dir := t.TempDir()
	payload := `{
		"header": [
			{"Order Number": "SO-1001", "Order Total": "1234.5"},
			{"Order Number": "SO-1002", "Order Total": "7"}
		]
	}`
	if err := os.WriteFile(filepath.Join(dir, "sess1-orders.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	s := testScreen(t, dir, WithTitle("Orders"), WithScripts("initTooltips();"))
	r := &captureRenderer{payload: []byte("ok")}

	out, err := s.Render(context.Background(), r)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != "ok" {
		t.Fatalf("unexpected output %q", out)
	}
	if r.view == nil {
		t.Fatal("expected view to reach the renderer")
	}
	if r.view.Title != "Orders" || r.view.Code != "orders" {
		t.Fatalf("unexpected view identity %q/%q", r.view.Title, r.view.Code)
	}
	if len(r.view.Scripts) != 1 {
		t.Fatalf("expected scripts carried through, got %v", r.view.Scripts)
	}

	if len(r.view.Sections) != 1 {
		t.Fatalf("expected one section, got %d", len(r.view.Sections))
	}
	section := r.view.Sections[0]
	if len(section.Rows) != 2 {
		t.Fatalf("expected one row per record, got %d", len(section.Rows))
	}

	first := section.Rows[0]
	if len(first.Cells) != 2 {
		t.Fatalf("expected two cells, got %d", len(first.Cells))
	}
	if first.Cells[0].Rendered.Value != "SO-1001" {
		t.Fatalf("unexpected first cell %q", first.Cells[0].Rendered.Value)
	}
	if first.Cells[1].Rendered.Value != "1234.50" {
		t.Fatalf("expected formatted total, got %q", first.Cells[1].Rendered.Value)
	}
}

func TestRenderAcceptsHeaderObjectPayload(t *testing.T) {
	dir := t.TempDir()
	payload := `{"header": {"Order Number": "SO-1", "Order Total": "2"}}`
	if err := os.WriteFile(filepath.Join(dir, "sess1-orders.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	s := testScreen(t, dir)
	r := &captureRenderer{}

	if _, err := s.Render(context.Background(), r); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.view == nil || len(r.view.Sections[0].Rows) != 1 {
		t.Fatal("expected a single-object section to render one row")
	}
}

func TestApplySubmissionRebuildsBlueprint(t *testing.T) {
	s := testScreen(t, t.TempDir())

	doc, err := s.ApplySubmission(map[string]string{
		"OrderNumber-line":   "1",
		"OrderNumber-length": "10",
		"OrderNumber-column": "1",
	})
	if err != nil {
		t.Fatalf("ApplySubmission: %v", err)
	}
	if doc.Source != "input" {
		t.Fatalf("expected input source, got %q", doc.Source)
	}

	bp, err := s.Blueprint()
	if err != nil {
		t.Fatalf("Blueprint: %v", err)
	}
	if bp.Sections["header"].Rows[1].Columns[1].ID != "Order Number" {
		t.Fatal("expected blueprint rebuilt from submission")
	}
}

func TestSaveAfterSubmissionPersists(t *testing.T) {
	s := testScreen(t, t.TempDir(), WithUser("bob"))

	if _, err := s.ApplySubmission(map[string]string{"OrderNumber-line": "1"}); err != nil {
		t.Fatal(err)
	}
	result, err := s.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !result.Success || result.Action != store.ActionCreate {
		t.Fatalf("unexpected save result %+v", result)
	}

	result, err = s.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if result.Action != store.ActionUpdate {
		t.Fatalf("expected update on second save, got %q", result.Action)
	}
}

func TestSetUserDropsMaterializedFormatter(t *testing.T) {
	s := testScreen(t, t.TempDir())

	doc, err := s.Formatter()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Source != "default" {
		t.Fatalf("expected default source, got %q", doc.Source)
	}

	s.SetUser("bob")
	if s.doc != nil || s.blueprint != nil {
		t.Fatal("expected cached formatter state dropped on user switch")
	}
}

func TestDataPathDerivation(t *testing.T) {
	cfg := Config{DataDir: "/data", TestDataDir: "/fixtures", TestPrefix: "test-"}

	if got := cfg.DataPath("sess1", "orders", false); got != filepath.Join("/data", "sess1-orders.json") {
		t.Fatalf("unexpected path %q", got)
	}
	if got := cfg.DataPath("sess1", "orders", true); got != filepath.Join("/fixtures", "test-orders.json") {
		t.Fatalf("unexpected debug path %q", got)
	}
}

func TestPreviewURL(t *testing.T) {
	s := testScreen(t, t.TempDir())
	got, err := s.PreviewURL("https://example.com/print/orders")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com/print/orders?debug=debug&preview=preview" {
		t.Fatalf("unexpected preview url %q", got)
	}
}

var _ render.Renderer = (*captureRenderer)(nil)
