package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-screenfmt/pkg/formatter"
	"github.com/goliatone/go-screenfmt/pkg/render"
	"github.com/goliatone/go-screenfmt/pkg/screen"
	"github.com/goliatone/go-screenfmt/pkg/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noticeRenderer struct{}

func (noticeRenderer) Name() string        { return "capture" }
func (noticeRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (noticeRenderer) Render(context.Context, render.View) ([]byte, error) {
	return []byte("view"), nil
}

func (noticeRenderer) RenderNotice(_ context.Context, notice render.Notice) ([]byte, error) {
	return []byte(notice.Message), nil
}

type denyAll struct{}

func (denyAll) CanEdit(string, string) bool { return false }

func testConfig(t *testing.T) screen.Config {
	t.Helper()
	return screen.Config{
		DataDir: t.TempDir(),
		Fields: fstest.MapFS{
			"orders.json": {Data: []byte(`{
				"header": {"Order Number": "C", "Order Total": "N"}
			}`)},
		},
	}
}

func testRouter(t *testing.T, options ...Option) (*gin.Engine, *store.Manager) {
	t.Helper()

	defaults := store.NewDefaults(fstest.MapFS{
		"orders.json": {Data: []byte(`{
			"colcount": 4,
			"sections": {
				"header": {
					"rows": 1,
					"colcount": 4,
					"columns": {
						"Order Number": {"line": 1, "column": 1, "col-length": 4}
					}
				}
			}
		}`)},
	})
	manager := store.NewManager(store.NewMemory(), defaults)

	registry := render.NewRegistry()
	require.NoError(t, registry.Register(noticeRenderer{}))

	h := New(testConfig(t), manager, registry, options...)
	r := gin.New()
	h.Routes(r)
	return r, manager
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) ResponseBody {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Response
}

func savedForm(user string) url.Values {
	form := url.Values{}
	if user != "" {
		form.Set("user", user)
	}
	form.Set(formatter.FieldKey("Order Number", formatter.AttrLine), "1")
	form.Set(formatter.FieldKey("Order Number", formatter.AttrColumn), "1")
	form.Set(formatter.FieldKey("Order Number", formatter.AttrLength), "10")
	form.Set(formatter.FieldKey("Order Number", formatter.AttrLabel), "Order #")
	form.Set(formatter.FieldKey("Order Total", formatter.AttrLine), "1")
	form.Set(formatter.FieldKey("Order Total", formatter.AttrColumn), "2")
	form.Set(formatter.FieldKey("Order Total", formatter.AttrLength), "8")
	form.Set(formatter.FieldKey("Order Total", formatter.AttrAfterDecimal), "2")
	return form
}

func TestSaveFormatterForPostedUser(t *testing.T) {
	r, manager := testRouter(t)

	w := postForm(r, "/screens/orders/formatter", savedForm("bob"))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeResponse(t, w)
	assert.False(t, body.Error)
	assert.Equal(t, "success", body.NotifyType)
	assert.Equal(t, store.ActionCreate, body.Action)
	assert.Equal(t, "The configuration for bob has been saved", body.Message)
	assert.Equal(t, "fa fa-floppy-o", body.Icon)

	doc, err := manager.Load("orders", "bob")
	require.NoError(t, err)
	assert.Equal(t, formatter.SourceDatabase, doc.Source)
	require.Contains(t, doc.Sections, "header")
	assert.Contains(t, doc.Sections["header"].Columns, "Order Total")
}

func TestSaveFormatterForCurrentUser(t *testing.T) {
	r, _ := testRouter(t, WithCurrentUser(func(*gin.Context) string { return "alice" }))

	w := postForm(r, "/screens/orders/formatter", savedForm(""))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeResponse(t, w)
	assert.False(t, body.Error)
	assert.Equal(t, "Your table (orders) configuration has been saved", body.Message)
}

func TestSaveFormatterSecondSaveUpdates(t *testing.T) {
	r, _ := testRouter(t)

	first := decodeResponse(t, postForm(r, "/screens/orders/formatter", savedForm("bob")))
	second := decodeResponse(t, postForm(r, "/screens/orders/formatter", savedForm("bob")))

	assert.Equal(t, store.ActionCreate, first.Action)
	assert.Equal(t, store.ActionUpdate, second.Action)
}

func TestSaveFormatterDenied(t *testing.T) {
	r, _ := testRouter(t, WithAuthorizer(denyAll{}))

	w := postForm(r, "/screens/orders/formatter", savedForm("bob"))
	require.Equal(t, http.StatusForbidden, w.Code)

	body := decodeResponse(t, w)
	assert.True(t, body.Error)
	assert.Equal(t, "danger", body.NotifyType)
	assert.Equal(t, "fa fa-exclamation-triangle", body.Icon)
	assert.Contains(t, body.Message, "not able to be saved")
}

func TestSaveFormatterUnknownScreen(t *testing.T) {
	r, _ := testRouter(t)

	w := postForm(r, "/screens/missing/formatter", savedForm("bob"))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, decodeResponse(t, w).Error)
}

func TestPreviewRendersNoticeWhenDataMissing(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/screens/orders/preview?renderer=capture&sessionID=sess1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Information Not Available", w.Body.String())
}

func TestPreviewUnknownRenderer(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/screens/orders/preview?renderer=nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
