// Package web exposes the formatter editor endpoints: saving a posted column
// configuration and rendering screen previews. Permission decisions live
// behind the Authorizer seam; handlers only consult it.
package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-screenfmt/pkg/fields"
	"github.com/goliatone/go-screenfmt/pkg/formatter"
	"github.com/goliatone/go-screenfmt/pkg/render"
	"github.com/goliatone/go-screenfmt/pkg/screen"
	"github.com/goliatone/go-screenfmt/pkg/store"
)

// Authorizer answers whether a user may edit the formatter for a code.
type Authorizer interface {
	CanEdit(code, userID string) bool
}

// AllowAll permits every edit. Use it for single-tenant deployments.
type AllowAll struct{}

func (AllowAll) CanEdit(string, string) bool { return true }

// CurrentUserFunc resolves the logged-in user for a request.
type CurrentUserFunc func(*gin.Context) string

// Response is the save endpoint's JSON envelope.
type Response struct {
	Response ResponseBody `json:"response"`
}

// ResponseBody carries the notification fields the editor UI consumes.
type ResponseBody struct {
	Error      bool   `json:"error"`
	NotifyType string `json:"notifytype"`
	Action     string `json:"action"`
	Message    string `json:"message"`
	Icon       string `json:"icon"`
}

const (
	iconSaved  = "fa fa-floppy-o"
	iconFailed = "fa fa-exclamation-triangle"
)

// Option customises Handlers.
type Option func(*Handlers)

// WithAuthorizer replaces the edit permission check.
func WithAuthorizer(auth Authorizer) Option {
	return func(h *Handlers) {
		if auth != nil {
			h.auth = auth
		}
	}
}

// WithCurrentUser replaces how the logged-in user is resolved.
func WithCurrentUser(fn CurrentUserFunc) Option {
	return func(h *Handlers) {
		if fn != nil {
			h.currentUser = fn
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Handlers) {
		h.log = logger
	}
}

// Handlers wires the editor endpoints over the store manager and renderer
// registry.
type Handlers struct {
	cfg         screen.Config
	manager     *store.Manager
	registry    *render.Registry
	auth        Authorizer
	currentUser CurrentUserFunc
	log         zerolog.Logger
}

// New builds the handler set.
func New(cfg screen.Config, manager *store.Manager, registry *render.Registry, options ...Option) *Handlers {
	h := &Handlers{
		cfg:      cfg,
		manager:  manager,
		registry: registry,
		auth:     AllowAll{},
		currentUser: func(c *gin.Context) string {
			return c.GetString("user")
		},
		log: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// SaveFormatter handles POST /screens/:code/formatter: it compiles the posted
// column configuration and persists it for the posted user, falling back to
// the logged-in user.
func (h *Handlers) SaveFormatter() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")

		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, failureResponse(code, "", "", fmt.Sprintf("The posted configuration could not be read: %v", err)))
			return
		}
		sub := formatter.FromValues(c.Request.PostForm)

		current := h.currentUser(c)
		userID := sub.Text("user")
		if userID == "" {
			userID = current
		}

		if !h.auth.CanEdit(code, userID) {
			h.log.Warn().Str("code", code).Str("user", userID).Msg("formatter edit denied")
			c.JSON(http.StatusForbidden, failureResponse(code, userID, current, ""))
			return
		}

		defs, err := fields.Load(h.cfg.Fields, code)
		if err != nil {
			h.log.Error().Err(err).Str("code", code).Msg("load field definitions")
			c.JSON(http.StatusNotFound, failureResponse(code, userID, current, ""))
			return
		}

		doc := formatter.CompileFromSubmission(defs, sub)
		result, err := h.manager.Save(code, userID, doc)
		if err != nil || !result.Success {
			c.JSON(http.StatusOK, failureResponseWithAction(code, userID, current, result.Action))
			return
		}

		msg := fmt.Sprintf("The configuration for %s has been saved", userID)
		if userID == current {
			msg = fmt.Sprintf("Your table (%s) configuration has been saved", code)
		}
		c.JSON(http.StatusOK, Response{Response: ResponseBody{
			Error:      false,
			NotifyType: "success",
			Action:     result.Action,
			Message:    msg,
			Icon:       iconSaved,
		}})
	}
}

// Preview handles GET /screens/:code/preview, rendering the screen with the
// requested renderer ("htmltable" when unspecified).
func (h *Handlers) Preview() gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		name := c.DefaultQuery("renderer", "htmltable")

		renderer, err := h.registry.Get(name)
		if err != nil {
			c.String(http.StatusBadRequest, "unknown renderer %q", name)
			return
		}

		scr := screen.New(code, c.Query("sessionID"), h.cfg, h.manager,
			screen.WithUser(c.DefaultQuery("user", screen.DefaultUser)),
			screen.WithTitle(c.Query("title")),
			screen.WithDebug(c.Query("debug") != ""),
			screen.WithLogger(h.log),
		)

		out, err := scr.Render(c.Request.Context(), renderer)
		if err != nil {
			h.log.Error().Err(err).Str("code", code).Msg("render preview")
			c.String(http.StatusInternalServerError, "screen could not be rendered")
			return
		}
		c.Data(http.StatusOK, renderer.ContentType(), out)
	}
}

// Routes mounts the handlers on a gin router group.
func (h *Handlers) Routes(r gin.IRouter) {
	r.POST("/screens/:code/formatter", h.SaveFormatter())
	r.GET("/screens/:code/preview", h.Preview())
}

func failureResponse(code, userID, current, message string) Response {
	return failureResponseWithMessage(code, userID, current, "", message)
}

func failureResponseWithAction(code, userID, current, action string) Response {
	return failureResponseWithMessage(code, userID, current, action, "")
}

func failureResponseWithMessage(code, userID, current, action, message string) Response {
	if message == "" {
		message = fmt.Sprintf("The configuration for %s was not able to be saved, you may have not made any discernable changes.", userID)
		if userID == "" || userID == current {
			message = fmt.Sprintf("Your configuration (%s) was not able to be saved, you may have not made any discernable changes.", code)
		}
	}
	return Response{Response: ResponseBody{
		Error:      true,
		NotifyType: "danger",
		Action:     action,
		Message:    message,
		Icon:       iconFailed,
	}}
}
