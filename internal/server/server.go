// Package server exposes a webjump registry over HTTP so that a browser
// search keyword can point at it.
package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robottwo/webjump/internal/completion"
	"github.com/robottwo/webjump/internal/history"
	"github.com/robottwo/webjump/internal/webjump"
	"github.com/robottwo/webjump/pkg/shellinput"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 50
	shutdownTimeout     = 5 * time.Second
)

// History is the part of the jump log the server uses.
type History interface {
	Record(input, webjump, argument, url string) (*history.JumpEntry, error)
	GetRecentEntries(webjump string, limit int) ([]history.JumpEntry, error)
}

type Server struct {
	registry     *webjump.Registry
	history      History
	conservative bool
	logger       *zap.Logger
	echo         *echo.Echo
}

// New creates a server for registry. history may be nil, in which case jumps
// are not recorded and /history is unavailable.
func New(registry *webjump.Registry, history History, conservative bool, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		registry:     registry,
		history:      history,
		conservative: conservative,
		logger:       logger,
	}
	s.echo = s.routes()
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error))
			return nil
		},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "webjumps": s.registry.Len()})
	})
	e.GET("/jump", s.handleJump)
	e.GET("/resolve", s.handleResolve)
	e.GET("/complete", s.handleComplete)
	e.GET("/webjumps", s.handleWebjumps)
	e.GET("/search", s.handleSearch)
	e.GET("/history", s.handleHistory)

	return e
}

type resolution struct {
	Input    string `json:"input"`
	Webjump  string `json:"webjump,omitempty"`
	Argument string `json:"argument,omitempty"`
	URL      string `json:"url"`
}

// resolve maps input to a URL. Input that names no webjump resolves to itself
// when it is an absolute URL.
func (s *Server) resolve(input string) (*resolution, int, error) {
	m, err := s.registry.Match(input)
	if err != nil {
		if errors.Is(err, webjump.ErrMissingArgument) {
			return nil, http.StatusBadRequest, err
		}
		return nil, http.StatusInternalServerError, err
	}
	if m == nil {
		if isAbsoluteURL(input) {
			return &resolution{Input: input, URL: input}, http.StatusOK, nil
		}
		return nil, http.StatusNotFound, errors.New("no webjump matches " + strconv.Quote(input))
	}
	return &resolution{
		Input:    input,
		Webjump:  m.Definition.Key,
		Argument: m.Argument,
		URL:      m.URL(),
	}, http.StatusOK, nil
}

func (s *Server) record(r *resolution) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Record(r.Input, r.Webjump, r.Argument, r.URL); err != nil {
		s.logger.Warn("failed to record jump", zap.String("input", r.Input), zap.Error(err))
	}
}

func (s *Server) handleJump(c echo.Context) error {
	r, status, err := s.resolve(c.QueryParam("q"))
	if err != nil {
		return c.JSON(status, echo.Map{"error": err.Error()})
	}
	s.record(r)
	return c.Redirect(http.StatusFound, r.URL)
}

func (s *Server) handleResolve(c echo.Context) error {
	r, status, err := s.resolve(c.QueryParam("q"))
	if err != nil {
		return c.JSON(status, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, r)
}

type candidate struct {
	Value       string `json:"value"`
	Display     string `json:"display,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleComplete(c echo.Context) error {
	input := c.QueryParam("q")

	pos := len(input)
	if p := c.QueryParam("pos"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid pos " + strconv.Quote(p)})
		}
		pos = n
	}

	conservative := s.conservative
	if v := c.QueryParam("conservative"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid conservative " + strconv.Quote(v)})
		}
		conservative = b
	}

	candidates, err := s.registry.Completions(c.Request().Context(), input, pos, conservative)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"completions": lo.Map(candidates, func(cc shellinput.CompletionCandidate, _ int) candidate {
			return candidate{Value: cc.Value, Display: cc.Display, Description: cc.Description}
		}),
	})
}

type definition struct {
	Name        string `json:"name"`
	Template    string `json:"template,omitempty"`
	Alternative string `json:"alternative,omitempty"`
	Argument    string `json:"argument"`
	Description string `json:"description,omitempty"`
}

func toDefinition(def *webjump.Definition) definition {
	return definition{
		Name:        def.Key,
		Template:    def.Template,
		Alternative: def.Alternative,
		Argument:    def.Argument.String(),
		Description: def.Description,
	}
}

func (s *Server) handleWebjumps(c echo.Context) error {
	return c.JSON(http.StatusOK, lo.Map(s.registry.Definitions(), func(def *webjump.Definition, _ int) definition {
		return toDefinition(def)
	}))
}

func (s *Server) handleSearch(c echo.Context) error {
	limit, err := queryLimit(c, 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	results := completion.Find(s.registry, c.QueryParam("q"), limit)
	return c.JSON(http.StatusOK, lo.Map(results, func(r completion.FindResult, _ int) definition {
		return toDefinition(r.Definition)
	}))
}

type jump struct {
	Time     time.Time `json:"time"`
	Input    string    `json:"input"`
	Webjump  string    `json:"webjump,omitempty"`
	Argument string    `json:"argument,omitempty"`
	URL      string    `json:"url"`
}

func (s *Server) handleHistory(c echo.Context) error {
	if s.history == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "history is disabled"})
	}
	limit, err := queryLimit(c, defaultHistoryLimit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	entries, err := s.history.GetRecentEntries(c.QueryParam("webjump"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, lo.Map(entries, func(e history.JumpEntry, _ int) jump {
		return jump{Time: e.CreatedAt, Input: e.Input, Webjump: e.Webjump, Argument: e.Argument, URL: e.URL}
	}))
}

func queryLimit(c echo.Context, def int) (int, error) {
	v := c.QueryParam("limit")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid limit " + strconv.Quote(v))
	}
	return n, nil
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
