package census

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
	"go.uber.org/zap"
)

// LookupResponse is the body of a successful lookup.
type LookupResponse struct {
	Sig     string  `json:"sig"`
	Count   int     `json:"count"`
	Entries []Entry `json:"entries"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server answers census lookups over HTTP.
type Server struct {
	src    Source
	logger *zap.Logger
}

// NewServer serves src. A nil logger is replaced by a no-op one.
func NewServer(src Source, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{src: src, logger: logger}
}

// Register adds the routes to e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/lookup/:sig", s.handleLookup)
	e.GET("/healthz", s.handleHealth)
}

// Handler returns a standalone handler serving the routes.
func (s *Server) Handler() http.Handler {
	e := echo.New()
	s.Register(e)
	return e
}

func (s *Server) handleLookup(c *echo.Context) error {
	sig := c.Param("sig")
	if sig == "" {
		return writeJSON(c, http.StatusBadRequest, ErrorResponse{Error: "empty signature"})
	}
	entries, err := s.src.Lookup(c.Request().Context(), sig)
	if err != nil {
		s.logger.Warn("census lookup failed", zap.String("sig", sig), zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		return writeJSON(c, status, ErrorResponse{Error: err.Error()})
	}
	s.logger.Debug("census lookup", zap.String("sig", sig), zap.Int("hits", len(entries)))
	return writeJSON(c, http.StatusOK, LookupResponse{Sig: sig, Count: len(entries), Entries: entries})
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(c *echo.Context, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}
