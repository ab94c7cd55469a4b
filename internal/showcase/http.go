// Package showcase serves the product showcase over HTTP: an HTML page kept
// in a signed session cookie and a JSON API over the same session
// operations.
package showcase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"ProductShowcase/internal/catalog"
	"ProductShowcase/internal/session"
	"ProductShowcase/pkg/kit"
)

const readyTimeout = 1 * time.Second

// Pinger is a dependency checked by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PageInfo struct {
	Title       string
	Description string
}

type Server struct {
	Sessions  *session.Manager
	Catalog   catalog.Store
	Tokens    *TokenMaker
	Page      PageInfo
	CookieTTL time.Duration
	Ready     map[string]Pinger
	Log       *zap.Logger

	// CreateLimiter caps new sessions per client, whether they come from
	// the API or from a cookieless page visit. NewHandler fills it in.
	CreateLimiter *kit.IPRateLimiter
}

var errRateLimited = errors.New("session creation rate limited")

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Catalog.Ping(ctx); err != nil {
		s.warn("readyz failed: catalog", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
		return
	}
	for name, p := range s.Ready {
		if err := p.Ping(ctx); err != nil {
			s.warn("readyz failed: "+name, zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, name+" not ready", nil)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) warn(msg string, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Warn(msg, fields...)
	}
}

func (s *Server) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errRateLimited):
		s.CreateLimiter.Reject(w, r)
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrClosed):
		kit.WriteError(w, r, http.StatusNotFound, "session not found", nil)
	case errors.Is(err, session.ErrUnknownProduct):
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", nil)
	case errors.Is(err, session.ErrNoSelection):
		kit.WriteError(w, r, http.StatusConflict, "no product selected", nil)
	default:
		if s.Log != nil {
			s.Log.Error("session operation failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func parseProductID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return id, nil
}
