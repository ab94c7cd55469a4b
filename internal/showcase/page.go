package showcase

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ProductShowcase/internal/session"
	"ProductShowcase/pkg/kit"
)

const cookieName = "showcase_session"

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.pageSession(w, r)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	if q := r.URL.Query(); q.Has("q") {
		if err := sess.SetQuery(q.Get("q")); err != nil {
			s.writeSessionError(w, r, err)
			return
		}
	}

	v, err := sess.Snapshot()
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := renderPage(w, s.Page, v); err != nil && s.Log != nil {
		s.Log.Error("render page failed", zap.Error(err))
	}
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	s.pageAction(w, r, func(sess *session.Session, id int) error {
		return sess.SelectProduct(id)
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	s.pageAction(w, r, func(sess *session.Session, id int) error {
		return sess.AddToCart(id)
	})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.pageAction(w, r, func(sess *session.Session, _ int) error {
		return sess.DismissSelection()
	})
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	s.pageAction(w, r, func(sess *session.Session, _ int) error {
		err := sess.PurchaseSelected()
		if errors.Is(err, session.ErrNoSelection) {
			return nil
		}
		return err
	})
}

// pageAction applies a form post to the cookie session and redirects back
// to the page. Routes without a product id pass 0.
func (s *Server) pageAction(w http.ResponseWriter, r *http.Request, op func(*session.Session, int) error) {
	var id int
	if raw := chi.URLParam(r, "productID"); raw != "" {
		var err error
		if id, err = parseProductID(raw); err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "bad product id", map[string]any{"id": raw})
			return
		}
	}

	sess, err := s.pageSession(w, r)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	if err := op(sess, id); err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// pageSession resolves the cookie session, starting a new one when the
// cookie is missing, forged, expired or points at a reaped session. The
// cookie is re-issued on every call so its expiry slides with activity.
// New sessions count against CreateLimiter like POST /api/sessions.
func (s *Server) pageSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if c, err := r.Cookie(cookieName); err == nil {
		if id, err := s.Tokens.Parse(c.Value); err == nil {
			if sess, err := s.Sessions.Get(id); err == nil {
				return sess, s.setCookie(w, sess.ID())
			}
		}
	}

	if s.CreateLimiter != nil && !s.CreateLimiter.AllowRequest(r) {
		return nil, errRateLimited
	}
	sess, err := s.Sessions.Create(r.Context())
	if err != nil {
		return nil, err
	}
	return sess, s.setCookie(w, sess.ID())
}

func (s *Server) setCookie(w http.ResponseWriter, sessionID string) error {
	ttl := s.CookieTTL
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}

	tok, err := s.Tokens.New(sessionID, ttl)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
