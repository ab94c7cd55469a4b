package showcase

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ProductShowcase/internal/session"
	"ProductShowcase/pkg/kit"
)

type createResp struct {
	ID   string       `json:"id"`
	View session.View `json:"view"`
}

type queryReq struct {
	Query string `json:"query"`
}

type productReq struct {
	ProductID int `json:"product_id"`
}

func (s *Server) apiCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Create(r.Context())
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	v, err := sess.Snapshot()
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, createResp{ID: sess.ID(), View: v})
}

func (s *Server) apiView(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(*session.Session) error { return nil })
}

func (s *Server) apiClose(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Close(chi.URLParam(r, "sessionID")); err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiSetQuery(w http.ResponseWriter, r *http.Request) {
	var req queryReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		return sess.SetQuery(req.Query)
	})
}

func (s *Server) apiSelect(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		return sess.SelectProduct(req.ProductID)
	})
}

func (s *Server) apiDismiss(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, (*session.Session).DismissSelection)
}

func (s *Server) apiAdd(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	s.withSession(w, r, func(sess *session.Session) error {
		return sess.AddToCart(req.ProductID)
	})
}

func (s *Server) apiPurchase(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, (*session.Session).PurchaseSelected)
}

// withSession resolves the session from the URL, applies op and responds
// with the resulting view.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, op func(*session.Session) error) {
	sess, err := s.Sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	if err := op(sess); err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	v, err := sess.Snapshot()
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, v)
}
