package album

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ShopAPI/pkg/kit"
)

const msgNotFound = "Album not found"

// field is one validated album attribute. Order matters: create and update
// both check fields in this order and report the first failure.
type field struct {
	key string
	msg string
	set func(*Album, string)
}

var fields = []field{
	{key: "artist", msg: "Artist must be a non-empty string", set: func(a *Album, v string) { a.Artist = v }},
	{key: "title", msg: "Title must be a non-empty string", set: func(a *Album, v string) { a.Title = v }},
	{key: "format", msg: "Format must be a non-empty string", set: func(a *Album, v string) { a.Format = v }},
}

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Register(r chi.Router) {
	r.Post("/albums", s.create)
	r.Get("/albums", s.list)
	r.Get("/albums/{id}", s.get)
	r.Put("/albums/{id}", s.update)
	r.Delete("/albums/{id}", s.remove)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	body, err := kit.DecodeFields(w, r)
	if err != nil {
		kit.WriteDecodeError(w, r, err)
		return
	}

	var a Album
	for _, f := range fields {
		v, err := body.Text(f.key, f.msg)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		f.set(&a, v)
	}

	created, err := s.Store.Create(r.Context(), a)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	albums, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, albums)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}

	a, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, a)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	body, err := kit.DecodeFields(w, r)
	if err != nil {
		kit.WriteDecodeError(w, r, err)
		return
	}

	id, ok := parseID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}

	a, found, err := s.Store.Update(r.Context(), id, func(a *Album) error {
		for _, f := range fields {
			if !body.Has(f.key) {
				continue
			}
			v, err := body.Text(f.key, f.msg)
			if err != nil {
				return err
			}
			f.set(a, v)
		}
		return nil
	})
	if !found && err == nil {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, a)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}

	a, found, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, a)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *kit.ValidationError
	if errors.As(err, &verr) {
		if s.Log != nil {
			s.Log.Debug("album rejected", zap.String("field", verr.Field), zap.String("reason", verr.Message))
		}
		kit.WriteError(w, r, http.StatusBadRequest, verr.Message, nil)
		return
	}

	if s.Log != nil {
		s.Log.Error("album store failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
