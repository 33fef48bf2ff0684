package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ShopAPI/pkg/kit"
)

const (
	msgNotFound = "Product not found"
	msgName     = "Name must be a non-empty string"
	msgPrice    = "Price must be a number"
	msgStock    = "Stock must be an integer"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

// Register mounts the product routes on r.
func (s *Server) Register(r chi.Router) {
	r.Post("/products", s.create)
	r.Get("/products", s.list)
	r.Get("/products/{id}", s.get)
	r.Put("/products/{id}", s.update)
	r.Delete("/products/{id}", s.remove)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	fields, err := kit.DecodeFields(w, r)
	if err != nil {
		kit.WriteDecodeError(w, r, err)
		return
	}

	p, err := newProduct(fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.Store.Create(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}

	p, found, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	fields, err := kit.DecodeFields(w, r)
	if err != nil {
		kit.WriteDecodeError(w, r, err)
		return
	}

	id, ok := parseID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}

	p, found, err := s.Store.Update(r.Context(), id, applyFields(fields))
	if !found && err == nil {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}

	p, found, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *kit.ValidationError
	if errors.As(err, &verr) {
		if s.Log != nil {
			s.Log.Debug("product rejected", zap.String("field", verr.Field), zap.String("reason", verr.Message))
		}
		kit.WriteError(w, r, http.StatusBadRequest, verr.Message, nil)
		return
	}

	if s.Log != nil {
		s.Log.Error("product store failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

// parseID reports false for anything that is not a base-10 int64; such ids
// cannot match a product.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// newProduct validates a create body: name, then price, then stock.
func newProduct(f kit.Fields) (Product, error) {
	name, err := f.Text("name", msgName)
	if err != nil {
		return Product{}, err
	}
	price, err := f.Number("price", msgPrice)
	if err != nil {
		return Product{}, err
	}
	stock, err := f.Integer("stock", msgStock)
	if err != nil {
		return Product{}, err
	}
	return Product{Name: name, Price: price, Stock: stock}, nil
}

// applyFields sets each field present in f, in order, stopping at the first
// invalid one. Fields set before the failure stay set.
func applyFields(f kit.Fields) func(*Product) error {
	return func(p *Product) error {
		if f.Has("name") {
			name, err := f.Text("name", msgName)
			if err != nil {
				return err
			}
			p.Name = name
		}
		if f.Has("price") {
			price, err := f.Number("price", msgPrice)
			if err != nil {
				return err
			}
			p.Price = price
		}
		if f.Has("stock") {
			stock, err := f.Integer("stock", msgStock)
			if err != nil {
				return err
			}
			p.Stock = stock
		}
		return nil
	}
}
