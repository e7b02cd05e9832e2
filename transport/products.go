package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/utils/errors"
	validatorx "github.com/rendyfeb/logistics/utils/validator"
)

func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ProductCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.ProductApp.CreateProduct(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, res)
}

func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := queryPagination(r)

	products, total, err := s.ProductApp.ListProducts(ctx, r.URL.Query().Get("q"), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeListHeaders(w, total, p)
	writeSuccess(w, products)
}

func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.GetProduct(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.ProductUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.ProductApp.UpdateProduct(ctx, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.ProductApp.DeleteProduct(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
