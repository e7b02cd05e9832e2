package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/utils/errors"
	validatorx "github.com/rendyfeb/logistics/utils/validator"
)

func (s *RestHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CustomerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.CustomerApp.CreateCustomer(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, res)
}

func (s *RestHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := queryPagination(r)

	customers, total, err := s.CustomerApp.ListCustomers(ctx, r.URL.Query().Get("q"), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeListHeaders(w, total, p)
	writeSuccess(w, customers)
}

func (s *RestHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CustomerApp.GetCustomer(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.CustomerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.CustomerApp.UpdateCustomer(ctx, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.CustomerApp.DeleteCustomer(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
