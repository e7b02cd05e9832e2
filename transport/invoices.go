package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/utils/errors"
	validatorx "github.com/rendyfeb/logistics/utils/validator"
)

func (s *RestHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.InvoiceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.InvoiceApp.CreateInvoice(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, res)
}

func (s *RestHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := queryPagination(r)

	filter := model.InvoiceFilter{
		Status:     constant.InvoiceStatus(r.URL.Query().Get("status")),
		CustomerID: queryUint(r, "customerId"),
		Page:       p.Page,
		Limit:      p.Limit,
	}
	invoices, total, err := s.InvoiceApp.ListInvoices(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeListHeaders(w, total, p)
	writeSuccess(w, invoices)
}

func (s *RestHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.InvoiceApp.GetInvoice(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.InvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}

	res, err := s.InvoiceApp.UpdateInvoiceStatus(ctx, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
