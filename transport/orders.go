package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/utils/errors"
	validatorx "github.com/rendyfeb/logistics/utils/validator"
)

func parseIncludes(r *http.Request) []string {
	raw := r.URL.Query().Get("include")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.OrderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.OrderApp.CreateOrder(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, res)
}

func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := queryPagination(r)

	filter := model.OrderFilter{
		Status: constant.OrderStatus(r.URL.Query().Get("status")),
		Page:   p.Page,
		Limit:  p.Limit,
	}
	orders, total, err := s.OrderApp.ListOrders(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	include := parseIncludes(r)
	if len(include) == 0 {
		writeListHeaders(w, total, p)
		writeSuccess(w, orders)
		return
	}

	views := make([]model.OrderView, 0, len(orders))
	for i := range orders {
		v, err := s.OrderApp.View(ctx, &orders[i], include)
		if err != nil {
			writeError(w, err)
			return
		}
		views = append(views, *v)
	}
	writeListHeaders(w, total, p)
	writeSuccess(w, views)
}

func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	o, err := s.OrderApp.GetOrder(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	include := parseIncludes(r)
	if len(include) == 0 {
		writeSuccess(w, o)
		return
	}

	v, err := s.OrderApp.View(ctx, o, include)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, v)
}

func (s *RestHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.OrderUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.OrderApp.UpdateOrder(ctx, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.OrderApp.CancelOrder(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
