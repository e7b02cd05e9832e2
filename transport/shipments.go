package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rendyfeb/logistics/constant"
	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/utils/errors"
	validatorx "github.com/rendyfeb/logistics/utils/validator"
)

func (s *RestHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ShipmentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.ShipmentApp.CreateShipment(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, res)
}

func (s *RestHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := queryPagination(r)

	filter := model.ShipmentFilter{
		Status:  constant.ShipmentStatus(r.URL.Query().Get("status")),
		OrderID: queryUint(r, "orderId"),
		Page:    p.Page,
		Limit:   p.Limit,
	}
	shipments, total, err := s.ShipmentApp.ListShipments(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeListHeaders(w, total, p)
	writeSuccess(w, shipments)
}

func (s *RestHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ShipmentApp.GetShipment(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) UpdateShipmentStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.ShipmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}

	res, err := s.ShipmentApp.UpdateShipmentStatus(ctx, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) CancelShipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ShipmentApp.CancelShipment(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
