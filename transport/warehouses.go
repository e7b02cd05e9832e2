package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/utils/errors"
	validatorx "github.com/rendyfeb/logistics/utils/validator"
)

func (s *RestHandler) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.WarehouseCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.WarehouseApp.CreateWarehouse(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, res)
}

func (s *RestHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := queryPagination(r)

	warehouses, total, err := s.WarehouseApp.ListWarehouses(ctx, r.URL.Query().Get("q"), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeListHeaders(w, total, p)
	writeSuccess(w, warehouses)
}

func (s *RestHandler) GetWarehouse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	wh, err := s.WarehouseApp.GetWarehouse(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	if includes(r, "stock") {
		records, err := s.WarehouseApp.GetWarehouseStock(ctx, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeSuccess(w, struct {
			*model.Warehouse
			Stock []model.StockRecord `json:"stock"`
		}{wh, records})
		return
	}
	writeSuccess(w, wh)
}

func includes(r *http.Request, relation string) bool {
	for _, part := range strings.Split(r.URL.Query().Get("include"), ",") {
		if strings.TrimSpace(part) == relation {
			return true
		}
	}
	return false
}

func (s *RestHandler) UpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.WarehouseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.WarehouseApp.UpdateWarehouse(ctx, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) DeleteWarehouse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.WarehouseApp.DeleteWarehouse(ctx, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
