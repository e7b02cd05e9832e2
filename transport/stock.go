package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rendyfeb/logistics/model"
	"github.com/rendyfeb/logistics/utils/errors"
	validatorx "github.com/rendyfeb/logistics/utils/validator"
)

func (s *RestHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.StockAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}

	res, err := s.StockApp.Adjust(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) MoveStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.StockMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetValidationError("request body must be valid JSON"))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetValidationError(validatorx.FieldMessages(err)...))
		return
	}
	if req.FromWarehouseID == req.ToWarehouseID {
		writeError(w, errors.SetValidationError("fromWarehouseId and toWarehouseId must differ"))
		return
	}

	res, err := s.StockApp.Move(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) ListStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := model.StockFilter{
		WarehouseID: queryUint(r, "warehouseId"),
		ProductID:   queryUint(r, "productId"),
	}
	records, err := s.StockApp.List(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, records)
}
