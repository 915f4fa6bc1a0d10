package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ladangworks/estate-backend-go/internal/domain/paycalc"
	"github.com/ladangworks/estate-backend-go/internal/handler/http/response"
)

type PayCalcHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListDetails(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
}

type payCalcHandlerImpl struct {
	payCalcService paycalc.PayCalculationService
}

func NewPayCalcHandler(payCalcService paycalc.PayCalculationService) PayCalcHandler {
	return &payCalcHandlerImpl{payCalcService: payCalcService}
}

func (h *payCalcHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req paycalc.GeneratePayCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payCalcService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay calculation generated", result)
}

func (h *payCalcHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pay calculation ID is required", nil)
		return
	}

	result, err := h.payCalcService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payCalcHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 20

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	result, err := h.payCalcService.List(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *payCalcHandlerImpl) ListDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pay calculation ID is required", nil)
		return
	}

	var status *paycalc.DetailStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := paycalc.DetailStatus(statusStr)
		if s != paycalc.DetailStatusComputed && s != paycalc.DetailStatusFailed {
			response.BadRequest(w, "Invalid status filter", nil)
			return
		}
		status = &s
	}

	result, err := h.payCalcService.ListDetails(r.Context(), id, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payCalcHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pay calculation ID is required", nil)
		return
	}

	result, err := h.payCalcService.Finalize(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay calculation finalized", result)
}
