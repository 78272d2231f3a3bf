package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"logistics-crm/internal/api/reqctx"
	"logistics-crm/internal/pricing"
	"logistics-crm/internal/usecase"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	registerUserUC *usecase.RegisterUser
	loginUserUC    *usecase.LoginUser

	createLeadUC *usecase.CreateLead
	getLeadUC    *usecase.GetLead
	listLeadsUC  *usecase.ListLeads
	updateLeadUC *usecase.UpdateLead
	deleteLeadUC *usecase.DeleteLead

	createOrderUC *usecase.CreateOrder
	getOrderUC    *usecase.GetOrder
	listOrdersUC  *usecase.ListOrders
	updateOrderUC *usecase.UpdateOrder
	deleteOrderUC *usecase.DeleteOrder

	quotePriceUC   *usecase.QuotePrice
	repriceOrderUC *usecase.RepriceOrder
}

func NewHandlers(
	registerUserUC *usecase.RegisterUser,
	loginUserUC *usecase.LoginUser,
	createLeadUC *usecase.CreateLead,
	getLeadUC *usecase.GetLead,
	listLeadsUC *usecase.ListLeads,
	updateLeadUC *usecase.UpdateLead,
	deleteLeadUC *usecase.DeleteLead,
	createOrderUC *usecase.CreateOrder,
	getOrderUC *usecase.GetOrder,
	listOrdersUC *usecase.ListOrders,
	updateOrderUC *usecase.UpdateOrder,
	deleteOrderUC *usecase.DeleteOrder,
	quotePriceUC *usecase.QuotePrice,
	repriceOrderUC *usecase.RepriceOrder,
) *Handlers {
	return &Handlers{
		registerUserUC: registerUserUC,
		loginUserUC:    loginUserUC,
		createLeadUC:   createLeadUC,
		getLeadUC:      getLeadUC,
		listLeadsUC:    listLeadsUC,
		updateLeadUC:   updateLeadUC,
		deleteLeadUC:   deleteLeadUC,
		createOrderUC:  createOrderUC,
		getOrderUC:     getOrderUC,
		listOrdersUC:   listOrdersUC,
		updateOrderUC:  updateOrderUC,
		deleteOrderUC:  deleteOrderUC,
		quotePriceUC:   quotePriceUC,
		repriceOrderUC: repriceOrderUC,
	}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var params usecase.RegisterUserParams
	if !decodeJSON(w, r, &params) {
		return
	}

	token, err := h.registerUserUC.Execute(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var params usecase.LoginUserParams
	if !decodeJSON(w, r, &params) {
		return
	}

	token, err := h.loginUserUC.Execute(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (h *Handlers) CreateLead(w http.ResponseWriter, r *http.Request) {
	var params usecase.CreateLeadParams
	if !decodeJSON(w, r, &params) {
		return
	}

	id := reqctx.IdentityFrom(r.Context())
	l, err := h.createLeadUC.Execute(r.Context(), params, id.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, l)
}

func (h *Handlers) GetLead(w http.ResponseWriter, r *http.Request) {
	l, err := h.getLeadUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, l)
}

func (h *Handlers) ListLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := usecase.ListLeadsParams{
		OriginZip:   q.Get("origin_zip"),
		DestZip:     q.Get("dest_zip"),
		VehicleType: q.Get("vehicle_type"),
		Limit:       intQuery(q.Get("limit"), 20),
		Offset:      intQuery(q.Get("offset"), 0),
	}
	if v := q.Get("operable"); v != "" {
		operable := v == "true" || v == "1"
		params.Operable = &operable
	}

	id := reqctx.IdentityFrom(r.Context())
	leads, err := h.listLeadsUC.Execute(r.Context(), id.UserID, params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, leads)
}

func (h *Handlers) UpdateLead(w http.ResponseWriter, r *http.Request) {
	var params usecase.UpdateLeadParams
	if !decodeJSON(w, r, &params) {
		return
	}

	l, err := h.updateLeadUC.Execute(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, l)
}

func (h *Handlers) DeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := h.deleteLeadUC.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var params usecase.CreateOrderParams
	if !decodeJSON(w, r, &params) {
		return
	}

	o, err := h.createOrderUC.Execute(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, o)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.getOrderUC.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := usecase.ListOrdersParams{
		LeadID: q.Get("lead_id"),
		Status: q.Get("status"),
		Limit:  intQuery(q.Get("limit"), 20),
		Offset: intQuery(q.Get("offset"), 0),
	}

	orders, err := h.listOrdersUC.Execute(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var params usecase.UpdateOrderParams
	if !decodeJSON(w, r, &params) {
		return
	}

	o, err := h.updateOrderUC.Execute(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.deleteOrderUC.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Quote(w http.ResponseWriter, r *http.Request) {
	var quote pricing.Quote
	if !decodeJSON(w, r, &quote) {
		return
	}

	breakdown, err := h.quotePriceUC.Execute(quote)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"price_breakdown": breakdown,
		"final_price":     breakdown.FinalPrice,
	})
}

func (h *Handlers) Reprice(w http.ResponseWriter, r *http.Request) {
	var params usecase.RepriceOrderParams
	if !decodeJSON(w, r, &params) {
		return
	}

	taskID, err := h.repriceOrderUC.Execute(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"task_id": taskID,
		"message": "Repricing task queued",
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		respondJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"detail": err.Error()})
	case errors.Is(err, usecase.ErrBadCredentials):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"detail": err.Error()})
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

func intQuery(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
