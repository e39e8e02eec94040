package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"grubdash/internal/common/httpx"
	"grubdash/internal/common/logger"
	"grubdash/internal/common/payload"
	"grubdash/internal/microservices/orders/service"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

func (h *OrderHandler) Routes(r *mux.Router) {
	r.HandleFunc("/orders", h.List).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.Create).Methods(http.MethodPost)
	r.Handle("/orders", httpx.MethodNotAllowed(h.lg))

	r.HandleFunc("/orders/{orderId}", h.Read).Methods(http.MethodGet)
	r.HandleFunc("/orders/{orderId}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/orders/{orderId}", h.Delete).Methods(http.MethodDelete)
	r.Handle("/orders/{orderId}", httpx.MethodNotAllowed(h.lg))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.WriteData(w, http.StatusOK, h.service.List(r.Context()))
}

func (h *OrderHandler) Read(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Read(h.request(r, nil))
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, o)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, err := payload.Decode(r.Body)
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	o, err := h.service.Create(h.request(r, data))
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, o)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	data, err := payload.Decode(r.Body)
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	o, err := h.service.Update(h.request(r, data))
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, o)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(h.request(r, nil)); err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) request(r *http.Request, data payload.Data) *service.OrderRequest {
	return &service.OrderRequest{
		Ctx:       r.Context(),
		RequestID: httpx.RequestID(r),
		OrderID:   mux.Vars(r)["orderId"],
		Body:      data,
	}
}
