package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"grubdash/internal/common/httpx"
	"grubdash/internal/common/logger"
	"grubdash/internal/common/payload"
	"grubdash/internal/microservices/dishes/service"
)

type DishHandler struct {
	service service.DishServiceInterface
	lg      *logger.Logger
}

func NewDishHandler(s service.DishServiceInterface, lg *logger.Logger) *DishHandler {
	return &DishHandler{service: s, lg: lg}
}

// Routes mounts the dish endpoints. DELETE and every other verb fall
// through to the 405 handler.
func (h *DishHandler) Routes(r *mux.Router) {
	r.HandleFunc("/dishes", h.List).Methods(http.MethodGet)
	r.HandleFunc("/dishes", h.Create).Methods(http.MethodPost)
	r.Handle("/dishes", httpx.MethodNotAllowed(h.lg))

	r.HandleFunc("/dishes/{dishId}", h.Read).Methods(http.MethodGet)
	r.HandleFunc("/dishes/{dishId}", h.Update).Methods(http.MethodPut)
	r.Handle("/dishes/{dishId}", httpx.MethodNotAllowed(h.lg))
}

func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.WriteData(w, http.StatusOK, h.service.List(r.Context()))
}

func (h *DishHandler) Read(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Read(h.request(r, nil))
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, d)
}

func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, err := payload.Decode(r.Body)
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	d, err := h.service.Create(h.request(r, data))
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, d)
}

func (h *DishHandler) Update(w http.ResponseWriter, r *http.Request) {
	data, err := payload.Decode(r.Body)
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	d, err := h.service.Update(h.request(r, data))
	if err != nil {
		httpx.WriteError(h.lg, w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, d)
}

func (h *DishHandler) request(r *http.Request, data payload.Data) *service.DishRequest {
	return &service.DishRequest{
		Ctx:       r.Context(),
		RequestID: httpx.RequestID(r),
		DishID:    mux.Vars(r)["dishId"],
		Body:      data,
	}
}
