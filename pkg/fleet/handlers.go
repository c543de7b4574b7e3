// Copyright 2026 Velodrive Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fleet

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/velodrive/platform-api/internal/logging"
	"github.com/velodrive/platform-api/internal/monitoring"
	"github.com/velodrive/platform-api/internal/storage"
	"github.com/velodrive/platform-api/internal/tracing"
	"github.com/velodrive/platform-api/internal/types"
)

// API serves the tenant-scoped fleet endpoints. Handlers never read a tenant
// ID from the request; the rows they can touch are decided by the session
// binding established before the handler runs.
type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(router chi.Router) {
	router.Post("/api/v0/vehicles", a.createVehicle)
	router.Get("/api/v0/vehicles", a.listVehicles)
	router.Get("/api/v0/vehicles/{id}", a.getVehicle)
	router.Patch("/api/v0/vehicles/{id}", a.updateVehicle)
	router.Delete("/api/v0/vehicles/{id}", a.deleteVehicle)

	router.Post("/api/v0/bookings", a.createBooking)
	router.Get("/api/v0/bookings", a.listBookings)
	router.Get("/api/v0/bookings/{id}", a.getBooking)
}

func (a *API) createVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "fleet.API.createVehicle")
	defer span.End()

	var req CreateVehicleRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	created, err := a.service.CreateVehicle(ctx, &types.Vehicle{
		Name:    req.Name,
		Plate:   req.Plate,
		Class:   req.Class,
		Seats:   req.Seats,
		Enabled: true,
	})
	if err != nil {
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, toVehicleResponse(created))
}

func (a *API) listVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "fleet.API.listVehicles")
	defer span.End()

	vehicles, err := a.service.ListVehicles(ctx)
	if err != nil {
		a.internalError(w, err)
		return
	}

	out := make([]*VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		out[i] = toVehicleResponse(v)
	}

	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) getVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "fleet.API.getVehicle")
	defer span.End()

	v, err := a.service.GetVehicle(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, toVehicleResponse(v))
}

func (a *API) updateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "fleet.API.updateVehicle")
	defer span.End()

	var req UpdateVehicleRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	v := &types.Vehicle{ID: chi.URLParam(r, "id")}
	var paths []string
	if req.Name != nil {
		v.Name = *req.Name
		paths = append(paths, "name")
	}
	if req.Plate != nil {
		v.Plate = *req.Plate
		paths = append(paths, "plate")
	}
	if req.Class != nil {
		v.Class = *req.Class
		paths = append(paths, "class")
	}
	if req.Seats != nil {
		v.Seats = *req.Seats
		paths = append(paths, "seats")
	}
	if req.Enabled != nil {
		v.Enabled = *req.Enabled
		paths = append(paths, "enabled")
	}

	updated, err := a.service.UpdateVehicle(ctx, v, paths)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, toVehicleResponse(updated))
}

func (a *API) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "fleet.API.deleteVehicle")
	defer span.End()

	if err := a.service.DeleteVehicle(ctx, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		a.internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) createBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "fleet.API.createBooking")
	defer span.End()

	var req CreateBookingRequest
	if err := a.decode(r, &req); err != nil {
		a.badRequest(w, err)
		return
	}

	created, err := a.service.CreateBooking(ctx, &types.Booking{
		VehicleID:  req.VehicleID,
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
		PickupTime: req.PickupTime,
		PriceCents: req.PriceCents,
		Currency:   req.Currency,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, toBookingResponse(created))
}

func (a *API) listBookings(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "fleet.API.listBookings")
	defer span.End()

	bookings, err := a.service.ListBookings(ctx)
	if err != nil {
		a.internalError(w, err)
		return
	}

	out := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResponse(b)
	}

	a.writeJSON(w, http.StatusOK, out)
}

func (a *API) getBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "fleet.API.getBooking")
	defer span.End()

	b, err := a.service.GetBooking(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		a.internalError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, toBookingResponse(b))
}

func (a *API) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return a.validate.Struct(v)
}

func (a *API) badRequest(w http.ResponseWriter, err error) {
	a.logger.Debugf("invalid request: %v", err)
	a.writeError(w, http.StatusBadRequest, "invalid request body")
}

func (a *API) internalError(w http.ResponseWriter, err error) {
	a.logger.Errorf("request failed: %v", err)
	a.writeError(w, http.StatusInternalServerError, "internal error")
}

func (a *API) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]interface{}{
		"status":  status,
		"message": message,
	})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
