package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/services"
)

var validate = validator.New()

type RouteHandler struct {
	Planner *services.Planner
}

// PlanRoute handles POST /route: validate the request, run the planning
// pipeline, and map planning failures to user-facing errors. Expected
// planning outcomes (location not found, routing failed, stranded) come
// back as 400 with their message; anything else is an internal error.
func (h *RouteHandler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	result, err := h.Planner.PlanRoute(r.Context(), req.StartLocation, req.FinishLocation)
	if err != nil {
		var locErr *domain.LocationNotFoundError
		var routeErr *domain.RoutingError
		switch {
		case errors.As(err, &locErr), errors.As(err, &routeErr), errors.Is(err, domain.ErrStranded):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			log.Printf("plan route failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(result))
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "nefield" {
			return "start and finish locations must be different"
		}
		if fe.Field() == "StartLocation" {
			return "start_location is required"
		}
		return "finish_location is required"
	}
	return "invalid request"
}

func toRouteResponse(result *domain.RouteResult) dto.RouteResponse {
	stops := make([]dto.StopResponse, 0, len(result.FuelStops))
	for _, s := range result.FuelStops {
		stops = append(stops, dto.StopResponse{
			City:        s.City,
			State:       s.State,
			Price:       s.Price,
			MileMarker:  s.MileMarker,
			Coordinates: s.Location.CoordsToList(),
		})
	}

	return dto.RouteResponse{
		TotalMiles:    result.TotalMiles,
		FuelStops:     stops,
		TotalFuelCost: result.TotalFuelCost,
	}
}
