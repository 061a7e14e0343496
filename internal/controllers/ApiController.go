package controllers

import (
	"context"
	"errors"
	"net/http"

	"aad/internal/attendance"
	"aad/internal/providers"
	"aad/internal/services"
	"aad/internal/upstream"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

type ApiController struct {
	logger  providers.Logger
	service services.AttendanceServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.AttendanceServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func parseQuery(r *http.Request) (attendance.Query, error) {
	q := attendance.Query{
		PlaceID: r.URL.Query().Get("placeId"),
		Devices: r.URL.Query().Get("devices"),
	}
	if q.PlaceID == "" {
		return q, errors.New("placeId is required")
	}

	var err error
	if q.From, err = cast.ToInt64E(r.URL.Query().Get("from")); err != nil {
		return q, errors.New("from must be a millisecond timestamp")
	}
	if q.To, err = cast.ToInt64E(r.URL.Query().Get("to")); err != nil {
		return q, errors.New("to must be a millisecond timestamp")
	}
	if q.From >= q.To {
		return q, errors.New("from must be before to")
	}
	return q, nil
}

func statusForError(err error) int {
	var authErr *upstream.AuthError
	switch {
	case errors.As(err, &authErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (ac *ApiController) GetAttendance(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cacheKey := "att:" + q.PlaceID + ":" + cast.ToString(q.From) + ":" + cast.ToString(q.To) + ":" + q.Devices
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSONBytes(w, data)
		return
	}

	report, err := ac.service.AggregateCheckins(r.Context(), q)
	if err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Attendance query failed: %s", err)
		http.Error(w, http.StatusText(statusForError(err)), statusForError(err))
		return
	}

	gson, err := json.Marshal(report)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSONBytes(w, gson)
}

func writeJSONBytes(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
