package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"jewelry-commerce/store"
)

// parsePagination reads page/limit query parameters for the admin listings,
// defaulting to page 1 with 20 entries.
func parsePagination(r *http.Request) (page, limit int64) {
	page, _ = strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

func paginationBody(page, limit, total int64) map[string]int64 {
	return map[string]int64{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": (total + limit - 1) / limit,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeStoreError maps the store error taxonomy onto HTTP statuses.
// Infrastructure errors are logged and surfaced as a generic 500 without
// leaking internals.
func writeStoreError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var invalid *store.InvalidOrderError
	switch {
	case errors.As(err, &invalid):
		writeMessage(w, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrUnauthorized):
		writeMessage(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, store.ErrConflict):
		writeMessage(w, http.StatusConflict, "Conflict")
	case errors.Is(err, store.ErrInvalidQuantity), errors.Is(err, store.ErrInvalidStatus):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("store error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}
