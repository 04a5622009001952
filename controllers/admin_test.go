package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	page, limit := parsePagination(r)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(20), limit)
}

func TestParsePaginationOverrides(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/products?page=3&limit=5", nil)
	page, limit := parsePagination(r)
	assert.Equal(t, int64(3), page)
	assert.Equal(t, int64(5), limit)
}

func TestParsePaginationRejectsNonPositive(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/products?page=-2&limit=0", nil)
	page, limit := parsePagination(r)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(20), limit)
}

func TestPaginationBodyRoundsPagesUp(t *testing.T) {
	body := paginationBody(2, 20, 41)
	assert.Equal(t, int64(3), body["pages"])
	assert.Equal(t, int64(41), body["total"])
}

func TestGetProductByIDInvalidID(t *testing.T) {
	pc := &ProductController{Logger: zap.NewNop()}

	r := httptest.NewRequest(http.MethodGet, "/api/admin/products/not-a-hex", nil)
	r = muxSetVars(r, map[string]string{"id": "not-a-hex"})
	w := httptest.NewRecorder()

	pc.GetProductByID(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid product ID")
}

func TestGetCollectionByIDInvalidID(t *testing.T) {
	cc := &CollectionController{Logger: zap.NewNop()}

	r := httptest.NewRequest(http.MethodGet, "/api/admin/collections/not-a-hex", nil)
	r = muxSetVars(r, map[string]string{"id": "not-a-hex"})
	w := httptest.NewRecorder()

	cc.GetCollectionByID(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid collection ID")
}
