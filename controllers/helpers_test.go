package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"jewelry-commerce/middleware"
	"jewelry-commerce/utils"
)

func requestWithClaims(r *http.Request, claims *utils.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, claims)
	return r.WithContext(ctx)
}

func muxSetVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}
