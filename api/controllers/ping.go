package controllers

import (
	"net/http"

	"github.com/sellerboard/sellerboard-backend/api/responses"
)

// PublicPing answers on the unauthenticated surface.
func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"message": "pong"})
	}
}

// PrivatePing answers behind the auth middleware.
func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"message": "pong"})
	}
}
