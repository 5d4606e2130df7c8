package handler

import (
	"net/http"
	"sync"

	"gfg-stable-backend/bootstrap"
)

var (
	mu      sync.Mutex
	handler http.Handler
	build   = func() (http.Handler, error) {
		app, err := bootstrap.New()
		if err != nil {
			return nil, err
		}
		return app.Handler(), nil
	}
)

// current builds the app on first use. A failed build is retried on the next request.
func current() (http.Handler, error) {
	mu.Lock()
	defer mu.Unlock()
	if handler != nil {
		return handler, nil
	}
	h, err := build()
	if err != nil {
		return nil, err
	}
	handler = h
	return handler, nil
}

// Handler is the serverless entry point. All requests are rewritten here.
func Handler(w http.ResponseWriter, r *http.Request) {
	h, err := current()
	if err != nil {
		http.Error(w, `{"success":false,"error":"Service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	r.RequestURI = r.URL.String()
	h.ServeHTTP(w, r)
}
