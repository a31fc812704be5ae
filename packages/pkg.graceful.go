package packages

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ory/graceful"
)

type GracefulConfig struct {
	Handler *chi.Mux
	Port    string
}

func Graceful(Handler func() *GracefulConfig) error {
	h := Handler()

	server := http.Server{
		Handler:        h.Handler,
		Addr:           ":" + h.Port,
		WriteTimeout:   time.Duration(time.Second * time.Duration(30)),
		ReadTimeout:    time.Duration(time.Second * time.Duration(15)),
		IdleTimeout:    time.Duration(time.Minute * time.Duration(1)),
		MaxHeaderBytes: 1 << 20,
	}

	return graceful.Graceful(server.ListenAndServe, server.Shutdown)
}
