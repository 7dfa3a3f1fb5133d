package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rsakeygen/internal/command"
)

type handlerService struct {
	commands commandService
	router   *chi.Mux
}

type commandService interface {
	MakeRSAKeysContext(ctx context.Context, keySize uint) (string, string, error)
	Invoke(ctx context.Context, name string, args []byte) ([]byte, error)
}

func NewHandlerService(commands commandService, router *chi.Mux) *handlerService {
	return &handlerService{
		commands: commands,
		router:   router,
	}
}

func (h *handlerService) GetRouter() *chi.Mux {
	return h.router
}

func (h *handlerService) CreateHandlers() {
	h.router.Group(func(r chi.Router) {
		r.Use(noStore)
		r.Post("/api/make_rsa_keys", h.MakeRSAKeys)
		r.Post("/invoke/{command}", h.Invoke)
	})
	h.router.Get("/ping", h.Ping)
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// Ping godoc
// @Summary      Liveness check
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "pong"
// @Router       /ping [get]
func (h *handlerService) Ping(res http.ResponseWriter, req *http.Request) {
	res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	res.WriteHeader(http.StatusOK)
	_, _ = res.Write([]byte("pong"))
}

// Invoke godoc
// @Summary      Invoke a command by name
// @Description  Raw command dispatch. make_rsa_keys takes {"keySize": N} and returns ["<private>", "<public>"].
// @Tags         keys
// @Accept       json
// @Produce      json
// @Param        command  path  string  true  "Command name"
// @Success      200  {array}   string
// @Failure      404  {object}  keysdto.ErrorResponse
// @Failure      422  {object}  keysdto.ErrorResponse
// @Router       /invoke/{command} [post]
func (h *handlerService) Invoke(res http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "command")

	args, err := readBody(res, req)
	if err != nil {
		writeError(res, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.commands.Invoke(req.Context(), name, args)
	if err != nil {
		switch {
		case errors.Is(err, command.ErrUnknownCommand):
			writeError(res, http.StatusNotFound, err.Error())
		default:
			writeError(res, http.StatusUnprocessableEntity, err.Error())
		}
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)
	_, _ = res.Write(out)
}
