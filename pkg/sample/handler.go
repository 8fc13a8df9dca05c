package sample

import (
	"fmt"
	"net/http"

	"github.com/kharcha/kharcha/internal/rest"
)

type Handler struct {
	generator *Generator
}

func NewHandler(generator *Generator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) Initialize(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.generator.Initialize(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Sample data initialized successfully (%d expenses)", inserted),
	})
}
