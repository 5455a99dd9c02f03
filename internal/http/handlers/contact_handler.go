package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/veritaslogistics/veritas-api/internal/http/response"
	"github.com/veritaslogistics/veritas-api/internal/platform/mailer"
	"github.com/veritaslogistics/veritas-api/internal/utils"
	"github.com/veritaslogistics/veritas-api/pkg/logger"
)

// ContactHandler delivers contact form submissions to the support inbox.
type ContactHandler struct {
	Mail  mailer.Service
	Inbox string
}

func NewContactHandler(mail mailer.Service, inbox string) *ContactHandler {
	return &ContactHandler{Mail: mail, Inbox: inbox}
}

func (h *ContactHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.submit)
	return r
}

func (h *ContactHandler) submit(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name    string `json:"name"`
		Contact string `json:"contact"` // email or phone
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	switch {
	case strings.TrimSpace(in.Name) == "":
		response.BadRequest(w, "name is required")
		return
	case !utils.IsValidContact(in.Contact):
		response.BadRequest(w, "contact must be an email address or phone number")
		return
	case strings.TrimSpace(in.Message) == "":
		response.BadRequest(w, "message is required")
		return
	}

	body := fmt.Sprintf("From: %s (%s)\n\n%s", in.Name, in.Contact, in.Message)
	if _, err := h.Mail.Send(h.Inbox, "Veritas Support", "Contact form submission", body, ""); err != nil {
		logger.ErrorContext(r.Context(), "contact mail failed", "error", err)
		response.InternalError(w, "could not deliver your message, please try again")
		return
	}

	response.JSON(w, http.StatusAccepted, map[string]string{
		"message": "Thanks for reaching out. We will get back to you shortly.",
	})
}
