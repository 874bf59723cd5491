package http

import (
	"net/http"
	"strings"

	"crediario/internal/core"
	"crediario/internal/export"
	"crediario/internal/format"
	"crediario/internal/log"
)

type messageResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// handleListCustomers lists customers with their balance. ?status=active or
// ?status=paid narrows the list.
func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	status := core.CustomerStatus(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" && !status.Valid() {
		writeError(w, r, core.ErrInvalidStatus)
		return
	}
	customers := s.store.Customers.List()
	if status == core.StatusActive {
		customers = s.store.Customers.Active()
	}
	asOf := s.asOf()
	out := []export.CustomerLine{}
	for _, c := range customers {
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, export.NewCustomerLine(c, asOf))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	defaultRate := s.store.Settings.Get().DefaultDailyInterestRate
	c, err := s.store.Customers.Add(r.Context(), req.draft(defaultRate))
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Customer created",
		log.NewFields().WithOperation(log.OpCreate).WithEntity(c.ID).ToSlice()...)
	writeJSON(w, http.StatusCreated, export.NewCustomerLine(c, s.asOf()))
}

// handleSearchCustomer returns the first active customer whose name contains
// ?name=.
func (s *Server) handleSearchCustomer(w http.ResponseWriter, r *http.Request) {
	c, ok := s.store.Customers.FindByName(r.URL.Query().Get("name"))
	if !ok {
		writeError(w, r, core.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, export.NewCustomerLine(c, s.asOf()))
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	c, ok := s.store.Customers.Get(r.PathValue("id"))
	if !ok {
		writeError(w, r, core.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, export.NewCustomerLine(c, s.asOf()))
}

// handleUpdateCustomer merges the body into the customer. Unknown ids are a
// silent no-op, like the store.
func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.Customers.Update(r.Context(), r.PathValue("id"), req.patch()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Customers.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePayCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Customers.MarkPaid(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Customer marked paid",
		log.NewFields().WithOperation(log.OpUpdate).WithEntity(id).ToSlice()...)
	w.WriteHeader(http.StatusNoContent)
}

// handleCustomerMessage renders the collection message and its wa.me link.
func (s *Server) handleCustomerMessage(w http.ResponseWriter, r *http.Request) {
	c, ok := s.store.Customers.Get(r.PathValue("id"))
	if !ok {
		writeError(w, r, core.ErrNotFound)
		return
	}
	msg := format.CollectionMessage(s.store.Settings.Get().CollectionMessageTemplate, c, s.asOf())
	writeJSON(w, http.StatusOK, messageResponse{
		Message:     msg,
		WhatsAppURL: format.WhatsAppURL(c.Phone, msg),
	})
}
