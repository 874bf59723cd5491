package http

import (
	"net/http"
	"strings"

	"crediario/internal/core"
	"crediario/internal/log"
)

// handleListTransactions lists transactions, optionally for one customer.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	var list []core.Transaction
	if id := strings.TrimSpace(r.URL.Query().Get("customer_id")); id != "" {
		list = s.store.Transactions.ListByCustomer(id)
	} else {
		list = s.store.Transactions.List()
	}
	if list == nil {
		list = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := s.store.Transactions.Add(r.Context(), req.draft())
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Transaction created",
		log.NewFields().WithOperation(log.OpCreate).WithEntity(t.ID).ToSlice()...)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.Transactions.Update(r.Context(), r.PathValue("id"), req.patch()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Transactions.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
