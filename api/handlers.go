package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/luca-patrignani/catena/ledger"
	"github.com/luca-patrignani/catena/node"
)

type mineResponse struct {
	Message      string               `json:"message"`
	Index        int64                `json:"index"`
	Transactions []ledger.Transaction `json:"transactions"`
	Proof        int64                `json:"proof"`
	PreviousHash string               `json:"previous_hash"`
}

// transactionRequest uses pointer fields so a missing key is told apart
// from a zero value.
type transactionRequest struct {
	Sender    *string `json:"sender"`
	Recipient *string `json:"recipient"`
	Amount    *int64  `json:"amount"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// chainResponse is the peer wire contract: length must equal the number of
// blocks served or fetching peers will discard the payload.
type chainResponse struct {
	Chain  []ledger.Block `json:"chain"`
	Length int            `json:"length"`
}

type registerRequest struct {
	Nodes []string `json:"nodes"`
}

type registerResponse struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

type resolveResponse struct {
	Message  string         `json:"message"`
	NewChain []ledger.Block `json:"new_chain,omitempty"`
	Chain    []ledger.Block `json:"chain,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	block, err := s.node.MineNext(r.Context())
	switch {
	case errors.Is(err, node.ErrChainReplaced):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// The client went away mid-search; there is nobody left to answer.
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, mineResponse{
		Message:      "New Block Forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PreviousHash,
	})
}

func (s *Server) handleNewTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}
	if req.Sender == nil || req.Recipient == nil || req.Amount == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing values"})
		return
	}

	index := s.node.SubmitTransaction(*req.Sender, *req.Recipient, *req.Amount)
	writeJSON(w, http.StatusCreated, messageResponse{
		Message: fmt.Sprintf("Transaction will be added to Block %d", index),
	})
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	chain, length := s.node.Chain()
	writeJSON(w, http.StatusOK, chainResponse{Chain: chain, Length: length})
}

func (s *Server) handleRegisterNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}
	if req.Nodes == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "please supply a valid list of nodes"})
		return
	}

	if _, err := s.node.RegisterPeers(req.Nodes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, registerResponse{
		Message:    "New nodes have been added",
		TotalNodes: s.node.Peers(),
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	replaced, chain, err := s.node.ResolveConsensus(r.Context())
	if err != nil {
		// Resolution only fails when the request context ended.
		return
	}
	if replaced {
		writeJSON(w, http.StatusOK, resolveResponse{Message: "Our chain was replaced", NewChain: chain})
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{Message: "Our chain is authoritative", Chain: chain})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
