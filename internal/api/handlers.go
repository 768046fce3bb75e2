package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"billsplit/internal/errs"
	"billsplit/internal/middleware"
	"billsplit/internal/models"
	"billsplit/internal/service"
)

type okResponse struct {
	Ok bool `json:"ok"`
}

type errorResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindAuth:
		status = http.StatusUnauthorized
	case errs.KindAuthorization:
		status = http.StatusForbidden
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindConflict:
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: errs.Code(err)})
}

func decode(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return errs.New(errs.KindValidation, "invalid request body")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okResponse{Ok: true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Ok       bool   `json:"ok"`
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
		Token    string `json:"token"`
	}{true, res.Username, res.IsAdmin, res.Token})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []string{}
	}

	writeJSON(w, http.StatusOK, struct {
		Ok    bool     `json:"ok"`
		Users []string `json:"users"`
	}{true, users})
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Admin    string `json:"admin"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.users.Add(r.Context(), req.Admin, req.Username, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Ok: true})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Admin    string `json:"admin"`
		Username string `json:"username"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.users.Delete(r.Context(), req.Admin, req.Username); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Ok: true})
}

type billsResponse struct {
	Ok    bool           `json:"ok"`
	Bills []*models.Bill `json:"bills"`
}

type billResponse struct {
	Ok   bool         `json:"ok"`
	Bill *models.Bill `json:"bill"`
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	// Visibility is resolved from the token identity. The query parameter
	// may only restate it; it never widens what the caller can see.
	username := middleware.GetUsername(r.Context())
	if q := r.URL.Query().Get("username"); q != "" && q != username {
		writeError(w, errs.New(errs.KindAuthorization, "bills may only be listed for the authenticated user"))
		return
	}

	bills, err := s.bills.ListFor(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	if bills == nil {
		bills = []*models.Bill{}
	}
	writeJSON(w, http.StatusOK, billsResponse{Ok: true, Bills: bills})
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Creator      string   `json:"creator"`
		Amount       float64  `json:"amount"`
		Date         string   `json:"date"`
		Description  string   `json:"description"`
		Participants []string `json:"participants"`
		Discount     bool     `json:"discount"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	// Bills may only be created in the caller's own name.
	if req.Creator != middleware.GetUsername(r.Context()) {
		writeError(w, errs.New(errs.KindAuthorization, "creator must match the authenticated user"))
		return
	}

	bill, err := s.bills.Create(r.Context(), service.CreateBillInput{
		Creator:      req.Creator,
		Amount:       req.Amount,
		Date:         req.Date,
		Description:  req.Description,
		Participants: req.Participants,
		Discount:     req.Discount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, billResponse{Ok: true, Bill: bill})
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := s.bills.Get(r.Context(), chi.URLParam(r, "billID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, billResponse{Ok: true, Bill: bill})
}

func (s *Server) handlePayShare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	// Shares may only be settled by their owner.
	if req.Username != middleware.GetUsername(r.Context()) {
		writeError(w, errs.New(errs.KindAuthorization, "only the share owner may pay it"))
		return
	}

	bill, err := s.bills.Pay(r.Context(), chi.URLParam(r, "billID"), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, billResponse{Ok: true, Bill: bill})
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Admin  string `json:"admin"`
		BillID string `json:"bill_id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.bills.Delete(r.Context(), req.Admin, req.BillID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse{Ok: true})
}
