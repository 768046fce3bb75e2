package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"billsplit/internal/errs"
	"billsplit/internal/models"
)

// HTTPClient implements Collaborator over the HTTP JSON contract.
type HTTPClient struct {
	rc *resty.Client
}

var _ Collaborator = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the collaborator at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &HTTPClient{rc: rc}
}

// envelope is the common part of every collaborator response.
type envelope struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

// do issues the request and decodes the response body into out, which must
// embed the envelope fields. Transport failures map to the Unavailable kind;
// contract failures map by their wire code.
func (c *HTTPClient) do(ctx context.Context, session *models.Session, method, path string, body, out any) error {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if session != nil && session.Token != "" {
		req.SetAuthToken(session.Token)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return errs.Newf(errs.KindUnavailable, "collaborator unreachable: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return errs.Newf(errs.KindUnavailable, "malformed collaborator response (status %d)", resp.StatusCode())
	}
	if !env.Ok {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode())
		}
		if env.Code == "" {
			return errs.FromCode(codeFromStatus(resp.StatusCode()), msg)
		}
		return errs.FromCode(env.Code, msg)
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return errs.Newf(errs.KindUnavailable, "malformed collaborator response: %v", err)
		}
	}
	return nil
}

// codeFromStatus maps an HTTP status to a wire code for responses that carry
// no explicit code.
func codeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return errs.CodeValidation
	case http.StatusUnauthorized:
		return errs.CodeAuth
	case http.StatusForbidden:
		return errs.CodeAuthorization
	case http.StatusNotFound:
		return errs.CodeNotFound
	case http.StatusConflict:
		return errs.CodeConflict
	default:
		return ""
	}
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*LoginReply, error) {
	var out struct {
		envelope
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
		Token    string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, nil, http.MethodPost, "/api/login", body, &out); err != nil {
		return nil, err
	}
	return &LoginReply{Username: out.Username, IsAdmin: out.IsAdmin, Token: out.Token}, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]string, error) {
	var out struct {
		envelope
		Users []string `json:"users"`
	}
	if err := c.do(ctx, nil, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *HTTPClient) AddUser(ctx context.Context, session *models.Session, username, password string) error {
	body := map[string]string{"admin": session.Username, "username": username, "password": password}
	return c.do(ctx, session, http.MethodPost, "/api/admin/add_user", body, nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, session *models.Session, username string) error {
	body := map[string]string{"admin": session.Username, "username": username}
	return c.do(ctx, session, http.MethodPost, "/api/admin/delete_user", body, nil)
}

func (c *HTTPClient) CreateBill(ctx context.Context, session *models.Session, req CreateBillRequest) (*models.Bill, error) {
	var out struct {
		envelope
		Bill *models.Bill `json:"bill"`
	}
	if err := c.do(ctx, session, http.MethodPost, "/api/bills", req, &out); err != nil {
		return nil, err
	}
	return out.Bill, nil
}

func (c *HTTPClient) ListBills(ctx context.Context, session *models.Session) ([]*models.Bill, error) {
	var out struct {
		envelope
		Bills []*models.Bill `json:"bills"`
	}
	path := "/api/bills?username=" + url.QueryEscape(session.Username)
	if err := c.do(ctx, session, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Bills, nil
}

func (c *HTTPClient) MarkPaid(ctx context.Context, session *models.Session, billID string) (*models.Bill, error) {
	var out struct {
		envelope
		Bill *models.Bill `json:"bill"`
	}
	body := map[string]string{"username": session.Username}
	path := fmt.Sprintf("/api/bills/%s/pay", billID)
	if err := c.do(ctx, session, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return out.Bill, nil
}

func (c *HTTPClient) DeleteBill(ctx context.Context, session *models.Session, billID string) error {
	body := map[string]string{"admin": session.Username, "bill_id": billID}
	return c.do(ctx, session, http.MethodPost, "/api/admin/delete_bill", body, nil)
}
