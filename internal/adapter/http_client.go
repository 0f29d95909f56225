package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/averin/budgetwatch/models"
	"github.com/go-resty/resty/v2"
)

// HTTPClientConfig carries the settings needed to build the HTTP adapter.
type HTTPClientConfig struct {
	APIBaseURL   string
	AuthBaseURL  string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type httpBudgetAdapter struct {
	api          *resty.Client
	auth         *resty.Client
	clientID     string
	clientSecret string

	mu    sync.RWMutex
	token string
}

// NewHTTPBudgetAdapter builds the resty-based [BudgetAPI] implementation.
func NewHTTPBudgetAdapter(cfg HTTPClientConfig) BudgetAPI {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = cfg.APIBaseURL
	}

	api := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIBaseURL, "/")).
		SetTimeout(cfg.Timeout)
	auth := resty.New().
		SetBaseURL(strings.TrimRight(cfg.AuthBaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpBudgetAdapter{
		api:          api,
		auth:         auth,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

func (h *httpBudgetAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpBudgetAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Wire envelopes. The service wraps every payload in a "data" object and
// reports the sync cursor as "server_knowledge".

type budgetsResponse struct {
	Data struct {
		Budgets []models.Budget `json:"budgets"`
	} `json:"data"`
}

type accountsResponse struct {
	Data struct {
		Accounts        []models.Account `json:"accounts"`
		ServerKnowledge int64            `json:"server_knowledge"`
	} `json:"data"`
}

type wireCategoryGroup struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Deleted    bool              `json:"deleted"`
	Categories []models.Category `json:"categories"`
}

type categoriesResponse struct {
	Data struct {
		CategoryGroups  []wireCategoryGroup `json:"category_groups"`
		ServerKnowledge int64               `json:"server_knowledge"`
	} `json:"data"`
}

type payeesResponse struct {
	Data struct {
		Payees          []models.Payee `json:"payees"`
		ServerKnowledge int64          `json:"server_knowledge"`
	} `json:"data"`
}

type transactionsResponse struct {
	Data struct {
		Transactions []models.Transaction `json:"transactions"`
	} `json:"data"`
}

type credentialResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (h *httpBudgetAdapter) Budgets(ctx context.Context) ([]models.Budget, error) {
	resp, err := h.authedRequest(ctx).Get("/budgets")
	if err != nil {
		return nil, fmt.Errorf("budgets request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var br budgetsResponse
	if err = json.Unmarshal(resp.Body(), &br); err != nil {
		return nil, fmt.Errorf("decode budgets response: %w", err)
	}

	return br.Data.Budgets, nil
}

func (h *httpBudgetAdapter) Accounts(ctx context.Context, budgetID string, cursor *models.Cursor) ([]models.Account, models.Cursor, error) {
	req := h.authedRequest(ctx)
	applyCursor(req, cursor)

	resp, err := req.Get("/budgets/" + budgetID + "/accounts")
	if err != nil {
		return nil, 0, fmt.Errorf("accounts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, 0, err
	}

	var ar accountsResponse
	if err = json.Unmarshal(resp.Body(), &ar); err != nil {
		return nil, 0, fmt.Errorf("decode accounts response: %w", err)
	}

	return ar.Data.Accounts, models.Cursor(ar.Data.ServerKnowledge), nil
}

func (h *httpBudgetAdapter) Categories(ctx context.Context, budgetID string, cursor *models.Cursor) (models.CategoryChanges, models.Cursor, error) {
	req := h.authedRequest(ctx)
	applyCursor(req, cursor)

	resp, err := req.Get("/budgets/" + budgetID + "/categories")
	if err != nil {
		return models.CategoryChanges{}, 0, fmt.Errorf("categories request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CategoryChanges{}, 0, err
	}

	var cr categoriesResponse
	if err = json.Unmarshal(resp.Body(), &cr); err != nil {
		return models.CategoryChanges{}, 0, fmt.Errorf("decode categories response: %w", err)
	}

	return flattenGroups(cr.Data.CategoryGroups), models.Cursor(cr.Data.ServerKnowledge), nil
}

// flattenGroups turns the service's group hierarchy into a flat category
// batch. Group membership stays on each category record (GroupID), so the
// merge engine never depends on response ordering. Deleted groups are
// collected separately for the orphan-reconciliation pass.
func flattenGroups(groups []wireCategoryGroup) models.CategoryChanges {
	var changes models.CategoryChanges
	for _, g := range groups {
		if g.Deleted {
			changes.DeletedGroupIDs = append(changes.DeletedGroupIDs, g.ID)
		}
		for _, c := range g.Categories {
			if c.GroupID == "" {
				c.GroupID = g.ID
			}
			if c.GroupName == "" {
				c.GroupName = g.Name
			}
			changes.Categories = append(changes.Categories, c)
		}
	}
	return changes
}

func (h *httpBudgetAdapter) Payees(ctx context.Context, budgetID string, cursor *models.Cursor) ([]models.Payee, models.Cursor, error) {
	req := h.authedRequest(ctx)
	applyCursor(req, cursor)

	resp, err := req.Get("/budgets/" + budgetID + "/payees")
	if err != nil {
		return nil, 0, fmt.Errorf("payees request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, 0, err
	}

	var pr payeesResponse
	if err = json.Unmarshal(resp.Body(), &pr); err != nil {
		return nil, 0, fmt.Errorf("decode payees response: %w", err)
	}

	return pr.Data.Payees, models.Cursor(pr.Data.ServerKnowledge), nil
}

func (h *httpBudgetAdapter) UnapprovedTransactions(ctx context.Context, budgetID string, since time.Time) ([]models.Transaction, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("type", "unapproved").
		SetQueryParam("since_date", since.Format("2006-01-02")).
		Get("/budgets/" + budgetID + "/transactions")
	if err != nil {
		return nil, fmt.Errorf("transactions request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var tr transactionsResponse
	if err = json.Unmarshal(resp.Body(), &tr); err != nil {
		return nil, fmt.Errorf("decode transactions response: %w", err)
	}

	unapproved := make([]models.Transaction, 0, len(tr.Data.Transactions))
	for _, tx := range tr.Data.Transactions {
		if !tx.Approved && !tx.Deleted {
			unapproved = append(unapproved, tx)
		}
	}

	return unapproved, nil
}

func (h *httpBudgetAdapter) RefreshCredential(ctx context.Context, refreshToken string) (models.TokenData, error) {
	resp, err := h.auth.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
			"client_id":     h.clientID,
			"client_secret": h.clientSecret,
		}).
		Post("/oauth/token")
	if err != nil {
		return models.TokenData{}, fmt.Errorf("refresh credential request: %w", err)
	}
	if resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnauthorized {
		return models.TokenData{}, fmt.Errorf("refresh credential: %w", ErrUnauthorized)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenData{}, err
	}

	var cr credentialResponse
	if err = json.Unmarshal(resp.Body(), &cr); err != nil {
		return models.TokenData{}, fmt.Errorf("decode credential response: %w", err)
	}

	token := models.TokenData{
		AccessToken:  cr.AccessToken,
		RefreshToken: cr.RefreshToken,
	}
	switch {
	case cr.ExpiresIn > 0:
		token.ExpiresAt = time.Now().Add(time.Duration(cr.ExpiresIn) * time.Second)
	default:
		// some providers issue JWT access tokens without expires_in
		exp, jwtErr := models.ExpiryFromJWT(cr.AccessToken)
		if jwtErr != nil {
			return models.TokenData{}, fmt.Errorf("credential response carries no expiry: %w", jwtErr)
		}
		token.ExpiresAt = exp
	}

	h.SetToken(token.AccessToken)
	return token, nil
}

func (h *httpBudgetAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.api.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func applyCursor(req *resty.Request, cursor *models.Cursor) {
	if cursor != nil {
		req.SetQueryParam("last_knowledge_of_server", strconv.FormatInt(int64(*cursor), 10))
	}
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode() == http.StatusConflict {
		return ErrCursorInvalid
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
