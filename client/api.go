package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// APIError is a backend-rejected request, carrying the error envelope code
// and message along with the HTTP status.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// IsConflict reports whether err is a backend duplicate/conflict rejection.
func IsConflict(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == "CONFLICT"
}

// IsNotFound reports whether err is a backend not-found rejection.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == "NOT_FOUND"
}

// BiodataSummary mirrors the listing-card shape returned by the backend.
type BiodataSummary struct {
	ID                string `json:"id"`
	BiodataNo         int    `json:"biodataId"`
	Type              string `json:"type"`
	PhotoURL          string `json:"photoURL"`
	Age               int    `json:"age"`
	Occupation        string `json:"occupation"`
	PermanentDivision string `json:"permanentDivision"`
	IsPremium         bool   `json:"isPremium"`
}

// ListingPage is the canonical listing response.
type ListingPage struct {
	Biodatas   []BiodataSummary `json:"biodatas"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// Favourite mirrors the favourites entry shape returned by the backend.
type Favourite struct {
	ID                string `json:"id"`
	BiodataDBID       string `json:"biodataDbId"`
	BiodataNo         int    `json:"biodataId"`
	Name              string `json:"name"`
	PermanentDivision string `json:"permanentDivision"`
	Occupation        string `json:"occupation"`
}

// ContactRequest mirrors a contact-request entry. Contact fields are present
// only once an admin has approved the request.
type ContactRequest struct {
	ID           string `json:"id"`
	BiodataDBID  string `json:"biodataDbId"`
	BiodataNo    int    `json:"biodataId"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	ContactEmail string `json:"contactEmail"`
	PhoneNumber  string `json:"phoneNumber"`
}

// API is the HTTP client for the matrimony backend. The token store supplies
// the bearer token for authenticated calls; anonymous calls simply omit it.
type API struct {
	baseURL string
	http    *http.Client
	store   TokenStore
}

func NewAPI(baseURL string, store TokenStore, httpClient *http.Client) (*API, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if store == nil {
		store = NewMemoryTokenStore()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &API{baseURL: baseURL, http: httpClient, store: store}, nil
}

// ExchangeToken trades an authenticated email for a session token.
func (a *API) ExchangeToken(ctx context.Context, email string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email}
	if err := a.do(ctx, http.MethodPost, "/jwt", nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// FetchRole looks up the authorization role recorded for the email.
func (a *API) FetchRole(ctx context.Context, email string) (string, error) {
	var out struct {
		Data struct {
			Role string `json:"role"`
		} `json:"data"`
	}
	if err := a.do(ctx, http.MethodGet, "/users/"+url.PathEscape(email), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Data.Role, nil
}

// SaveUser upserts the caller's account record after sign-up.
func (a *API) SaveUser(ctx context.Context, name, email, photoURL string) error {
	body := map[string]any{
		"name":  name,
		"email": email,
	}
	if photoURL != "" {
		body["photo"] = photoURL
	}
	return a.do(ctx, http.MethodPost, "/users", nil, body, nil)
}

// ListBiodatas fetches a listing page for the given query.
func (a *API) ListBiodatas(ctx context.Context, query url.Values) (*ListingPage, error) {
	var out ListingPage
	if err := a.do(ctx, http.MethodGet, "/biodatas", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) ListFavourites(ctx context.Context) ([]Favourite, error) {
	var out struct {
		Data []Favourite `json:"data"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/v1/favourites", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (a *API) AddFavourite(ctx context.Context, biodataID string) (*Favourite, error) {
	var out struct {
		Data Favourite `json:"data"`
	}
	body := map[string]string{"biodataId": biodataID}
	if err := a.do(ctx, http.MethodPost, "/api/v1/favourites", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *API) DeleteFavourite(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/v1/favourites/"+url.PathEscape(id), nil, nil, nil)
}

func (a *API) ListContactRequests(ctx context.Context) ([]ContactRequest, error) {
	var out struct {
		Data []ContactRequest `json:"data"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/v1/contact-requests", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (a *API) RequestContact(ctx context.Context, biodataID string) (*ContactRequest, error) {
	var out struct {
		Data ContactRequest `json:"data"`
	}
	body := map[string]string{"biodataId": biodataID}
	if err := a.do(ctx, http.MethodPost, "/api/v1/contact-requests", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *API) DeleteContactRequest(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/v1/contact-requests/"+url.PathEscape(id), nil, nil, nil)
}

func (a *API) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := a.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := a.store.Load(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	} else {
		apiErr.Code = "UNKNOWN"
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
