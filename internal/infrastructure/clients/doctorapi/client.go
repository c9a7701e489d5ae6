package doctorapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/carelink-cm/carelink-backend/pkg/errors"
)

// Client is the contract for the upstream doctor API.
type Client interface {
	ListDoctors(ctx context.Context, req ListDoctorsRequest) (*DoctorListResponse, error)
	GetDoctor(ctx context.Context, id int) (*RawDoctor, error)
	ListSpecializations(ctx context.Context) ([]string, error)
}

// ListDoctorsRequest holds list query options.
type ListDoctorsRequest struct {
	City      string
	Specialty string
	Limit     int
	Offset    int
}

// HTTPClient talks to the doctor API over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a doctor API client with the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) ListDoctors(ctx context.Context, req ListDoctorsRequest) (*DoctorListResponse, error) {
	parsed, err := url.Parse(fmt.Sprintf("%s/doctors", c.baseURL))
	if err != nil {
		return nil, apperrors.NewInternalError("invalid doctor API URL", err)
	}

	query := parsed.Query()
	if req.City != "" {
		query.Set("city", req.City)
	}
	if req.Specialty != "" {
		query.Set("specialty", req.Specialty)
	}
	if req.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		query.Set("offset", fmt.Sprintf("%d", req.Offset))
	}
	parsed.RawQuery = query.Encode()

	out := &DoctorListResponse{}
	if err := c.doJSON(ctx, http.MethodGet, parsed.String(), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetDoctor(ctx context.Context, id int) (*RawDoctor, error) {
	endpoint := fmt.Sprintf("%s/doctors/%d", c.baseURL, id)
	out := &RawDoctor{}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListSpecializations(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/specializations", c.baseURL)
	out := &SpecializationListResponse{}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, out); err != nil {
		return nil, err
	}
	return out.Specializations, nil
}

// doJSON performs the request and maps failures to the application error
// taxonomy: transport failures are Unavailable, 404 is NotFound, everything
// else non-2xx is External.
func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to build doctor API request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewUnavailableError("doctor service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NewNotFoundError("doctor resource not found")
	}
	if resp.StatusCode >= 500 {
		return apperrors.NewExternalError(
			fmt.Sprintf("doctor service error (status %d)", resp.StatusCode), nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.NewExternalError(
			fmt.Sprintf("unexpected doctor service response (status %d): %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError("failed to decode doctor service response", err)
	}
	return nil
}
