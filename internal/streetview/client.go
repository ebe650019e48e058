package streetview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mpetrie/geohunt/internal/model"
)

// Metadata status values returned by the Street View metadata endpoint
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusNotFound    = "NOT_FOUND"
)

// metadataResponse is the wire shape of the metadata endpoint
type metadataResponse struct {
	Status   string `json:"status"`
	Location *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

// Client is a Google Street View Static API implementation of Provider
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Ensure Client implements the interface
var _ Provider = (*Client)(nil)

// New creates a new Street View client
func New(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// NewWithHTTPClient creates a client with an existing http.Client (for testing)
func NewWithHTTPClient(cfg Config, httpClient *http.Client) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// CheckImagery queries the metadata endpoint for pos. A status of OK yields
// the snapped panorama location; ZERO_RESULTS or NOT_FOUND yields nil.
func (c *Client) CheckImagery(ctx context.Context, pos model.Point) (*model.Point, error) {
	reqURL := c.buildURL(pos, 0, true)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: metadata returned HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var meta metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("%w: decoding metadata: %v", ErrUnavailable, err)
	}

	switch meta.Status {
	case statusOK:
		if meta.Location == nil {
			return nil, fmt.Errorf("%w: metadata OK without location", ErrUnavailable)
		}
		return &model.Point{Latitude: meta.Location.Lat, Longitude: meta.Location.Lng}, nil
	case statusZeroResults, statusNotFound:
		return nil, nil
	default:
		// REQUEST_DENIED, OVER_QUERY_LIMIT, UNKNOWN_ERROR and friends
		return nil, fmt.Errorf("%w: metadata status %s", ErrUnavailable, meta.Status)
	}
}

// FetchImage requests the image stream for pos at the given heading
func (c *Client) FetchImage(ctx context.Context, pos model.Point, heading float64) (io.ReadCloser, error) {
	reqURL := c.buildURL(pos, heading, false)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: image returned HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	return resp.Body, nil
}

func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// buildURL assembles a Street View request. metadata selects the
// validity-check endpoint rather than the image endpoint.
func (c *Client) buildURL(pos model.Point, heading float64, metadata bool) string {
	base := c.cfg.BaseURL
	if metadata {
		base += "/metadata"
	}

	params := url.Values{}
	params.Set("size", c.cfg.ImageSize)
	params.Set("location", fmt.Sprintf("%f,%f", pos.Latitude, pos.Longitude))
	params.Set("heading", fmt.Sprintf("%g", heading))
	params.Set("key", c.cfg.APIKey)

	return base + "?" + params.Encode()
}
