package vlc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"vlcpresence/internal/config"
	"vlcpresence/pkg/models"

	"github.com/sirupsen/logrus"
)

var (
	// ErrTransport is returned when the status endpoint cannot be reached or
	// answers with a non-200 status
	ErrTransport = errors.New("vlc transport error")

	// ErrMalformedSnapshot is returned when the status document cannot be decoded
	ErrMalformedSnapshot = errors.New("malformed vlc status")
)

const statusPath = "/requests/status.json"

// statusResponse mirrors the parts of status.json we care about
type statusResponse struct {
	State       *string      `json:"state"`
	Length      *int64       `json:"length"`   // seconds
	Position    *float64     `json:"position"` // 0.0 to 1.0
	Information *information `json:"information"`
}

type information struct {
	Category *category `json:"category"`
}

type category struct {
	Meta *meta `json:"meta"`
}

type meta struct {
	Title    *string `json:"title"`
	Filename *string `json:"filename"`
	Artist   *string `json:"artist"`
	Album    *string `json:"album"`
}

func (r *statusResponse) toSnapshot() *models.Snapshot {
	snap := &models.Snapshot{
		Status:   models.StatusUnknown,
		Length:   r.Length,
		Position: r.Position,
	}
	if r.State != nil {
		snap.Status = models.ParsePlaybackStatus(*r.State)
	}
	if r.Information != nil && r.Information.Category != nil && r.Information.Category.Meta != nil {
		m := r.Information.Category.Meta
		snap.Meta = models.Metadata{
			Title:    m.Title,
			Artist:   m.Artist,
			Album:    m.Album,
			Filename: m.Filename,
		}
	}
	return snap
}

// Client polls the VLC HTTP interface
type Client struct {
	httpClient *http.Client
	baseURL    string
	password   string
	logger     *logrus.Logger
}

// NewClient creates a VLC HTTP client for the configured endpoint
func NewClient(cfg *config.VLCConfig, logger *logrus.Logger) *Client {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    "http://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		password:   cfg.Password,
		logger:     logger,
	}
}

// StatusURL returns the full status endpoint URL
func (c *Client) StatusURL() string {
	return c.baseURL + statusPath
}

func (c *Client) get(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.StatusURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	// VLC uses an empty user name
	req.SetBasicAuth("", c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return resp, nil
}

// Fetch returns the current playback snapshot
func (c *Client) Fetch(ctx context.Context) (*models.Snapshot, error) {
	resp, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrTransport, resp.Status)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	return status.toSnapshot(), nil
}

// WaitUntilReady polls the status endpoint until it answers 200 or timeout
// elapses. It reports whether VLC became reachable.
func (c *Client) WaitUntilReady(ctx context.Context, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		resp, err := c.get(ctx)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
			c.logger.WithField("status", resp.StatusCode).Debug("VLC not ready yet")
		}

		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}
