package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"rollcall/internal/models"
	"rollcall/internal/providers"
	"rollcall/internal/structures"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const (
	OpTeams      = "teams_by_category"
	OpSubmit     = "submit_attendance"
	OpDashboard  = "dashboard_attendance"
	OpBarcodes   = "send_barcodes"
	maxErrorBody = 64 << 10
)

var defaultFailures = map[string]string{
	OpTeams:     "Failed to load teams",
	OpSubmit:    "Failed to submit attendance. Please try again.",
	OpDashboard: "Failed to fetch attendance data",
}

type ClientInterface interface {
	GetTeamsByCategory(ctx context.Context, category string) (*models.TeamsResponse, error)
	SubmitAttendance(ctx context.Context, req *models.AttendanceRequest) (*models.AttendanceResponse, error)
	GetDashboardAttendance(ctx context.Context, category string) (*models.DashboardResponse, error)
	SendBarcodes(ctx context.Context, batch *models.BarcodeBatch) error
	InFlight() int64
}

type statusCarrier interface {
	Status() *models.Envelope
}

type Client struct {
	baseURL          string
	barcodesEndpoint string
	httpClient       *http.Client
	logger           providers.Logger
	metrics          providers.MetricsProviderInterface
	inFlight         atomic.Int64
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ClientInterface {
	return &Client{
		baseURL:          strings.TrimRight(conf.Backend.BaseURL, "/"),
		barcodesEndpoint: conf.Backend.BarcodesEndpoint,
		httpClient: &http.Client{
			Timeout: conf.Backend.Timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Client) InFlight() int64 {
	return c.inFlight.Load()
}

func (c *Client) GetTeamsByCategory(ctx context.Context, category string) (*models.TeamsResponse, error) {
	var out models.TeamsResponse
	err := c.do(ctx, OpTeams, http.MethodGet, c.baseURL+"/teams-by-category/"+url.PathEscape(category), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitAttendance(ctx context.Context, req *models.AttendanceRequest) (*models.AttendanceResponse, error) {
	var out models.AttendanceResponse
	err := c.do(ctx, OpSubmit, http.MethodPost, c.baseURL+"/attendance", req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDashboardAttendance(ctx context.Context, category string) (*models.DashboardResponse, error) {
	var out models.DashboardResponse
	err := c.do(ctx, OpDashboard, http.MethodGet, c.baseURL+"/dashboard/attendance/"+url.PathEscape(category), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SendBarcodes posts raw scans to the barcode intake. The endpoint has no
// agreed response format, so only the status code is checked.
func (c *Client) SendBarcodes(ctx context.Context, batch *models.BarcodeBatch) error {
	return c.do(ctx, OpBarcodes, http.MethodPost, c.barcodesURL(), batch, nil)
}

func (c *Client) barcodesURL() string {
	if strings.HasPrefix(c.barcodesEndpoint, "http://") || strings.HasPrefix(c.barcodesEndpoint, "https://") {
		return c.barcodesEndpoint
	}
	return c.baseURL + "/" + strings.TrimLeft(c.barcodesEndpoint, "/")
}

func (c *Client) do(ctx context.Context, op, method, target string, body any, out statusCarrier) (err error) {
	c.inFlight.Inc()
	start := time.Now()
	defer func() {
		c.inFlight.Dec()
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		c.metrics.ObserveBackendRequest(op, outcome, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debugf(providers.TypeApp, "%s %s", method, target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf(providers.TypeApp, "%s failed: %s", op, err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Op: op, Status: resp.StatusCode, Message: errorMessage(resp.Body)}
		c.logger.Warnf(providers.TypeApp, "%s answered %d: %s", op, resp.StatusCode, httpErr)
		return httpErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	status := out.Status()
	if !status.Success {
		msg := firstNonEmpty(status.Message, status.Error, defaultFailures[op])
		c.logger.Warnf(providers.TypeApp, "%s reported failure: %s", op, msg)
		return &ApplicationError{Op: op, Message: msg}
	}
	return nil
}

// errorMessage pulls message, then error, out of a failed response body.
func errorMessage(body io.Reader) string {
	var envelope models.Envelope
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	return firstNonEmpty(envelope.Message, envelope.Error)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
