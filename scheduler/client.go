// Package scheduler talks to the remote job scheduler: it creates recurring
// jobs from a normalized job.Spec and cancels them by handle.
//
// The client is stateless. It holds no record of created jobs, never retries,
// and sets no timeout of its own; callers bound requests through the context.
package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/cronstorm/errors"
	"github.com/teranos/cronstorm/internal/httpclient"
	"github.com/teranos/cronstorm/job"
	"github.com/teranos/cronstorm/logger"
	"github.com/teranos/cronstorm/version"
)

const jobsPath = "/v1/jobs"

// Config holds scheduler client configuration
type Config struct {
	Endpoint       string             // base URL, e.g. https://cronstorm.com/api
	BlockPrivateIP bool               // refuse loopback/private endpoints
	MaxRedirects   int                // 0 = do not follow redirects
	HTTPClient     *http.Client       // overrides the default transport (tests)
	Logger         *zap.SugaredLogger // nil = logger.ComponentLogger("scheduler")
}

// Client is the remote job protocol client
type Client struct {
	endpoint   string
	httpClient *httpclient.SaferClient
	logger     *zap.SugaredLogger
}

// NewClient creates a scheduler client for config.Endpoint
func NewClient(config Config) *Client {
	var hc *httpclient.SaferClient
	if config.HTTPClient != nil {
		hc = httpclient.WrapClient(config.HTTPClient)
	} else {
		hc = httpclient.New(httpclient.Options{
			MaxRedirects:   config.MaxRedirects,
			BlockPrivateIP: config.BlockPrivateIP,
		})
	}

	log := config.Logger
	if log == nil {
		log = logger.ComponentLogger("scheduler")
	}

	return &Client{
		endpoint:   strings.TrimRight(config.Endpoint, "/"),
		httpClient: hc,
		logger:     log,
	}
}

// CreateJobRequest is the wire form of a job.Spec. The API key travels in a header.
type CreateJobRequest struct {
	Method        job.Method `json:"method"`
	URL           string     `json:"url"`
	IntervalCount int        `json:"intervalCount"`
	Interval      job.Unit   `json:"interval"`
	DurationCount int        `json:"durationCount"`
	Duration      job.Unit   `json:"duration"`
	Body          *string    `json:"body,omitempty"`
	ContentType   string     `json:"contentType"`
}

// CreateJobResponse is the scheduler's reply to a create
type CreateJobResponse struct {
	ID string `json:"id"`
}

// CancelResult is the scheduler's confirmation of a cancel
type CancelResult struct {
	ID         string `json:"id"`
	StatusCode int    `json:"status"`
	Body       string `json:"body"`
}

// CreateJob submits spec and returns the handle the scheduler assigned
func (c *Client) CreateJob(ctx context.Context, spec job.Spec) (*job.Handle, error) {
	payload, err := json.Marshal(CreateJobRequest{
		Method:        spec.Method,
		URL:           spec.URL,
		IntervalCount: spec.IntervalCount,
		Interval:      spec.Interval,
		DurationCount: spec.DurationCount,
		Duration:      spec.Duration,
		Body:          spec.Body,
		ContentType:   spec.ContentType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal job")
	}

	status, body, err := c.do(ctx, http.MethodPost, c.endpoint+jobsPath, payload, spec.APIKey)
	if err != nil {
		return nil, c.failed(err, "create job")
	}
	if status < 200 || status > 299 {
		return nil, &RemoteError{StatusCode: status, Body: string(body)}
	}

	var resp CreateJobResponse
	if err := json.Unmarshal(body, &resp); err != nil || strings.TrimSpace(resp.ID) == "" {
		// 2xx without an id is still a remote failure; surface what came back
		return nil, &RemoteError{StatusCode: status, Body: string(body)}
	}

	handle := &job.Handle{ID: resp.ID}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputOperationInfo) {
		c.logger.Infow("Job created", logger.FieldJobID, handle.ID)
	}
	return handle, nil
}

// CancelJob asks the scheduler to stop the job identified by handle.
// An empty apiKey is still sent; the scheduler decides whether that is allowed.
func (c *Client) CancelJob(ctx context.Context, handle job.Handle, apiKey string) (*CancelResult, error) {
	if err := handle.Validate(); err != nil {
		return nil, err
	}
	target := c.endpoint + jobsPath + "/" + url.PathEscape(handle.ID)

	status, body, err := c.do(ctx, http.MethodDelete, target, nil, apiKey)
	if err != nil {
		return nil, c.failed(err, "cancel job")
	}
	if status < 200 || status > 299 {
		return nil, &RemoteError{StatusCode: status, Body: string(body)}
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputOperationInfo) {
		c.logger.Infow("Job cancelled", logger.FieldJobID, handle.ID)
	}
	return &CancelResult{ID: handle.ID, StatusCode: status, Body: string(body)}, nil
}

// failed logs a transport failure and marks it remote
func (c *Client) failed(err error, op string) error {
	c.logger.Debugw("Scheduler call failed", logger.FieldOperation, op, logger.FieldError, err)
	return transportFailure(err, op)
}

// do performs one request and returns the status and full body
func (c *Client) do(ctx context.Context, method, target string, payload []byte, apiKey string) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed to create request")
	}

	requestID := uuid.NewString()
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cronstorm/"+version.Get().Version)
	req.Header.Set("X-Request-ID", requestID)
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	log := c.logger.With(logger.FieldRequestID, requestID)
	if logger.ShouldOutput(logger.Verbosity, logger.OutputHTTPCalls) {
		log.Debugw("Scheduler request", logger.FieldMethod, method, logger.FieldURL, target,
			"authorized", apiKey != "")
	}
	if payload != nil && logger.ShouldOutput(logger.Verbosity, logger.OutputRequestBody) {
		log.Debugw("Request body", "body", string(payload))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "failed to read response")
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputHTTPCalls) {
		log.Debugw("Scheduler response", logger.FieldStatus, resp.StatusCode)
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputTiming) {
		log.Debugw("Scheduler call timing", logger.FieldMethod, method,
			logger.FieldDurationMS, time.Since(start).Milliseconds())
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputResponseBody) {
		log.Debugw("Response body", "body", string(body))
	}

	return resp.StatusCode, body, nil
}
