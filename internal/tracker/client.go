package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/redmane-backend/internal/domain"
	"github.com/yungbote/redmane-backend/internal/platform/apierr"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

const DefaultServer = "http://localhost:8888"

// Client talks to the redmane HTTP surface.
type Client interface {
	GetSamples(ctx context.Context, projectID int64) ([]domain.SampleView, error)
	GetDataset(ctx context.Context, projectID, datasetID int64) (domain.DatasetView, error)
	UpdateDatasetSize(ctx context.Context, req domain.SizeUpdate) error
	AddRawFiles(ctx context.Context, reqs []domain.RawFileRequest) (domain.SubmitResult, error)
}

type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type client struct {
	log     *logger.Logger
	baseURL string
	http    *http.Client
}

func NewClient(log *logger.Logger, cfg ClientConfig) (Client, error) {
	if log == nil {
		log = logger.Nop()
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultServer
	}
	if _, err := url.Parse(base); err != nil {
		return nil, apierr.Configuration("tracker.NewClient", "invalid server url %q: %v", base, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &client{
		log:     log.With("client", "RedmaneClient"),
		baseURL: base,
		http:    hc,
	}, nil
}

// GetSamples fetches every sample of a project with its patient embedded.
func (c *client) GetSamples(ctx context.Context, projectID int64) ([]domain.SampleView, error) {
	path := "/samples/0?project_id=" + strconv.FormatInt(projectID, 10)
	out, err := doJSON[[]domain.SampleView](c, ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *client) GetDataset(ctx context.Context, projectID, datasetID int64) (domain.DatasetView, error) {
	path := fmt.Sprintf("/datasets_with_metadata/%d?project_id=%d", datasetID, projectID)
	out, err := doJSON[domain.DatasetView](c, ctx, http.MethodGet, path, nil)
	if err != nil {
		return domain.DatasetView{}, err
	}
	return *out, nil
}

func (c *client) UpdateDatasetSize(ctx context.Context, req domain.SizeUpdate) error {
	_, err := doJSON[statusReply](c, ctx, http.MethodPut, "/datasets_metadata/size_update", req)
	return err
}

func (c *client) AddRawFiles(ctx context.Context, reqs []domain.RawFileRequest) (domain.SubmitResult, error) {
	if reqs == nil {
		reqs = []domain.RawFileRequest{}
	}
	out, err := doJSON[addRawFilesReply](c, ctx, http.MethodPost, "/add_raw_files/", reqs)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	return out.SubmitResult, nil
}

type statusReply struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type addRawFilesReply struct {
	statusReply
	domain.SubmitResult
}

func doJSON[T any](c *client, ctx context.Context, method, path string, body any) (*T, error) {
	op := "tracker.client " + method + " " + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, apierr.New(apierr.CodeTransport, op, "encode request", err)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, apierr.New(apierr.CodeTransport, op, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apierr.New(apierr.CodeTransport, op, err.Error(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.New(apierr.CodeTransport, op, "read response: "+err.Error(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return nil, apierr.New(apierr.CodeTransport, op, fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))), nil)
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apierr.New(apierr.CodeTransport, op, "decode response", err)
	}
	return &out, nil
}
