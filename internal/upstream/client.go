package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"aad/internal/models"
	"aad/internal/providers"
	"aad/internal/structures"

	json "github.com/goccy/go-json"
)

// Return codes the vendor documents as success. Everything else is an
// application-level failure even on HTTP 200.
const (
	returnCodeOK    = 0
	returnCodeOKAlt = 1
)

type SegmentQuery struct {
	PlaceID string
	Segment models.Segment
	Devices string
}

type CheckinAPI interface {
	FetchSegment(ctx context.Context, q SegmentQuery) ([]models.CheckinRecord, error)
}

type Client struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	tokens  TokenSource
	client  *http.Client
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, tokens TokenSource) CheckinAPI {
	return &Client{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		tokens:  tokens,
		client:  &http.Client{Timeout: conf.Upstream.Timeout},
	}
}

type checkinResponse struct {
	ReturnCode    int                    `json:"returnCode"`
	ReturnMessage string                 `json:"returnMessage"`
	Data          []models.CheckinRecord `json:"data"`
}

// FetchSegment retrieves every check-in record for one segment, following
// page offsets until a short page arrives. MaxPages bounds runaway windows.
func (c *Client) FetchSegment(ctx context.Context, q SegmentQuery) ([]models.CheckinRecord, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var records []models.CheckinRecord
	pageSize := c.conf.Upstream.PageSize

	for page := 0; page < c.conf.Upstream.MaxPages; page++ {
		data, err := c.fetchPage(ctx, q, token, page*pageSize)
		if err != nil {
			return nil, err
		}
		records = append(records, data...)
		if len(data) < pageSize {
			break
		}
	}

	c.logger.Debugf(providers.TypeFetch, "Segment [%d,%d) returned %d records", q.Segment.Start, q.Segment.End, len(records))
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, q SegmentQuery, token string, start int) ([]models.CheckinRecord, error) {
	form := url.Values{}
	form.Set("token", token)
	form.Set("placeId", q.PlaceID)
	form.Set("from", strconv.FormatInt(q.Segment.Start, 10))
	form.Set("to", strconv.FormatInt(q.Segment.End, 10))
	form.Set("size", strconv.Itoa(c.conf.Upstream.PageSize))
	form.Set("start", strconv.Itoa(start))
	if q.Devices != "" {
		form.Set("devices", q.Devices)
	}

	endpoint := c.conf.Upstream.BaseURL + c.conf.Upstream.CheckinPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build checkin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	began := time.Now()
	res, err := c.client.Do(req)
	c.metrics.ObserveUpstreamDuration(time.Since(began))
	if err != nil {
		return nil, fmt.Errorf("checkin query: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPStatusError{StatusCode: res.StatusCode}
	}

	var payload checkinResponse
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode checkin response: %w", err)
	}
	if payload.ReturnCode != returnCodeOK && payload.ReturnCode != returnCodeOKAlt {
		return nil, &APIError{Code: payload.ReturnCode, Message: payload.ReturnMessage}
	}

	c.metrics.IncUpstreamPages()
	return payload.Data, nil
}
