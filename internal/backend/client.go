package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tripline/guidemod/internal/models"
)

// RequestError means the request could not be sent or no response arrived.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend %s request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError means the backend answered with a non-success status.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s rejected: status %d", e.Op, e.StatusCode)
}

// actionRequest is the approve/decline body the backend expects.
type actionRequest struct {
	ModerationID string `json:"moderationId"`
	Comment      string `json:"comment"`
}

// Client talks to the remote moderation backend. The queue fetch retries
// (refresh is idempotent); action posts never do, a moderation decision must
// reach the server at most once per call.
type Client struct {
	fetch       *resty.Client
	act         *resty.Client
	queuePath   string
	approvePath string
	declinePath string
}

type Options struct {
	BaseURL     string
	QueuePath   string
	ApprovePath string
	DeclinePath string
	Timeout     time.Duration
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		fetch: resty.New().
			SetBaseURL(opts.BaseURL).
			SetTimeout(opts.Timeout).
			SetRetryCount(3).
			SetRetryWaitTime(2 * time.Second).
			SetRetryMaxWaitTime(10 * time.Second),
		act: resty.New().
			SetBaseURL(opts.BaseURL).
			SetTimeout(opts.Timeout),
		queuePath:   opts.QueuePath,
		approvePath: opts.ApprovePath,
		declinePath: opts.DeclinePath,
	}
}

// FetchQueue retrieves the full moderation queue.
func (c *Client) FetchQueue(ctx context.Context) ([]models.ModerationItem, error) {
	resp, err := c.fetch.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.queuePath)
	if err != nil {
		return nil, &RequestError{Op: "queue", Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{Op: "queue", StatusCode: resp.StatusCode()}
	}

	var items []models.ModerationItem
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, fmt.Errorf("failed to parse queue response: %w", err)
	}
	return items, nil
}

// Approve submits an approval for the item. The server is the sole arbiter
// of whether the transition is valid.
func (c *Client) Approve(ctx context.Context, id, comment string) error {
	return c.post(ctx, "approve", c.approvePath, id, comment)
}

// Decline submits a decline for the item.
func (c *Client) Decline(ctx context.Context, id, comment string) error {
	return c.post(ctx, "decline", c.declinePath, id, comment)
}

func (c *Client) post(ctx context.Context, op, path, id, comment string) error {
	resp, err := c.act.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(actionRequest{ModerationID: id, Comment: comment}).
		Post(path)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return &StatusError{Op: op, StatusCode: resp.StatusCode()}
	}
	return nil
}
