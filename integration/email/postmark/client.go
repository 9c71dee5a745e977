package postmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/layangkit/layangkit/core/email"
)

var _ email.Sender = (*Client)(nil)

// Client sends mail through Postmark's transactional API.
type Client struct {
	client *postmark.Client
	config Config
}

// New creates a Postmark-backed sender. Missing credentials fail here rather
// than on the first send so broken deployments surface at startup.
func New(cfg Config) (*Client, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", email.ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", email.ErrInvalidConfig)
	}
	if cfg.SupportEmail == "" {
		cfg.SupportEmail = cfg.SenderEmail
	}

	return &Client{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}, nil
}

// Send implements email.Sender. Opens and HTML link clicks are tracked;
// plain-text tracking is left off to avoid mangling text links.
func (c *Client) Send(ctx context.Context, params email.SendParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    c.config.SupportEmail,
		To:         params.To,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(email.ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			email.ErrSendFailed,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
