package email

import (
	"context"
	"fmt"
	"regexp"
)

// Sender delivers a single transactional message. Implementations must be
// safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, params SendParams) error
}

// SendParams describes one outgoing message.
type SendParams struct {
	To       string // recipient address, required
	Subject  string // required
	BodyHTML string // required
	Tag      string // optional provider-side label for analytics
}

var addressRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the required fields are present and the recipient
// address is plausible. Senders call this before touching their transport.
func (p SendParams) Validate() error {
	if p.To == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidParams)
	}
	if !addressRegex.MatchString(p.To) {
		return fmt.Errorf("%w: recipient is not a valid email address", ErrInvalidParams)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	return nil
}
