package email

import "errors"

var (
	ErrSendFailed    = errors.New("failed to send email")
	ErrInvalidConfig = errors.New("invalid email configuration")
	ErrInvalidParams = errors.New("invalid email parameters")
)
