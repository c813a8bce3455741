package email

import "errors"

var (
	ErrRenderTemplate = errors.New("render email template")
	ErrNoRecipient    = errors.New("event has no recipient email")
)
