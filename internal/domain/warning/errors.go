package warning

import "errors"

var (
	ErrWarningNotFound     = errors.New("warning not found")
	ErrWarningExists       = errors.New("warning already issued for this date")
	ErrAlreadyAcknowledged = errors.New("warning already acknowledged")
	ErrNotWarningRecipient = errors.New("warning belongs to another employee")
)
