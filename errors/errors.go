package replyradar_errors

import "errors"

var (
	ErrMailboxDisabled = errors.New("mailbox is disabled")

	ErrModelEmptyResponse = errors.New("model returned no candidates")
)
