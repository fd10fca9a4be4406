package repository

import "errors"

var (
	ErrMailboxNotFound        = errors.New("mailbox not found")
	ErrMessageNotFound        = errors.New("message not found")
	ErrThreadNotFound         = errors.New("thread not found")
	ErrClassificationNotFound = errors.New("classification not found")
	ErrInvalidInput           = errors.New("invalid input parameters")
)
