package submission

import "errors"

var (
	ErrNotReady       = errors.New("submission is not ready: incomplete sections or invalid metadata")
	ErrDeliveryFailed = errors.New("failed to deliver submission")
)
