package resp

import "errors"

var (
	ErrDone        = errors.New("request ctx done")
	ErrMissingData = errors.New("missing data")
)

// internalDescription is all a client learns of an error that is not an *api.Error.
const internalDescription = "internal error"
