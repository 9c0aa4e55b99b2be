package repoerrs

import "errors"

var (
	ErrStreamRetired = errors.New("stream retired")
)
