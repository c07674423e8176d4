package office

import "errors"

var (
	ErrLocationNotFound = errors.New("office location not found")
)
