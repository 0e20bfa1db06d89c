package catalog

import "errors"

var (
	ErrAuthentication    = errors.New("could not authenticate")
	ErrMalformedResponse = errors.New("malformed catalog response")
	ErrTermNotFound      = errors.New("term not found")
)
