package nest

import "errors"

// ErrNoDocument is returned by stores when nothing has been saved yet
var ErrNoDocument = errors.New("no saved document")
