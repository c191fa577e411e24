package inflect

import "errors"

// ErrUnknownKind is returned for an operation name or Kind outside the four
// known inflections.
var ErrUnknownKind = errors.New("unknown inflection")
