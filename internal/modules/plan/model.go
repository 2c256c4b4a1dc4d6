// README: Manual plan module errors.
package plan

import "errors"

var (
	ErrNotFound   = errors.New("plan not found")
	ErrBadRequest = errors.New("invalid plan")
)
