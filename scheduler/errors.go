package scheduler

import (
	"fmt"
	"net/http"

	"github.com/teranos/cronstorm/errors"
)

// RemoteError is a failure reported by the scheduler. Error returns the
// response body exactly as received so the remote's own wording reaches the user.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("scheduler returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes every RemoteError match errors.ErrRemote
func (e *RemoteError) Is(target error) bool {
	return target == errors.ErrRemote
}

// transportFailure marks a network-level failure as remote
func transportFailure(err error, op string) error {
	return errors.Mark(errors.Wrapf(err, "%s failed", op), errors.ErrRemote)
}
