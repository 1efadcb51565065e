package arena

import "errors"

var (
	// ErrOutOfRange indicates a commit request beyond the reservation.
	ErrOutOfRange = errors.New("arena: commit beyond reservation")

	// ErrCommitDenied indicates the host refused to extend the committed
	// region. The mark is unchanged.
	ErrCommitDenied = errors.New("arena: commit denied")
)
