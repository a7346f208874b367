package query

import (
	"errors"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
	"github.com/0xsj/overwatch-kernel/internal/port/outbound/repository"
)

// userLookupError normalises not-found errors from any repository to
// ErrUserNotFound. Other errors pass through.
func userLookupError(err error) error {
	if errors.Is(err, domainerror.ErrUserNotFound) || errors.Is(err, repository.ErrNotFound) {
		return domainerror.ErrUserNotFound
	}
	return err
}
