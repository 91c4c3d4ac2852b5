package usecase

import "errors"

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// Terminal for the event being handled; nothing is written.
	ErrJobNotFound          = errors.New("job not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrEmployerNotFound     = errors.New("employer not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound) ||
		errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrEmployerNotFound) ||
		errors.Is(err, ErrApplicationNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}
