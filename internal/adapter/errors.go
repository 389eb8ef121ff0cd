package adapter

import "errors"

// TransientError marks a fetch failure worth retrying: timeouts, throttling,
// captcha interstitials, a price element that went missing for one load.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient fetch error: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError marks a fetch failure that retrying cannot fix: malformed
// URLs, unsupported retailers, pages that no longer exist.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return "permanent fetch error: " + e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Transient reports whether err is classified as retryable.
func Transient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// Permanent reports whether err is classified as not retryable.
func Permanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}
