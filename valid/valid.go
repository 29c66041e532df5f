// Package valid provides the shared structural-error accumulator used by
// every view's ValidateSize/ValidateExceptCRC methods, so a caller
// walking a whole frame tree can collect every error found instead of
// aborting at the first one.
package valid

import "errors"

// Validator accumulates structural decoding errors across one or more
// view validation calls. The zero value is ready to use.
type Validator struct {
	// CheckEvil, when set, makes IPv4 validation flag the reserved "evil
	// bit" (RFC 3514) as an error instead of silently ignoring it.
	CheckEvil bool
	errs      []error
}

// AddError records err if non-nil. Safe to call with a nil error so
// callers can write `v.AddError(maybeErr())` unconditionally.
func (v *Validator) AddError(err error) {
	if err != nil {
		v.errs = append(v.errs, err)
	}
}

// HasError reports whether any error has been recorded since the last Reset.
func (v *Validator) HasError() bool { return len(v.errs) > 0 }

// Err returns nil if no error was recorded, the single recorded error if
// exactly one was, or a joined error (see [errors.Join]) otherwise.
func (v *Validator) Err() error {
	switch len(v.errs) {
	case 0:
		return nil
	case 1:
		return v.errs[0]
	default:
		return errors.Join(v.errs...)
	}
}

// Reset clears all recorded errors so the Validator can be reused.
func (v *Validator) Reset() { v.errs = v.errs[:0] }
