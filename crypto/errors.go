package crypto

import "fmt"

// SigningError reports a credential or chain failure while producing a
// signature: a bad certificate/key pair, a wrong password, or an
// intermediate certificate that cannot complete the trust chain.
type SigningError struct {
	Reason string
	Err    error
}

// Error implements the standard error interface.
func (e *SigningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("signing: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("signing: %s", e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *SigningError) Unwrap() error { return e.Err }

// VerificationError reports structurally unparseable verification
// input. It is distinct from a clean "signature invalid" result, which
// Verify reports as a false return without error.
type VerificationError struct {
	Reason string
	Err    error
}

// Error implements the standard error interface.
func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("verification: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("verification: %s", e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *VerificationError) Unwrap() error { return e.Err }
