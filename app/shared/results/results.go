// Package results separates domain failures from infrastructure errors.
//
// A service operation returns an OperationResult together with an error. The
// error is reserved for infrastructure faults that abort the request; a
// failure inside the result is an expected business outcome.
package results

// OperationResult carries exactly one of Success or Failure.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a successful value.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult wraps a domain failure.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

// IsSuccess reports whether the result holds a success value.
func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

// IsFailure reports whether the result holds a domain failure.
func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }
