// Package errs provides standardized error types for the parcel tracking
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package covers the error taxonomy of the service:
//   - ValueIsRequiredError: a required field is missing or empty
//   - ValueIsInvalidError: a field is present but invalid
//   - ObjectNotFoundError: a referenced parcel or session does not exist
//   - SessionNotConnectedError: a scan was attempted without a connected session
//   - ConcurrencyConflictError: an identifier collision or write-write race
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// The HTTP adapter relies on the sentinels to map failures to status codes,
// so no error kind here is ever swallowed or re-stringified on its way out.
package errs
