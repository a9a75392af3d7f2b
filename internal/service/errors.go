package service

import "errors"

// Error taxonomy surfaced by the workflow services. Handlers map these to
// HTTP statuses via errors.Is.
var (
	// ErrActivityNotFound indicates the activity id has no record.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrStudentNotFound indicates the student id has no record.
	ErrStudentNotFound = errors.New("student not found")
	// ErrReviewerNotFound indicates the reviewer id has no record.
	ErrReviewerNotFound = errors.New("reviewer not found")
	// ErrNotificationNotFound indicates the notification id has no record for the caller.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrPermissionDenied indicates the caller lacks role or organizational authority.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidState indicates the operation is illegal for the activity's lifecycle state.
	ErrInvalidState = errors.New("operation not allowed in current activity state")
	// ErrInvalidArgument indicates a malformed enumeration value or illegal target status.
	ErrInvalidArgument = errors.New("invalid argument")
)
