/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both inside the server
and in the JSON envelope returned to classroom clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Roster, Room and Competition Errors
const (
	// ErrRoomNotFound indicates that the referenced breakout room does not exist.
	ErrRoomNotFound = 2103

	// ErrParticipantNameTaken indicates that a joining student used a name reserved by the teacher.
	ErrParticipantNameTaken = 2105

	// ErrMessageContentTooLong indicates that a chat message exceeded the maximum length.
	ErrMessageContentTooLong = 2201

	// ErrNotesTooLong indicates that shared notes exceeded the maximum length.
	ErrNotesTooLong = 2202

	// ErrCompetitionQuestionsRequired indicates that a competition was started without questions.
	ErrCompetitionQuestionsRequired = 2301

	// ErrCompetitionNotRunning indicates that an answer was submitted while no competition is running.
	ErrCompetitionNotRunning = 2302

	// ErrQuestionNotFound indicates that an answer referenced an unknown question id.
	ErrQuestionNotFound = 2303
)

// 3xxx: Session and Security Errors
const (
	// ErrUnauthorized indicates that the request carries no valid session token.
	ErrUnauthorized = 3001

	// ErrForbidden indicates that the session role may not perform the operation.
	ErrForbidden = 3002

	// ErrInvalidPasscode indicates that the teacher passcode was wrong.
	ErrInvalidPasscode = 3003

	// ErrSessionKicked indicates that a newer connection replaced this one.
	ErrSessionKicked = 3004
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
