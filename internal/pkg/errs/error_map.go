/*
Package errs provides custom error types and application-level error code constants.

This file maps every error code to its CustomError template.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// A zero Status means the business error is reported with HTTP 200 and a non-zero code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Roster, Room and Competition Errors
	ErrRoomNotFound:                 {Code: ErrRoomNotFound, Message: "Breakout room not found.", Status: http.StatusNotFound},
	ErrParticipantNameTaken:         {Code: ErrParticipantNameTaken, Message: "This name is reserved."},
	ErrMessageContentTooLong:        {Code: ErrMessageContentTooLong, Message: "Message is too long."},
	ErrNotesTooLong:                 {Code: ErrNotesTooLong, Message: "Notes may not exceed %d characters."},
	ErrCompetitionQuestionsRequired: {Code: ErrCompetitionQuestionsRequired, Message: "Please enter questions before starting the competition."},
	ErrCompetitionNotRunning:        {Code: ErrCompetitionNotRunning, Message: "No competition is running."},
	ErrQuestionNotFound:             {Code: ErrQuestionNotFound, Message: "Question not found."},

	// 3xxx: Session and Security Errors
	ErrUnauthorized:    {Code: ErrUnauthorized, Message: "Please join the classroom to continue.", Status: http.StatusUnauthorized},
	ErrForbidden:       {Code: ErrForbidden, Message: "Your role is not allowed to do that.", Status: http.StatusForbidden},
	ErrInvalidPasscode: {Code: ErrInvalidPasscode, Message: "Incorrect teacher passcode."},
	ErrSessionKicked:   {Code: ErrSessionKicked, Message: "You joined from another tab."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
