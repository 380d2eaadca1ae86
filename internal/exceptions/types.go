package exceptions

import (
	"fmt"
	"sort"
	"strings"
)

type ServiceError struct {
	StatusCode int
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

type RequestError interface {
	ToServiceError() *ServiceError
	Error() string
}

type ConflictError struct {
	Resource string
	Id       string
}

func (ce *ConflictError) Error() string {
	return fmt.Sprintf("Found conflicting %s with id: %s", ce.Resource, ce.Id)
}

func (ce *ConflictError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 409,
		Cause:      ce,
	}
}

func Conflict(resource string, id string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Id:       id,
	}
}

// NotFoundError is also returned for rows that exist but are not visible to
// the requester, so the message never says which case applied.
type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find a %s with id: %s", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 404,
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

type InvalidInputError struct {
	Message string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func (ie *InvalidInputError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 400,
		Cause:      ie,
	}
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

// ValidationError collects every failing field of a single input.
type ValidationError struct {
	Fields map[string]string
}

func (ve *ValidationError) Error() string {
	names := make([]string, 0, len(ve.Fields))
	for name := range ve.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, ve.Fields[name])
	}
	return "Invalid input: " + strings.Join(parts, "; ")
}

func (ve *ValidationError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 400,
		Cause:      ve,
	}
}

// Add records a failure for field, keeping the first message per field.
func (ve *ValidationError) Add(field string, message string) {
	if ve.Fields == nil {
		ve.Fields = make(map[string]string)
	}
	if _, ok := ve.Fields[field]; !ok {
		ve.Fields[field] = message
	}
}

// OrNil returns nil when nothing failed, so callers can return it directly.
func (ve *ValidationError) OrNil() error {
	if ve == nil || len(ve.Fields) == 0 {
		return nil
	}
	return ve
}

func Validation() *ValidationError {
	return &ValidationError{
		Fields: make(map[string]string),
	}
}

type UnauthorizedError struct{}

func (ue *UnauthorizedError) Error() string {
	return "Unauthorized"
}

func (ue *UnauthorizedError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 401,
		Cause:      ue,
	}
}

func Unauthorized() *UnauthorizedError {
	return &UnauthorizedError{}
}

type ForbiddenError struct {
	Action string
}

func (fe *ForbiddenError) Error() string {
	return fmt.Sprintf("Not allowed to %s", fe.Action)
}

func (fe *ForbiddenError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 403,
		Cause:      fe,
	}
}

func Forbidden(action string) *ForbiddenError {
	return &ForbiddenError{
		Action: action,
	}
}

type InternalServerError struct {
	Message string
}

func (ie *InternalServerError) Error() string {
	return ie.Message
}

func (ie *InternalServerError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 500,
		Cause:      ie,
	}
}

func InternalServer(message string) *InternalServerError {
	return &InternalServerError{
		Message: message,
	}
}

// PartialWriteError reports the rows of a multi-step write that did not land.
type PartialWriteError struct {
	Resource string
	Id       string
	Failed   []string
	Cause    error
}

func (pe *PartialWriteError) Error() string {
	return fmt.Sprintf("Created %s %s but failed to write %d item(s): %s (%v)",
		pe.Resource, pe.Id, len(pe.Failed), strings.Join(pe.Failed, ", "), pe.Cause)
}

func (pe *PartialWriteError) Unwrap() error {
	return pe.Cause
}

func (pe *PartialWriteError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 500,
		Cause:      pe,
	}
}
