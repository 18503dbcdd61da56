package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Fleet-related errors

type FleetError struct {
	*DomainError
	FleetName string
}

func NewFleetError(fleetName, message string) *FleetError {
	return &FleetError{
		DomainError: &DomainError{Message: fmt.Sprintf("fleet %s: %s", fleetName, message)},
		FleetName:   fleetName,
	}
}

type InvalidFleetDataError struct {
	*FleetError
}

func NewInvalidFleetDataError(fleetName, message string) *InvalidFleetDataError {
	return &InvalidFleetDataError{FleetError: NewFleetError(fleetName, message)}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
