package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents fetch/transport errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents markup parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeLedger represents seen-ledger storage errors
	ErrorTypeLedger ErrorType = "ledger"
	// ErrorTypeNotification represents alert delivery errors
	ErrorTypeNotification ErrorType = "notification"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// MonitorError is the error value used across the monitor pipeline. Source
// identifies the search query (or component) the error belongs to.
type MonitorError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *MonitorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *MonitorError) Unwrap() error {
	return e.Err
}

// Skippable reports whether the poll loop may log the error and move on to
// the next query. Only configuration errors are fatal.
func (e *MonitorError) Skippable() bool {
	return e.Type != ErrorTypeConfiguration
}

// New creates a new MonitorError
func New(errType ErrorType, source, message string, err error) *MonitorError {
	return &MonitorError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(source, message string, err error) *MonitorError {
	return New(ErrorTypeNetwork, source, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *MonitorError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewLedger creates a new ledger error
func NewLedger(source, message string, err error) *MonitorError {
	return New(ErrorTypeLedger, source, message, err)
}

// NewNotification creates a new notification error
func NewNotification(message string, err error) *MonitorError {
	return New(ErrorTypeNotification, "telegram", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *MonitorError {
	return New(ErrorTypeConfiguration, "", message, err)
}
