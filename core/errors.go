package core

import "fmt"

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorUnauthorized struct {
}

func (e ErrorUnauthorized) Error() string {
	return "Unauthorized"
}

func NewErrorUnauthorized() ErrorUnauthorized {
	return ErrorUnauthorized{}
}

type ErrorAlreadyDecided struct {
}

func (e ErrorAlreadyDecided) Error() string {
	return "Already Decided"
}

func NewErrorAlreadyDecided() ErrorAlreadyDecided {
	return ErrorAlreadyDecided{}
}

type ErrorNotEligible struct {
}

func (e ErrorNotEligible) Error() string {
	return "Not Eligible"
}

func NewErrorNotEligible() ErrorNotEligible {
	return ErrorNotEligible{}
}

type ErrorInvalidTransition struct {
	From RequestStatus
	To   RequestStatus
}

func (e ErrorInvalidTransition) Error() string {
	return fmt.Sprintf("Invalid Transition: %s -> %s", e.From, e.To)
}

func NewErrorInvalidTransition(from, to RequestStatus) ErrorInvalidTransition {
	return ErrorInvalidTransition{From: from, To: to}
}

type ErrorValidation struct {
	Msg string
}

func (e ErrorValidation) Error() string {
	return "Validation Error: " + e.Msg
}

func NewErrorValidation(msg string) ErrorValidation {
	return ErrorValidation{Msg: msg}
}

type ErrorConfiguration struct {
	Msg string
}

func (e ErrorConfiguration) Error() string {
	return "Configuration Error: " + e.Msg
}

func NewErrorConfiguration(msg string) ErrorConfiguration {
	return ErrorConfiguration{Msg: msg}
}

type ErrorAlreadyExists struct {
}

func (e ErrorAlreadyExists) Error() string {
	return "Already Exists"
}

func NewErrorAlreadyExists() ErrorAlreadyExists {
	return ErrorAlreadyExists{}
}
