package domain

import (
	"errors"
	"fmt"
)

// UserInputError: argumentos mal formados. El mensaje se le muestra tal cual al usuario.
type UserInputError struct {
	Msg string
}

func (e *UserInputError) Error() string { return e.Msg }

func UserInput(format string, args ...any) error {
	return &UserInputError{Msg: fmt.Sprintf(format, args...)}
}

type PermissionReason uint8

const (
	ReasonGuildOnly PermissionReason = iota + 1
	ReasonOwnerOnly
	ReasonCannotSend
)

type PermissionError struct {
	Reason PermissionReason
}

func (e *PermissionError) Error() string {
	switch e.Reason {
	case ReasonGuildOnly:
		return "command is only available in servers"
	case ReasonOwnerOnly:
		return "command is restricted to the server owner"
	case ReasonCannotSend:
		return "missing permission to send messages"
	}
	return "permission denied"
}

// UpstreamError: falla no reintentable de una API externa (status, parseo, red).
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// CacheMissError no llega nunca al usuario: dispara un fetch o un default.
type CacheMissError struct {
	Kind string
	Key  string
}

func (e *CacheMissError) Error() string {
	return fmt.Sprintf("%s %s not found in cache", e.Kind, e.Key)
}

func IsCacheMiss(err error) bool {
	var cm *CacheMissError
	return errors.As(err, &cm)
}
