// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import "errors"

var (
	// ErrExist indicates that an object already exists
	ErrExist = errors.New("already exists")
	// ErrNotExist indicates that an object is not found
	ErrNotExist = errors.New("not found")
	// ErrInvalid indicates that an argument or a configuration value cannot be accepted
	ErrInvalid = errors.New("invalid argument")
	// ErrClosed indicates that the object is closed and cannot be used anymore
	ErrClosed = errors.New("closed")
	// ErrInternal indicates a broken invariant or an unexpected state
	ErrInternal = errors.New("internal error")
	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("canceled")
	// ErrExhausted indicates that a resource limit is reached
	ErrExhausted = errors.New("resource exhausted")
	// ErrConflict indicates that the operation contradicts the current state
	ErrConflict = errors.New("conflict")
	// ErrUnimplemented indicates that the functionality is not supported
	ErrUnimplemented = errors.New("unimplemented")
	// ErrDataLoss indicates that some data is lost or corrupted
	ErrDataLoss = errors.New("data loss")
	// ErrCommunication indicates a failure of the communication with a peer
	ErrCommunication = errors.New("communication error")
	// ErrNotAuthorized indicates that the caller has no permissions for the operation
	ErrNotAuthorized = errors.New("not authorized")
)

// Is reports whether any error in err's chain matches target. It is the
// errors.Is() of the standard library, provided here so the package can be
// imported instead of the standard one.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is the errors.As() of the standard library
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap is the errors.Unwrap() of the standard library
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
