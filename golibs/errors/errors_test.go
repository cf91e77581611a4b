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

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	assert.True(t, Is(fmt.Errorf("fddd %w", ErrNotExist), ErrNotExist))
	assert.True(t, Is(fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrInvalid)), ErrInvalid))
	assert.False(t, Is(fmt.Errorf("fddd %s", ErrNotExist), ErrNotExist))
	assert.False(t, Is(ErrInvalid, ErrInternal))
	assert.False(t, Is(nil, ErrInternal))
}

func TestUnwrap(t *testing.T) {
	assert.Equal(t, ErrClosed, Unwrap(fmt.Errorf("closed: %w", ErrClosed)))
	assert.Nil(t, Unwrap(ErrClosed))
}

type codeErr struct {
	code int
}

func (c codeErr) Error() string {
	return fmt.Sprintf("code=%d", c.code)
}

func TestAs(t *testing.T) {
	var ce codeErr
	assert.True(t, As(fmt.Errorf("wrapped: %w", codeErr{code: 3}), &ce))
	assert.Equal(t, 3, ce.code)
	assert.False(t, As(ErrInvalid, &ce))
}
