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

package context

import (
	ctxt "context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleep_DurationFirst(t *testing.T) {
	start := time.Now()
	assert.Nil(t, Sleep(ctxt.Background(), 10*time.Millisecond))
	assert.True(t, time.Since(start) >= 10*time.Millisecond)
}

func TestSleep_CtxFirst(t *testing.T) {
	start := time.Now()
	ctx, cancel := ctxt.WithTimeout(ctxt.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Minute), ctxt.DeadlineExceeded)
	assert.True(t, time.Since(start) >= 10*time.Millisecond)
	assert.True(t, time.Since(start) < time.Minute)
}

func TestSleep_NonPositive(t *testing.T) {
	assert.Nil(t, Sleep(ctxt.Background(), 0))
	ctx, cancel := ctxt.WithCancel(ctxt.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, -time.Second), ctxt.Canceled)
}
