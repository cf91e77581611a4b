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

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/solarisdb/lrucache/golibs/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	assert.Nil(t, err)
	assert.Equal(t, DEBUG, l)
	l, err = ParseLevel(" Trace ")
	assert.Nil(t, err)
	assert.Equal(t, TRACE, l)
	_, err = ParseLevel("verbose")
	assert.ErrorIs(t, err, errors.ErrInvalid)
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "Level(42)", Level(42).String())
}

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := SetStdWriter(&buf)
	defer SetStdWriter(prev)
	lvl := GetLevel()
	defer SetLevel(lvl)

	SetLevel(INFO)
	assert.Equal(t, INFO, GetLevel())
	log := NewLogger("test.logger")
	log.Debugf("hidden %d", 1)
	log.Infof("shown %d", 2)
	log.Errorf("error %s", "three")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, "INFO\ttest.logger: shown 2\n")
	assert.Contains(t, out, "ERROR\ttest.logger: error three\n")

	buf.Reset()
	SetLevel(TRACE)
	log.Tracef("trace")
	assert.Contains(t, buf.String(), "TRACE\ttest.logger: trace")
}
