// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_errs01(tst *testing.T) {
	err := New(SingularSystem, "fem.Solve", "pivot %d is not positive", 7)
	require.Error(tst, err)
	assert.True(tst, Is(err, SingularSystem))
	assert.False(tst, Is(err, Geometry))
	assert.Equal(tst, "fem.Solve: singular system: pivot 7 is not positive", err.Error())

	wrapped := fmt.Errorf("run failed: %w", err)
	assert.True(tst, Is(wrapped, SingularSystem))
	assert.Equal(tst, SingularSystem, KindOf(wrapped))
}

func Test_errs02(tst *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(Config, "inp.ReadProblem", cause)
	assert.True(tst, Is(err, Config))
	assert.ErrorIs(tst, err, cause)

	// already classified errors keep their kind
	again := Wrap(MeshGeneration, "inp.Generate", err)
	assert.Equal(tst, Config, KindOf(again))

	assert.Nil(tst, Wrap(Config, "noop", nil))
	assert.Equal(tst, Kind(0), KindOf(cause))
	assert.Equal(tst, "kind(42)", Kind(42).String())
}
