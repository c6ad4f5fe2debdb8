// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/recon/pkg/game"
)

func TestParseTimeControl(t *testing.T) {
	tc, err := game.ParseTimeControl("900+0")
	require.NoError(t, err)
	assert.Equal(t, game.TimeControl{Base: 15 * time.Minute}, tc)
	assert.Equal(t, "900+0", tc.String())

	tc, err = game.ParseTimeControl("10.5+0.1")
	require.NoError(t, err)
	assert.Equal(t, 10500*time.Millisecond, tc.Base)
	assert.Equal(t, 100*time.Millisecond, tc.Inc)

	for _, str := range []string{"900", "a+1", "10+b", "0+1", "10+-1"} {
		_, err := game.ParseTimeControl(str)
		assert.Error(t, err, str)
	}
}
