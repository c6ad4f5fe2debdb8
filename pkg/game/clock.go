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

package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeControl gives each player 15 minutes with no increment.
const DefaultTimeControl = "900+0"

type TimeControl struct {
	Base, Inc time.Duration
}

// time+increment, both time and increment in seconds
func ParseTimeControl(tc_str string) (TimeControl, error) {
	time_str, inc_str, found := strings.Cut(tc_str, "+")
	if !found {
		return TimeControl{}, errors.New("parse tc: increment not found")
	}

	incs, err := strconv.ParseFloat(inc_str, 64)
	if err != nil {
		return TimeControl{}, fmt.Errorf("parse tc: %w", err)
	}

	secs, err := strconv.ParseFloat(time_str, 64)
	if err != nil {
		return TimeControl{}, fmt.Errorf("parse tc: %w", err)
	}

	if secs <= 0 || incs < 0 {
		return TimeControl{}, fmt.Errorf("parse tc: invalid time control %q", tc_str)
	}

	return TimeControl{
		Base: time.Millisecond * time.Duration(secs*1000),
		Inc:  time.Millisecond * time.Duration(incs*1000),
	}, nil
}

func (tc TimeControl) String() string {
	return strconv.FormatFloat(tc.Base.Seconds(), 'f', -1, 64) + "+" +
		strconv.FormatFloat(tc.Inc.Seconds(), 'f', -1, 64)
}
