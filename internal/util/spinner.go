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

package util

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

const spinnerCharSet = 31

// Spin runs work behind a spinner with the given suffix. The spinner is
// hidden when tracing, since the trace output would garble it.
func Spin(suffix string, work func() error) error {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		return work()
	}

	s := spinner.New(spinner.CharSets[spinnerCharSet], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()

	return work()
}
