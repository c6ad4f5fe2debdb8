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

// Package common holds the locations recon keeps its files in.
package common

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
)

const Permissions = 0755

var (
	ConfigDirectory = filepath.Join(xdg.ConfigHome, "recon")
	DataDirectory   = filepath.Join(xdg.DataHome, "recon")

	HistoryDirectory = filepath.Join(DataDirectory, "games")
	TourDirectory    = filepath.Join(DataDirectory, "tournaments")

	ConfigFile = filepath.Join(ConfigDirectory, "config.yaml")
)

// EnsureDirectories creates the directories recon writes to, if they do
// not exist yet.
func EnsureDirectories() error {
	for _, dir := range []string{ConfigDirectory, HistoryDirectory, TourDirectory} {
		if err := os.MkdirAll(dir, Permissions); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}

	return nil
}
