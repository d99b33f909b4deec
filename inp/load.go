// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/io"
)

// ReadModel reads a whole model record from a JSON file, mirroring the
// teacher's ReadMat (inp/mat.go): read bytes with io.ReadFile, decode
// with encoding/json.
func ReadModel(path string) (Model, error) {
	var m Model
	b, err := io.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, err
	}
	return m, nil
}

// FindCombination looks up a load combination by label.
func (m Model) FindCombination(label string) (LoadCombination, bool) {
	for _, c := range m.Combinations {
		if c.Label == label {
			return c, true
		}
	}
	return LoadCombination{}, false
}
