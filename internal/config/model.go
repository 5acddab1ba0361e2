// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import "github.com/specialistvlad/optschema/internal/model"

// Model is the unified representation of all loaded configuration.
type Model struct {
	Instances []*model.Instance
}

// Lookup finds an instance by its "<kind>.<name>" address.
func (m *Model) Lookup(id string) (*model.Instance, bool) {
	for _, inst := range m.Instances {
		if inst.ID() == id {
			return inst, true
		}
	}
	return nil, false
}
