// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"github.com/zclconf/go-cty/cty"
)

// Instance is one declared object of a registered kind, together with the
// raw option values supplied for it. The values are still cty values; the
// kind's option schema decides how they are coerced and checked.
type Instance struct {
	Kind          string
	Name          string
	Arguments     map[string]cty.Value
	FSInformation *FSInfo
}

// NewInstance creates an instance with an empty argument set.
func NewInstance(kind, name string, info *FSInfo) *Instance {
	return &Instance{
		Kind:          kind,
		Name:          name,
		Arguments:     make(map[string]cty.Value),
		FSInformation: info,
	}
}

// ID is the "<kind>.<name>" address of the instance.
func (i *Instance) ID() string {
	return i.Kind + "." + i.Name
}

// RawOptions returns the arguments as the raw mapping handed to a schema.
// The returned map is a fresh copy on every call.
func (i *Instance) RawOptions() map[string]any {
	raw := make(map[string]any, len(i.Arguments))
	for k, v := range i.Arguments {
		raw[k] = v
	}
	return raw
}
