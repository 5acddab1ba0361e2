package model

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestInstance_RawOptionsIsACopy(t *testing.T) {
	inst := NewInstance("print", "hello", nil)
	inst.Arguments["prefix"] = cty.StringVal("> ")

	raw := inst.RawOptions()
	require.Len(t, raw, 1)
	assert.Equal(t, cty.StringVal("> "), raw["prefix"])

	raw["extra"] = 1
	assert.NotContains(t, inst.Arguments, "extra")
}

func TestInstance_ID(t *testing.T) {
	assert.Equal(t, "http_client.default", NewInstance("http_client", "default", nil).ID())
}

func TestFSInfo_String(t *testing.T) {
	var nilInfo *FSInfo
	assert.Equal(t, "<unknown>", nilInfo.String())
	assert.Equal(t, "a.hcl", NewFSInfo("a.hcl", hcl.Range{}).String())
	assert.Equal(t, "a.hcl:4", NewFSInfo("a.hcl", hcl.Range{Start: hcl.Pos{Line: 4}}).String())
}
