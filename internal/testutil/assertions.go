// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package testutil

import (
	"testing"

	"github.com/specialistvlad/optschema/internal/app"
	"github.com/stretchr/testify/require"
)

// FindResult returns the result of the instance addressed "<kind>.<name>".
func FindResult(t *testing.T, result *HarnessResult, id string) app.Result {
	t.Helper()
	for _, r := range result.Results {
		if r.Instance.ID() == id {
			return r
		}
	}
	require.Failf(t, "instance not found", "no result for %s", id)
	return app.Result{}
}

// AssertInstanceOK checks that the instance was constructed (and probed,
// when probing was on) without error.
func AssertInstanceOK(t *testing.T, result *HarnessResult, id string) app.Result {
	t.Helper()
	r := FindResult(t, result, id)
	require.NoError(t, r.Err, "construction of %s failed", id)
	require.NoError(t, r.ProbeErr, "probe of %s failed", id)
	return r
}

// AssertInstanceFailed checks that constructing the instance failed with an
// error matching target whose message contains msg.
func AssertInstanceFailed(t *testing.T, result *HarnessResult, id string, target error, msg string) {
	t.Helper()
	r := FindResult(t, result, id)
	require.Error(t, r.Err, "expected construction of %s to fail", id)
	if target != nil {
		require.ErrorIs(t, r.Err, target)
	}
	require.Contains(t, r.Err.Error(), msg)
}
