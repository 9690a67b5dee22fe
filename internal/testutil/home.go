// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform's home directory variable and
// XDG_CONFIG_HOME at dir, so config lookups land inside the test's temp
// directory. The returned cleanup restores both.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	homeVar := "HOME"
	if runtime.GOOS == "windows" {
		homeVar = "USERPROFILE"
	}
	restoreHome := MustSetenv(t, homeVar, dir)
	restoreXDG := MustSetenv(t, "XDG_CONFIG_HOME", dir)
	return func() {
		restoreXDG()
		restoreHome()
	}
}
