// SPDX-License-Identifier: MPL-2.0

package platform

import "strings"

// windowsReservedNames are device names Windows reserves whatever the
// extension.
var windowsReservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// IsWindowsReservedName reports whether name, or name up to its first dot,
// is a reserved device name. "con.module" is reserved just like "con".
func IsWindowsReservedName(name string) bool {
	stem, _, _ := strings.Cut(name, ".")
	_, ok := windowsReservedNames[strings.ToUpper(strings.TrimRight(stem, " "))]
	return ok
}
