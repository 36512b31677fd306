// SPDX-License-Identifier: MPL-2.0

// Package classify maps a raw shell command line to a canonical command class.
//
// Only the leading executable token matters: the line is trimmed, lowercased and
// split on whitespace; an elevation prefix (sudo, doas) is skipped and a platform
// executable suffix (.exe, .bat, .cmd, .sh, .ps1) is removed. Unknown tokens are
// valid classes; the empty class means "unknown".
package classify
