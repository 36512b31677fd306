// SPDX-License-Identifier: MPL-2.0

package classify

import (
	"strings"

	"termroute/pkg/platform"
)

// Unknown is the class of an empty or whitespace-only command line.
const Unknown CommandClass = ""

// elevationPrefixes are first tokens that run the real executable with elevated rights.
var elevationPrefixes = map[string]bool{
	"sudo": true,
	"doas": true,
}

// CommandClass is the canonical lowercase token identifying a command's executable.
type CommandClass string

// String returns the class token.
func (c CommandClass) String() string { return string(c) }

// IsUnknown reports whether the class carries no executable token.
func (c CommandClass) IsUnknown() bool { return c == Unknown }

// Classify returns the command class of a command line. It never fails.
func Classify(command string) CommandClass {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(command)))
	if len(fields) == 0 {
		return Unknown
	}

	token := fields[0]
	if elevationPrefixes[token] {
		if len(fields) < 2 {
			return Unknown
		}
		token = fields[1]
	}

	return CommandClass(platform.TrimExecutableSuffix(token))
}
