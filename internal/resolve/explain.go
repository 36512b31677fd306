// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"fmt"

	"termroute/internal/classify"
	"termroute/internal/environment"
)

// specificClasses are command classes that only run correctly in a POSIX or
// Linux environment.
var specificClasses = map[classify.CommandClass]bool{
	"wsl":     true,
	"bash":    true,
	"sh":      true,
	"zsh":     true,
	"apt":     true,
	"apt-get": true,
	"yum":     true,
	"dnf":     true,
	"pacman":  true,
}

// Explain returns a one-line English justification for running command in
// chosen. It is advisory only and does not affect resolution.
func Explain(command string, chosen environment.Environment) string {
	return explainClass(classify.Classify(command), chosen)
}

func explainClass(class classify.CommandClass, chosen environment.Environment) string {
	name := chosen.Identity
	switch class {
	case "npm", "node", "yarn":
		return fmt.Sprintf("Node.js commands: %s recommended", name)
	case "git":
		return fmt.Sprintf("%s is the best fit for Git commands", name)
	case "python", "pip":
		return fmt.Sprintf("%s is preferred for Python commands", name)
	case "docker", "kubectl":
		return fmt.Sprintf("%s recommended for container and orchestration commands", name)
	case "wsl":
		return fmt.Sprintf("Linux commands require %s", name)
	default:
		return fmt.Sprintf("%s is a suitable choice for this command", name)
	}
}

// RequiresSpecificEnvironment reports whether command only runs correctly in a
// POSIX or Linux environment. It does not influence Resolve.
func RequiresSpecificEnvironment(command string) bool {
	return specificClasses[classify.Classify(command)]
}
