// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	NoUsableEnvironmentId
	EnvironmentNotFoundId
	RequiresSpecificEnvironmentId
	LaunchFailedId
	StatisticsDisabledId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation for this issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the issue text with its links appended.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range append(slices.Clone(i.docLinks), i.extLinks...) {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

// Render renders the issue with the given glamour style ("dark", "light",
// "notty" or a path to a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

termroute could not read or validate its configuration file.

## Things you can try:
- Check the error message above for the file, field and line
- Print the active config file location:
~~~
$ termroute config path
~~~

- Compare against a known-good configuration:
~~~
$ termroute config dump
~~~

- Start over with the defaults:
~~~
$ termroute config reset
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	noUsableEnvironmentIssue = &Issue{
		id: NoUsableEnvironmentId,
		mdMsg: `
# No usable environment found!

None of the known shells could be found on this machine, so there is nowhere to run the command.

## Things you can try:
- See what was probed and why it failed:
~~~
$ termroute detect --verbose
~~~

- Install one of PowerShell, Git Bash or WSL
- Register a shell that is already installed:
~~~
$ termroute config add-custom --name Nu --path /usr/local/bin/nu
~~~

- Raise the probe timeout on slow machines:
~~~cue
probe: timeout: "5s"
~~~`,
	}

	environmentNotFoundIssue = &Issue{
		id: EnvironmentNotFoundId,
		mdMsg: `
# Environment not found!

The environment you named is not among the usable environments on this machine.

## Things you can try:
- List the usable environments and their exact names:
~~~
$ termroute detect
~~~

- Check for typos; names are matched ignoring case
- Let termroute choose by leaving out the --env flag`,
	}

	requiresSpecificEnvironmentIssue = &Issue{
		id: RequiresSpecificEnvironmentId,
		mdMsg: `
# This command needs a POSIX or Linux shell!

Commands such as bash, sh, apt, yum and wsl only run correctly inside a POSIX shell
or the Linux subsystem, but the chosen environment is neither.

## Things you can try:
- Install Git Bash or WSL and run the command again
- Route the command explicitly:
~~~
$ termroute config set-rule apt WSL
~~~`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Failed to launch the environment!

The chosen shell was found during discovery but could not be started.

## Things you can try:
- Run with verbose mode for more details:
~~~
$ termroute --verbose run <command>
~~~

- Check the path and arguments of custom environments:
~~~
$ termroute config show
~~~

- Preview the exact command line without running it:
~~~
$ termroute run --dry-run <command>
~~~`,
	}

	statisticsDisabledIssue = &Issue{
		id: StatisticsDisabledId,
		mdMsg: `
# Statistics are disabled!

Usage statistics are only collected when enabled in the configuration.
Only the command class (for example "git") and the environment name are stored.

## Things you can try:
- Enable collection in your config file:
~~~cue
enable_statistics: true
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():            configLoadFailedIssue,
		noUsableEnvironmentIssue.Id():         noUsableEnvironmentIssue,
		environmentNotFoundIssue.Id():         environmentNotFoundIssue,
		requiresSpecificEnvironmentIssue.Id(): requiresSpecificEnvironmentIssue,
		launchFailedIssue.Id():                launchFailedIssue,
		statisticsDisabledIssue.Id():          statisticsDisabledIssue,
	}
)

// Values returns every registered issue ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
