// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ExtensionNotFoundId
	HostIdentityUnavailableId
	InvalidExtensionArgsId
	InvalidContainerEngineId
	OutputWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
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

// Render renders the issue as styled terminal Markdown. stylePath is a
// glamour style name ("dark", "light", "notty") or a path to a style file.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the dockwright configuration file.

## Configuration file locations (first match wins):
1. The file passed with ` + "`--config`" + `
2. $XDG_CONFIG_HOME/dockwright/config.cue (usually ~/.config/dockwright/config.cue)
3. ./config.cue

## Things you can try:
- Check the CUE syntax and the field names
- Print the effective configuration:
~~~
$ dockwright config show
~~~

## Example configuration:
~~~cue
container_engine: "podman"
base_image: "ubuntu:24.04"

extensions: {
  defaults: ["user", "home"]
  dev_helpers: packages: ["byobu", "emacs", "tmux"]
}

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	}

	extensionNotFoundIssue = &Issue{
		id: ExtensionNotFoundId,
		mdMsg: `
# Extension not found!

The extension you named is not registered.

## Things you can try:
- List the available extensions:
~~~
$ dockwright extensions
~~~

- Check ` + "`extensions.defaults`" + ` in your configuration for typos
- Extension names use underscores (` + "`dev_helpers`" + `), flags use hyphens (` + "`--dev-helpers`" + `)`,
	}

	hostIdentityUnavailableIssue = &Issue{
		id: HostIdentityUnavailableId,
		mdMsg: `
# Could not determine the host user!

Extensions such as **user** and **pulse** need your uid, gid, login name,
home directory, GECOS field and login shell.

## Things you can try:
- Make sure your account has an entry in /etc/passwd
- Make sure $HOME is set
- Run dockwright without the identity-aware extensions`,
	}

	invalidExtensionArgsIssue = &Issue{
		id: InvalidExtensionArgsId,
		mdMsg: `
# Invalid extension arguments!

An extension flag could not be parsed or its value was rejected.

## Things you can try:
- Quote values that contain spaces:
~~~
$ dockwright render --env "GREETING='hello world' LANG=C.UTF-8"
~~~

- Use a lowercase account name with --user-override-name, e.g. ` + "`builder`" + `.

- Check the flag syntax with:
~~~
$ dockwright render --help
~~~`,
	}

	invalidContainerEngineIssue = &Issue{
		id: InvalidContainerEngineId,
		mdMsg: `
# Invalid container engine!

dockwright generates command lines for **docker** and **podman**.

## Things you can try:
- Configure the engine in ~/.config/dockwright/config.cue:
~~~cue
container_engine: "podman"  // or "docker"
~~~

- Or override it for one run:
~~~
$ DOCKWRIGHT_CONTAINER_ENGINE=docker dockwright render
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write the generated files!

## Things you can try:
- Check that the output directory is writable
- Pick another directory with ` + "`--output DIR`" + `
- Omit ` + "`--output`" + ` to print the Dockerfile instead`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		extensionNotFoundIssue.Id():       extensionNotFoundIssue,
		hostIdentityUnavailableIssue.Id(): hostIdentityUnavailableIssue,
		invalidExtensionArgsIssue.Id():    invalidExtensionArgsIssue,
		invalidContainerEngineIssue.Id():  invalidContainerEngineIssue,
		outputWriteFailedIssue.Id():       outputWriteFailedIssue,
	}
)

// Values returns all issues ordered by id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
