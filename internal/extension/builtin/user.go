// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"fmt"
	"regexp"

	"github.com/spf13/pflag"

	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/hostenv"
	"github.com/dockwright/dockwright/internal/render"
)

// homeActiveKey tells the user template whether the home extension is active.
const homeActiveKey = "home_active"

// accountNamePattern is the default NAME_REGEX of useradd.
var accountNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

var userTemplate = render.Must("user", `# make sure sudo is installed to be able to give the user sudo access
RUN if ! command -v sudo >/dev/null; then \
      apt-get update \
      && apt-get install -y sudo \
      && apt-get clean; \
    fi

RUN existing_user_by_uid=$(getent passwd {{ shquote .uid }} | cut -f1 -d: || true) && \
    if [ -n "${existing_user_by_uid}" ]; then userdel -r "${existing_user_by_uid}"; fi && \
    existing_user_by_name=$(getent passwd {{ shquote .name }} | cut -f1 -d: || true) && \
    existing_user_uid=$(getent passwd {{ shquote .name }} | cut -f3 -d: || true) && \
    if [ -n "${existing_user_by_name}" ]; then \
      find / -xdev -uid "${existing_user_uid}" -exec chown -h {{ .uid }} {} + || true; \
      userdel -r "${existing_user_by_name}"; \
    fi && \
    existing_group_by_gid=$(getent group {{ shquote .gid }} | cut -f1 -d: || true) && \
    if [ -z "${existing_group_by_gid}" ]; then groupadd -g {{ shquote .gid }} {{ shquote .name }}; fi && \
    useradd --no-log-init --no-create-home --uid "{{ .uid }}" {{ if .shell }}-s {{ shquote .shell }} {{ end }}-c {{ shquote .gecos }} -g "{{ .gid }}" -d {{ shquote .dir }} {{ shquote .name }} && \
    echo {{ printf "%s:%s" .name .name | shquote }} | chpasswd && \
    adduser {{ shquote .name }} sudo && \
    echo {{ printf "%s ALL=NOPASSWD: ALL" .name | shquote }} >> /etc/sudoers.d/dockwright
{{- if not .home_active }}

# Making sure a home directory exists since the host home is not mounted
RUN mkdir -p "$(dirname {{ shquote .dir }})" && mkhomedir_helper {{ shquote .name }}
{{- end }}

# Commands below run as the host user
USER {{ .name }}
WORKDIR {{ .dir }}
`)

// User recreates the invoking host user inside the image, with the same
// uid, gid, shell and home path, and switches to it.
type User struct {
	extension.Base
	host hostenv.Provider
}

// Name implements extension.Extension.
func (*User) Name() string { return "user" }

// RegisterFlags implements extension.Extension.
func (u *User) RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(extension.FlagName(u.Name()), false, "create the host user in the image and run as it")
	fs.String("user-override-name", "", "create the user under this name instead of the host user name")
}

// EnvironmentSubs returns the host identity as template values.
func (u *User) EnvironmentSubs() (map[string]any, error) {
	id, err := u.host.Identity()
	if err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}
	return id.Subs(), nil
}

// Snippet renders the user creation instructions. The home directory is
// only created in the image when the home extension is not active.
func (u *User) Snippet(args extension.Args) (string, error) {
	subs, err := u.EnvironmentSubs()
	if err != nil {
		return "", err
	}
	if override := args.String("user_override_name"); override != "" {
		if len(override) > 32 || !accountNamePattern.MatchString(override) {
			return "", fmt.Errorf("user: %w: --user-override-name %q is not a valid account name", extension.ErrInvalidArgument, override)
		}
		subs[hostenv.SubName] = override
		subs[hostenv.SubDir] = "/home/" + override
	}
	subs[homeActiveKey] = args.Active("home")
	return userTemplate.Execute(subs)
}

// Description implements extension.Describer.
func (*User) Description() string {
	return `# user

Create your host user inside the image with the same uid, gid, login shell
and home path, grant it passwordless sudo and make it the default user.

Any existing account with the same uid or name is removed first. Use
` + "`--user-override-name NAME`" + ` to pick a different account name; its home
becomes ` + "`/home/NAME`" + `.
`
}
