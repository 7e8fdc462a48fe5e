// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/dockwright/dockwright/internal/container"
	"github.com/dockwright/dockwright/internal/extension"
	"github.com/dockwright/dockwright/internal/hostenv"
)

const expectedDevHelpersSnippet = `# workspace development helpers
RUN apt-get update \
 && apt-get install -y \
    byobu \
    emacs \
 && apt-get clean
`

func testHost() *hostenv.Static {
	return &hostenv.Static{
		ID: hostenv.Identity{
			UID:   1000,
			GID:   1000,
			Name:  "dev",
			Dir:   "/home/dev",
			Gecos: "Dev Eloper,,,",
			Shell: "/bin/bash",
		},
		Groups: map[string]int{"audio": 29},
		Env:    map[string]string{},
		Paths:  map[string]bool{},
	}
}

func testExtension(t *testing.T, host hostenv.Provider, name string) extension.Extension {
	t.Helper()
	reg, err := NewRegistry(Options{Host: host})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	ext, err := reg.Get(name)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", name, err)
	}
	return ext
}

// mustOutputs returns preamble, snippet and docker args, failing on error.
func mustOutputs(t *testing.T, ext extension.Extension, args extension.Args) (preamble, snippet, dockerArgs string) {
	t.Helper()
	var err error
	if preamble, err = ext.Preamble(args); err != nil {
		t.Fatalf("%s Preamble() error: %v", ext.Name(), err)
	}
	if snippet, err = ext.Snippet(args); err != nil {
		t.Fatalf("%s Snippet() error: %v", ext.Name(), err)
	}
	if dockerArgs, err = ext.DockerArgs(args); err != nil {
		t.Fatalf("%s DockerArgs() error: %v", ext.Name(), err)
	}
	return preamble, snippet, dockerArgs
}

func TestCatalog_Order(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(Options{Host: testHost()})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	expected := []string{
		"devices", "network", "env", "volume", "name", "privileged",
		"home", "git", "ssh", "x11", "pulse", "dev_helpers", "user",
	}
	if got := reg.Names(); !slices.Equal(got, expected) {
		t.Errorf("Names() = %v, want %v", got, expected)
	}
}

func TestCatalog_FlagsMatchNames(t *testing.T) {
	t.Parallel()

	for _, ext := range Catalog(Options{Host: testHost()}) {
		t.Run(ext.Name(), func(t *testing.T) {
			t.Parallel()

			// Two independent flag sets must not collide.
			for range 2 {
				fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
				ext.RegisterFlags(fs)
				if fs.Lookup(extension.FlagName(ext.Name())) == nil {
					t.Errorf("flag %s not registered", extension.NameToArgument(ext.Name()))
				}
			}
			if d, ok := ext.(extension.Describer); !ok || !strings.HasPrefix(d.Description(), "# "+ext.Name()) {
				t.Errorf("%s has no Markdown description", ext.Name())
			}
		})
	}
}

func TestDevices(t *testing.T) {
	t.Parallel()

	host := testHost()
	host.Paths["/dev/random"] = true
	ext := testExtension(t, host, "devices")

	preamble, snippet, args := mustOutputs(t, ext, extension.Args{"devices": []string{"/dev/random", "/dev/missing"}})
	if preamble != "" || snippet != "" {
		t.Errorf("devices preamble/snippet = %q/%q, want empty", preamble, snippet)
	}
	if args != " --device /dev/random --device /dev/missing" {
		t.Errorf("DockerArgs() = %q", args)
	}

	_, _, args = mustOutputs(t, ext, extension.Args{})
	if args != "" {
		t.Errorf("DockerArgs() without devices = %q, want empty", args)
	}
}

func TestHome(t *testing.T) {
	t.Parallel()

	host := testHost()
	host.Home = "/home/dev"
	ext := testExtension(t, host, "home")

	preamble, snippet, args := mustOutputs(t, ext, extension.Args{})
	if preamble != "" || snippet != "" {
		t.Errorf("home preamble/snippet = %q/%q, want empty", preamble, snippet)
	}
	if args != " -v /home/dev:/home/dev" {
		t.Errorf("DockerArgs() = %q", args)
	}

	host.Home = "/home/with space"
	_, _, args = mustOutputs(t, ext, extension.Args{})
	if args != " -v '/home/with space:/home/with space'" {
		t.Errorf("DockerArgs() = %q, want quoted mount", args)
	}
}

func TestHome_HostError(t *testing.T) {
	t.Parallel()

	host := testHost()
	host.Err = errors.New("no passwd")
	ext := testExtension(t, host, "home")

	if _, err := ext.DockerArgs(extension.Args{}); err == nil {
		t.Error("DockerArgs() should propagate host errors")
	}
}

func TestNetwork(t *testing.T) {
	t.Parallel()

	ext := testExtension(t, testHost(), "network")
	tests := []struct {
		mode     string
		expected string
	}{
		{"none", " --network none"},
		{"host", " --network host"},
		{"container:abc123", " --network container:abc123"},
		{"", ""},
	}
	for _, tt := range tests {
		_, snippet, args := mustOutputs(t, ext, extension.Args{"network": tt.mode})
		if snippet != "" {
			t.Errorf("network snippet = %q, want empty", snippet)
		}
		if args != tt.expected {
			t.Errorf("DockerArgs(%q) = %q, want %q", tt.mode, args, tt.expected)
		}
	}
}

func TestEnv(t *testing.T) {
	t.Parallel()

	ext := testExtension(t, testHost(), "env")
	args := extension.Args{"env": [][]string{{"ENVVARNAME=envvar_value", "ENV2=val2"}, {"ENV3=val3"}}}

	preamble, snippet, dockerArgs := mustOutputs(t, ext, args)
	if preamble != "" || snippet != "" {
		t.Errorf("env preamble/snippet = %q/%q, want empty", preamble, snippet)
	}
	expected := " -e ENVVARNAME=envvar_value -e ENV2=val2 -e ENV3=val3"
	if dockerArgs != expected {
		t.Errorf("DockerArgs() = %q, want %q", dockerArgs, expected)
	}
}

func TestEnv_Quoting(t *testing.T) {
	t.Parallel()

	ext := testExtension(t, testHost(), "env")
	args := extension.Args{"env": [][]string{{"GREETING=hello world", "EMPTY=", "FORWARDED"}}}

	_, _, got := mustOutputs(t, ext, args)
	expected := " -e GREETING='hello world' -e EMPTY='' -e FORWARDED"
	if got != expected {
		t.Errorf("DockerArgs() = %q, want %q", got, expected)
	}
}

func TestUser_EnvironmentSubs(t *testing.T) {
	t.Parallel()

	ext := testExtension(t, testHost(), "user")
	ia, ok := ext.(extension.IdentityAware)
	if !ok {
		t.Fatal("user does not implement IdentityAware")
	}
	subs, err := ia.EnvironmentSubs()
	if err != nil {
		t.Fatalf("EnvironmentSubs() error: %v", err)
	}
	expected := map[string]any{
		"uid": 1000, "gid": 1000, "name": "dev",
		"dir": "/home/dev", "gecos": "Dev Eloper,,,", "shell": "/bin/bash",
	}
	for k, v := range expected {
		if subs[k] != v {
			t.Errorf("EnvironmentSubs()[%q] = %v, want %v", k, subs[k], v)
		}
	}
}

func TestUser_Snippet(t *testing.T) {
	t.Parallel()

	ext := testExtension(t, testHost(), "user")
	preamble, snippet, args := mustOutputs(t, ext, extension.Args{})
	if preamble != "" || args != "" {
		t.Errorf("user preamble/args = %q/%q, want empty", preamble, args)
	}

	lines := strings.Split(snippet, "\n")
	passwd := findLine(lines, "chpasswd")
	if !strings.Contains(passwd, "dev") {
		t.Errorf("chpasswd line %q should contain the user name", passwd)
	}
	uidLine := findLine(lines, "--uid")
	if !strings.Contains(uidLine, "1000") {
		t.Errorf("--uid line %q should contain the uid", uidLine)
	}
	if !strings.Contains(uidLine, `-c 'Dev Eloper,,,'`) {
		t.Errorf("--uid line %q should quote the gecos field", uidLine)
	}
	if !strings.Contains(snippet, "mkhomedir_helper dev") {
		t.Error("snippet should create the home directory when home is inactive")
	}
	if !strings.HasSuffix(snippet, "USER dev\nWORKDIR /home/dev\n") {
		t.Errorf("snippet should end by switching user, got %q", snippet[len(snippet)-40:])
	}

	_, withHome, _ := mustOutputs(t, ext, extension.Args{"home": true})
	if strings.Contains(withHome, "mkhomedir_helper") {
		t.Error("snippet should not create the home directory when home is active")
	}
}

func TestUser_OverrideName(t *testing.T) {
	t.Parallel()

	ext := testExtension(t, testHost(), "user")
	_, snippet, _ := mustOutputs(t, ext, extension.Args{"user_override_name": "builder"})
	if !strings.Contains(snippet, "echo builder:builder | chpasswd") {
		t.Errorf("snippet should use the override name:\n%s", snippet)
	}
	if !strings.Contains(snippet, "WORKDIR /home/builder") {
		t.Errorf("snippet should use the override home:\n%s", snippet)
	}
}

func TestUser_OverrideNameRejected(t *testing.T) {
	t.Parallel()

	ext := testExtension(t, testHost(), "user")
	for _, name := range []string{"build er", "Builder", "1st", "a;rm -rf /", strings.Repeat("a", 33)} {
		_, err := ext.Snippet(extension.Args{"user_override_name": name})
		if !errors.Is(err, extension.ErrInvalidArgument) {
			t.Errorf("Snippet(override %q) error = %v, want ErrInvalidArgument", name, err)
		}
	}
	if _, err := ext.Snippet(extension.Args{"user_override_name": "ci_bot-2"}); err != nil {
		t.Errorf("Snippet(override ci_bot-2) error: %v", err)
	}
}

func TestUser_HostError(t *testing.T) {
	t.Parallel()

	host := testHost()
	host.Err = errors.New("passwd unreadable")
	ext := testExtension(t, host, "user")

	if _, err := ext.Snippet(extension.Args{}); err == nil {
		t.Error("Snippet() should propagate host errors")
	}
}

func TestPulse(t *testing.T) {
	t.Parallel()

	ext := testExtension(t, testHost(), "pulse")
	preamble, snippet, args := mustOutputs(t, ext, extension.Args{})

	if preamble != "" {
		t.Errorf("pulse preamble = %q, want empty", preamble)
	}
	for _, want := range []string{
		"RUN mkdir -p /etc/pulse",
		"default-server = unix:/run/user/1000/pulse/native",
		"autospawn = no",
		"daemon-binary = /bin/true",
		"enable-shm = false",
		"host'\\''s server",
		"> /etc/pulse/client.conf",
	} {
		if !strings.Contains(snippet, want) {
			t.Errorf("snippet missing %q:\n%s", want, snippet)
		}
	}

	expected := " -v /run/user/1000/pulse:/run/user/1000/pulse --device /dev/snd" +
		" -e PULSE_SERVER=unix:/run/user/1000/pulse/native" +
		" -v /run/user/1000/pulse/native:/run/user/1000/pulse/native --group-add 29"
	if args != expected {
		t.Errorf("DockerArgs() = %q, want %q", args, expected)
	}
}

func TestPulse_Fallbacks(t *testing.T) {
	t.Parallel()

	host := testHost()
	host.Groups = nil
	host.Env["XDG_RUNTIME_DIR"] = "/tmp/xdg"
	ext := testExtension(t, host, "pulse")

	_, _, args := mustOutputs(t, ext, extension.Args{})
	for _, want := range []string{
		"-e PULSE_SERVER=unix:/tmp/xdg/pulse/native",
		"-v /tmp/xdg/pulse/native:/tmp/xdg/pulse/native",
		"--group-add audio",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("DockerArgs() = %q, missing %q", args, want)
		}
	}
}

func TestPulse_QuotesRuntimeDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		xdg    string
		socket string
	}{
		{name: "space", xdg: "/run/my dir", socket: "/run/my dir/pulse/native"},
		{name: "dollar", xdg: "/run/$USER", socket: "/run/$USER/pulse/native"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			host := testHost()
			host.Env["XDG_RUNTIME_DIR"] = tt.xdg
			ext := testExtension(t, host, "pulse")
			_, _, args := mustOutputs(t, ext, extension.Args{})

			argv, err := container.RunCommand{Engine: container.EngineTypeDocker, Image: "img", DockerArgs: args}.Argv()
			if err != nil {
				t.Fatalf("Argv() error: %v", err)
			}
			for _, want := range []string{
				"PULSE_SERVER=unix:" + tt.socket,
				tt.socket + ":" + tt.socket,
				"/run/user/1000/pulse:/run/user/1000/pulse",
			} {
				if !slices.Contains(argv, want) {
					t.Errorf("Argv() = %q, missing word %q", argv, want)
				}
			}
		})
	}
}

func TestPulse_NotIdentityAware(t *testing.T) {
	t.Parallel()

	if _, ok := testExtension(t, testHost(), "pulse").(extension.IdentityAware); ok {
		t.Error("pulse reads the host identity itself and should not expose EnvironmentSubs")
	}
}

func TestDevHelpers(t *testing.T) {
	t.Parallel()

	ext := testExtension(t, testHost(), "dev_helpers")
	preamble, snippet, args := mustOutputs(t, ext, extension.Args{})
	if snippet != expectedDevHelpersSnippet {
		t.Errorf("Snippet() = %q, want %q", snippet, expectedDevHelpersSnippet)
	}
	if preamble != "" || args != "" {
		t.Errorf("dev_helpers preamble/args = %q/%q, want empty", preamble, args)
	}
}

func TestDevHelpers_CustomPackages(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(Options{Host: testHost(), DevHelperPackages: []string{"tmux"}})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	ext, _ := reg.Get("dev_helpers")
	snippet, _ := ext.Snippet(extension.Args{})
	if !strings.Contains(snippet, "    tmux \\\n") || strings.Contains(snippet, "emacs") {
		t.Errorf("Snippet() = %q, want only tmux", snippet)
	}
}

func TestPassthroughExtensions(t *testing.T) {
	t.Parallel()

	host := testHost()
	host.Home = "/home/dev"
	host.Paths["/home/dev/.gitconfig"] = true
	host.Env["SSH_AUTH_SOCK"] = "/tmp/ssh-agent.sock"
	host.Env["XAUTHORITY"] = "/home/dev/.Xauthority"

	tests := []struct {
		name     string
		args     extension.Args
		expected string
	}{
		{"name", extension.Args{"name": "devbox"}, " --name devbox"},
		{"name", extension.Args{}, ""},
		{"privileged", extension.Args{"privileged": true}, " --privileged"},
		{"volume", extension.Args{"volume": []string{"/srv", "/a:/b", "/c::ro", "/d:/e:ro", ":/nowhere"}},
			" -v /srv:/srv -v /a:/b -v /c:/c:ro -v /d:/e:ro"},
		{"git", extension.Args{"git": true}, " -v /home/dev/.gitconfig:/etc/gitconfig:ro"},
		{"ssh", extension.Args{"ssh": true}, " -e SSH_AUTH_SOCK -v /tmp/ssh-agent.sock:/tmp/ssh-agent.sock"},
		{"x11", extension.Args{"x11": true},
			" -e DISPLAY -e TERM -e QT_X11_NO_MITSHM=1 -v /tmp/.X11-unix:/tmp/.X11-unix:rw" +
				" -e XAUTHORITY=/home/dev/.Xauthority -v /home/dev/.Xauthority:/home/dev/.Xauthority"},
	}
	for _, tt := range tests {
		ext := testExtension(t, host, tt.name)
		preamble, snippet, args := mustOutputs(t, ext, tt.args)
		if preamble != "" || snippet != "" {
			t.Errorf("%s preamble/snippet = %q/%q, want empty", tt.name, preamble, snippet)
		}
		if args != tt.expected {
			t.Errorf("%s DockerArgs() = %q, want %q", tt.name, args, tt.expected)
		}
	}
}

func TestHostDependentExtensions_Absent(t *testing.T) {
	t.Parallel()

	host := testHost()
	for _, name := range []string{"git", "ssh"} {
		ext := testExtension(t, host, name)
		if _, _, args := mustOutputs(t, ext, extension.Args{name: true}); args != "" {
			t.Errorf("%s DockerArgs() = %q, want empty without host support", name, args)
		}
	}
	ext := testExtension(t, host, "x11")
	_, _, args := mustOutputs(t, ext, extension.Args{"x11": true})
	if strings.Contains(args, "XAUTHORITY") {
		t.Errorf("x11 DockerArgs() = %q, should not mention XAUTHORITY when unset", args)
	}
}

func TestCompose_Builtins(t *testing.T) {
	t.Parallel()

	host := testHost()
	host.Home = "/home/dev"
	reg, err := NewRegistry(Options{Host: host})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	reg.RegisterFlags(fs)
	if err := fs.Parse([]string{"--user", "--home", "--env", "A=1 B=2", "--network", "host"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	args, err := extension.ArgsFromFlags(fs)
	if err != nil {
		t.Fatalf("ArgsFromFlags() error: %v", err)
	}

	comp, err := extension.Compose(reg.Active(args), args)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if got := comp.Names(); !slices.Equal(got, []string{"network", "env", "home", "user"}) {
		t.Errorf("Names() = %v", got)
	}
	expected := " --network host -e A=1 -e B=2 -v /home/dev:/home/dev"
	if got := comp.DockerArgs(); got != expected {
		t.Errorf("DockerArgs() = %q, want %q", got, expected)
	}
	if strings.Contains(comp.Snippet(), "mkhomedir_helper") {
		t.Error("user snippet should honor the active home extension")
	}
}

func findLine(lines []string, substr string) string {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return l
		}
	}
	return ""
}
