package browser

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLink(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		want    string
		wantErr bool
	}{
		{name: "https link", link: "https://news.ycombinator.com/item?id=1", want: "https://news.ycombinator.com/item?id=1"},
		{name: "trims whitespace", link: "  http://example.com/a  ", want: "http://example.com/a"},
		{name: "empty", link: "   ", wantErr: true},
		{name: "ftp scheme", link: "ftp://example.com/file", wantErr: true},
		{name: "javascript scheme", link: "javascript:alert(1)", wantErr: true},
		{name: "no host", link: "https:///path", wantErr: true},
		{name: "relative", link: "/item?id=1", wantErr: true},
		{name: "quote", link: `https://example.com/"x`, wantErr: true},
		{name: "backtick", link: "https://example.com/`id`", wantErr: true},
		{name: "dash host", link: "https://-oProxyCommand/", wantErr: true},
		{name: "too long", link: "https://example.com/" + strings.Repeat("a", MaxLinkLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateLink(tt.link)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmbeddedOpeners(t *testing.T) {
	cfg, err := parseOpeners(openersTOML)
	require.NoError(t, err)

	for _, name := range cfg.Order {
		_, ok := cfg.Openers[name]
		assert.True(t, ok, "order names unknown opener %q", name)
	}
	assert.Equal(t, []string{"url.dll,FileProtocolHandler"}, cfg.Openers["rundll32"].Args)
}

func onlyPaths(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestPickPerPlatform(t *testing.T) {
	cfg, err := parseOpeners(openersTOML)
	require.NoError(t, err)

	tests := []struct {
		goos      string
		available []string
		want      string
	}{
		{goos: "linux", available: []string{"xdg-open", "wslview"}, want: "xdg-open"},
		{goos: "linux", available: []string{"wslview"}, want: "wslview"},
		{goos: "linux", available: []string{"open"}, want: ""},
		{goos: "darwin", available: []string{"open", "xdg-open"}, want: "open"},
		{goos: "windows", available: []string{"rundll32"}, want: "rundll32"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+strings.Join(tt.available, ","), func(t *testing.T) {
			o := &Opener{lookPath: onlyPaths(tt.available...)}
			got, _ := o.pick(cfg, tt.goos)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserOpenersTakePrecedence(t *testing.T) {
	base, err := parseOpeners(openersTOML)
	require.NoError(t, err)

	user, err := parseOpeners([]byte(`
order = ["firefox"]

[openers.firefox]
platforms = ["linux"]
args = ["--new-tab"]
`))
	require.NoError(t, err)

	o := &Opener{lookPath: onlyPaths("xdg-open", "firefox")}
	name, args := o.pick(merge(base, user), "linux")
	assert.Equal(t, "firefox", name)
	assert.Equal(t, []string{"--new-tab"}, args)
}

func TestNewOpenerIgnoresBrokenUserFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openers.toml"), []byte("order = ["), 0o600))

	o, err := NewOpener(dir)
	require.NoError(t, err)
	assert.NotNil(t, o)
}

func TestOpen(t *testing.T) {
	var started *exec.Cmd
	o := &Opener{
		command: "rundll32",
		args:    []string{"url.dll,FileProtocolHandler"},
		start: func(cmd *exec.Cmd) error {
			started = cmd
			return nil
		},
	}

	require.NoError(t, o.Open(" https://example.com/x "))
	require.NotNil(t, started)
	assert.Equal(t, []string{"rundll32", "url.dll,FileProtocolHandler", "https://example.com/x"}, started.Args)

	started = nil
	assert.Error(t, o.Open("file:///etc/passwd"))
	assert.Nil(t, started, "invalid links never reach the opener")
}

func TestOpenWithoutOpener(t *testing.T) {
	o := &Opener{}
	assert.ErrorIs(t, o.Open("https://example.com"), ErrNoOpener)
}

func TestOpenStartFailure(t *testing.T) {
	o := &Opener{
		command: "xdg-open",
		start:   func(*exec.Cmd) error { return errors.New("boom") },
	}
	err := o.Open("https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xdg-open")
}

func TestCopyLink(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var copied string
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}

	err := CopyLink("https://news.ycombinator.com/user?id=pg")
	if err != nil {
		// headless CI without xclip/xsel
		t.Skipf("clipboard unavailable: %v", err)
	}
	assert.Equal(t, "https://news.ycombinator.com/user?id=pg", copied)

	copied = ""
	assert.Error(t, CopyLink("not a link"))
	assert.Empty(t, copied)
}
