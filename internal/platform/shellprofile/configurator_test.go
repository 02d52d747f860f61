// internal/platform/shellprofile/configurator_test.go
package shellprofile

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/testutil"
)

const profile = "/home/dev/.zshrc"

func newTestConfigurator(fs afero.Fs) *Configurator {
	return NewConfigurator(fs, func() string { return profile }, nil)
}

func readProfile(t *testing.T, fs afero.Fs) string {
	t.Helper()
	data, err := afero.ReadFile(fs, profile)
	if err != nil {
		t.Fatalf("read profile: %v", err)
	}
	return string(data)
}

func TestBlock(t *testing.T) {
	tool := domain.ToolDescriptor{
		Name:                 "go",
		EnvironmentVariables: map[string]string{"GOPATH": "$HOME/go", "GOBIN": "$HOME/go/bin"},
		ShellProfileSnippet:  "export PATH=\"$PATH:$GOBIN\"\n\n",
	}

	want := "# >>> devenv:go >>>\n" +
		"export GOBIN=\"$HOME/go/bin\"\n" +
		"export GOPATH=\"$HOME/go\"\n" +
		"export PATH=\"$PATH:$GOBIN\"\n" +
		"# <<< devenv:go <<<\n"
	testutil.AssertEqual(t, Block(tool), want, "block with sorted exports")
	testutil.AssertEqual(t, Block(testutil.FixtureGit()), "", "nothing to write for git")
}

func TestBlock_EscapesValues(t *testing.T) {
	tool := domain.ToolDescriptor{
		Name: "custom",
		EnvironmentVariables: map[string]string{
			"GREETING":  `say "hi" from ` + "`host`" + ` in C:\tools`,
			"TOOL_HOME": "$HOME/.custom",
		},
	}

	block := Block(tool)
	testutil.AssertContains(t, block, `export GREETING="say \"hi\" from \`+"`"+`host\`+"`"+` in C:\\tools"`, "quotes, backticks and backslashes escaped")
	testutil.AssertContains(t, block, `export TOOL_HOME="$HOME/.custom"`, "dollar left to expand")
}

func TestApply_SharedBlockWrittenOnce(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newTestConfigurator(fs)
	snippet := `[ -f "$HOME/.cargo/env" ] && . "$HOME/.cargo/env"`
	rust := domain.ToolDescriptor{Name: "rust", ShellProfileSnippet: snippet, ProfileBlock: "cargo"}
	rustup := domain.ToolDescriptor{Name: "rustup", ShellProfileSnippet: snippet, ProfileBlock: "cargo"}

	first, err := c.Apply(rust)
	testutil.AssertNoError(t, err, "rust")
	second, err := c.Apply(rustup)
	testutil.AssertNoError(t, err, "rustup")

	content := readProfile(t, fs)
	testutil.AssertTrue(t, first, "first tool writes the block")
	testutil.AssertFalse(t, second, "second tool finds it")
	testutil.AssertEqual(t, testutil.Count(content, snippet), 1, "snippet written once")
	testutil.AssertContains(t, content, StartMarker("cargo"), "shared marker")

	ok, err := c.IsConfigured("cargo")
	testutil.AssertNoError(t, err, "is configured")
	testutil.AssertTrue(t, ok, "shared block configured")
}

func TestApply_MissingFileIsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newTestConfigurator(fs)

	wrote, err := c.Apply(testutil.FixtureGo())
	testutil.AssertNoError(t, err, "apply")
	testutil.AssertTrue(t, wrote, "first apply writes")
	testutil.AssertEqual(t, readProfile(t, fs), Block(testutil.FixtureGo()), "file holds only the block")
}

func TestApply_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newTestConfigurator(fs)
	tool := testutil.FixtureGo()

	first, err := c.Apply(tool)
	testutil.AssertNoError(t, err, "first apply")
	second, err := c.Apply(tool)
	testutil.AssertNoError(t, err, "second apply")

	testutil.AssertTrue(t, first, "first apply writes")
	testutil.AssertFalse(t, second, "second apply is a no-op")
	testutil.AssertEqual(t, testutil.Count(readProfile(t, fs), StartMarker("go")), 1, "exactly one block")
}

func TestApply_PreservesExistingContent(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		sep      string
	}{
		{"trailing newline", "alias ll='ls -l'\n", "\n"},
		{"no trailing newline", "alias ll='ls -l'", "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			_ = afero.WriteFile(fs, profile, []byte(tt.existing), 0o644)
			c := newTestConfigurator(fs)

			wrote, err := c.Apply(testutil.FixtureNode())
			testutil.AssertNoError(t, err, "apply")
			testutil.AssertTrue(t, wrote, "block appended")
			testutil.AssertEqual(t, readProfile(t, fs), tt.existing+tt.sep+Block(testutil.FixtureNode()), "appended after existing content")
		})
	}
}

func TestApply_IndependentBlocksPerTool(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newTestConfigurator(fs)

	for _, tool := range []domain.ToolDescriptor{testutil.FixtureGo(), testutil.FixtureNode(), testutil.FixtureGo()} {
		_, err := c.Apply(tool)
		testutil.AssertNoError(t, err, "apply "+tool.Name)
	}

	content := readProfile(t, fs)
	testutil.AssertEqual(t, testutil.Count(content, StartMarker("go")), 1, "one go block")
	testutil.AssertEqual(t, testutil.Count(content, StartMarker("node")), 1, "one node block")
	testutil.AssertEqual(t, testutil.Count(content, EndMarker("node")), 1, "node block closed")
}

func TestApply_NothingToWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newTestConfigurator(fs)

	wrote, err := c.Apply(testutil.FixtureGit())
	testutil.AssertNoError(t, err, "apply")
	testutil.AssertFalse(t, wrote, "no block for git")

	exists, _ := afero.Exists(fs, profile)
	testutil.AssertFalse(t, exists, "profile not created")
}

func TestApply_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	c := newTestConfigurator(fs)

	wrote, err := c.Apply(testutil.FixtureGo())
	testutil.AssertError(t, err, "write on read-only fs")
	testutil.AssertFalse(t, wrote, "nothing written")
}

func TestIsConfigured(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := newTestConfigurator(fs)

	ok, err := c.IsConfigured("go")
	testutil.AssertNoError(t, err, "missing file")
	testutil.AssertFalse(t, ok, "not configured yet")

	_, _ = c.Apply(testutil.FixtureGo())

	ok, err = c.IsConfigured("go")
	testutil.AssertNoError(t, err, "after apply")
	testutil.AssertTrue(t, ok, "configured")
}

func TestPath_ExpandsHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	c := NewConfigurator(afero.NewMemMapFs(), func() string { return "~/.bashrc" }, nil)
	testutil.AssertEqual(t, c.Path(), "/home/tester/.bashrc", "tilde expanded")
}
