// internal/core/domain/tool_test.go
package domain_test

import (
	"errors"
	"testing"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/testutil"
)

func TestInstallMethod_Specifier(t *testing.T) {
	versioned := domain.InstallMethod{PackageSpecifier: "python", VersionedSpecifier: "python@{version}"}
	plain := domain.InstallMethod{PackageSpecifier: "git"}

	tests := []struct {
		name    string
		method  domain.InstallMethod
		version string
		want    string
		exact   bool
	}{
		{"no version uses default", versioned, "", "python", true},
		{"version substituted", versioned, "3.12", "python@3.12", true},
		{"blank version ignored", versioned, "  ", "python", true},
		{"no versioned form falls back", plain, "2.40", "git", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, exact := tt.method.Specifier(tt.version)
			testutil.AssertEqual(t, got, tt.want, "specifier")
			testutil.AssertEqual(t, exact, tt.exact, "exact")
		})
	}
}

func TestInstallMethods_For(t *testing.T) {
	methods := testutil.FixturePython().Methods

	m, ok := methods.For(domain.PackageManagerApt)
	testutil.AssertTrue(t, ok, "apt method present")
	testutil.AssertEqual(t, m.PackageSpecifier, "python3", "apt specifier")

	_, ok = methods.For(domain.PackageManagerPacman)
	testutil.AssertFalse(t, ok, "pacman method absent")

	_, ok = methods.For(domain.PackageManagerUnknown)
	testutil.AssertFalse(t, ok, "unknown manager never has a method")

	testutil.AssertDeepEqual(t, methods.Managers(),
		[]domain.PackageManagerID{domain.PackageManagerHomebrew, domain.PackageManagerApt}, "managers in canonical order")
}

func TestBootstrapSpec_RuntimeCommand(t *testing.T) {
	b := *testutil.FixtureNode().Bootstrap

	testutil.AssertEqual(t, b.RuntimeCommand(""), `. "$HOME/.nvm/nvm.sh" && nvm install --lts`, "default version")
	testutil.AssertEqual(t, b.RuntimeCommand("20"), `. "$HOME/.nvm/nvm.sh" && nvm install 20`, "explicit version")

	b.ActivateCommand = ""
	testutil.AssertEqual(t, b.RuntimeCommand("18"), "nvm install 18", "without activation")
}

func TestToolDescriptor_Helpers(t *testing.T) {
	goTool := testutil.FixtureGo()
	testutil.AssertTrue(t, goTool.NeedsShellConfiguration(), "go exports GOPATH")
	testutil.AssertFalse(t, testutil.FixtureGit().NeedsShellConfiguration(), "git needs no profile block")

	testutil.AssertEqual(t, goTool.EffectiveStrategy(), domain.StrategyGeneric, "empty strategy resolves to generic")
	testutil.AssertEqual(t, testutil.FixtureNode().EffectiveStrategy(), domain.StrategyVersionManager, "node strategy")

	testutil.AssertEqual(t, domain.ToolDescriptor{Name: "bun"}.Label(), "bun", "label falls back to name")
}

func TestToolDescriptor_BlockName(t *testing.T) {
	d := testutil.FixtureGo()
	testutil.AssertEqual(t, d.BlockName(), "go", "defaults to the tool name")
	d.ProfileBlock = "toolchain"
	testutil.AssertEqual(t, d.BlockName(), "toolchain", "shared block name")
}

func TestToolDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.ToolDescriptor)
		wantErr error
	}{
		{"valid", func(*domain.ToolDescriptor) {}, nil},
		{"missing name", func(d *domain.ToolDescriptor) { d.Name = " " }, domain.ErrInvalidTool},
		{"missing verify command", func(d *domain.ToolDescriptor) { d.VerifyCommand = "" }, domain.ErrInvalidTool},
		{"bad category", func(d *domain.ToolDescriptor) { d.Category = "editor" }, domain.ErrInvalidCategory},
		{"bad strategy", func(d *domain.ToolDescriptor) { d.Strategy = "script" }, domain.ErrInvalidTool},
		{"version manager without bootstrap", func(d *domain.ToolDescriptor) {
			d.Strategy = domain.StrategyVersionManager
			d.Bootstrap = nil
		}, domain.ErrInvalidTool},
		{"self prerequisite", func(d *domain.ToolDescriptor) { d.Prerequisites = []string{"Git"} }, domain.ErrPrerequisiteCycle},
		{"valid export", func(d *domain.ToolDescriptor) { d.EnvironmentVariables = map[string]string{"GIT_HOME": "$HOME/git"} }, nil},
		{"bad export name", func(d *domain.ToolDescriptor) { d.EnvironmentVariables = map[string]string{"GIT-HOME": "x"} }, domain.ErrInvalidTool},
		{"export name starts with digit", func(d *domain.ToolDescriptor) { d.EnvironmentVariables = map[string]string{"1GIT": "x"} }, domain.ErrInvalidTool},
		{"multi-line export", func(d *domain.ToolDescriptor) { d.EnvironmentVariables = map[string]string{"GIT_HOME": "a\nrm -rf ~"} }, domain.ErrInvalidTool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testutil.FixtureGit()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == nil {
				testutil.AssertNoError(t, err, "validate")
				return
			}
			testutil.AssertTrue(t, errors.Is(err, tt.wantErr), "error should wrap "+tt.wantErr.Error())
		})
	}
}
