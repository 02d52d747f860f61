// internal/platform/validator/validator_test.go
package validator

import (
	"strings"
	"testing"

	"github.com/cmwen/mcp-dev-env-setup/internal/testutil"
)

func TestIsToolName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"simple", "git", true},
		{"with hyphen", "docker-compose", true},
		{"with digits", "python3", true},
		{"empty string", "", false},
		{"uppercase", "Git", false},
		{"starts with hyphen", "-git", false},
		{"space", "git lfs", false},
		{"shell injection", "git;rm", false},
		{"too long", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsToolName(tt.input), tt.expected, "tool name validation")
		})
	}
}

func TestNormalizeToolName(t *testing.T) {
	testutil.AssertEqual(t, NormalizeToolName("  Node "), "node", "trim and lowercase")
}

func TestIsCommandName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"binary", "python3", true},
		{"absolute path", "/opt/homebrew/bin/brew", true},
		{"home relative", "./bin/tool", true},
		{"scoped", "g++", true},
		{"empty", "", false},
		{"space", "git status", false},
		{"subshell", "$(whoami)", false},
		{"pipe", "ls|sh", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsCommandName(tt.input), tt.expected, "command name validation")
		})
	}
}

func TestIsVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"major", "20", true},
		{"semver", "3.12.1", true},
		{"prerelease", "1.22rc1", true},
		{"alias", "lts", true},
		{"build metadata", "1.0.0+build-5", true},
		{"empty", "", false},
		{"space", "20 21", false},
		{"injection", "20; rm -rf ~", false},
		{"subshell", "$(id)", false},
		{"leading dot", ".1", false},
		{"too long", strings.Repeat("1", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsVersion(tt.input), tt.expected, "version validation")
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"v20.1", "20.1"},
		{" 3.12 ", "3.12"},
		{"V1", "1"},
		{"v", "v"},
		{"vlatest", "vlatest"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, NormalizeVersion(tt.input), tt.expected, "normalized version")
		})
	}
}

func TestIsSearchTerm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"word", "ripgrep", true},
		{"phrase", "json parser", true},
		{"blank", "   ", false},
		{"semicolon", "x; rm -rf /", false},
		{"backtick", "`id`", false},
		{"quote", "it's", false},
		{"glob", "py*", false},
		{"too long", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsSearchTerm(tt.input), tt.expected, "search term validation")
		})
	}
}
