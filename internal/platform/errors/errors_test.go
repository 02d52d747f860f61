package errors

import (
	"fmt"
	"testing"

	"github.com/cmwen/mcp-dev-env-setup/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		baseErr := New("base error")
		wrapped := Wrap(baseErr, "additional context")

		testutil.AssertNotNil(t, wrapped, "wrapped error should not be nil")
		testutil.AssertTrue(t, Is(wrapped, baseErr), "should be able to unwrap to base error")
		testutil.AssertTrue(t, wrapped.Error() == "additional context: base error", "error message should include context")
	})

	t.Run("returns nil when wrapping nil", func(t *testing.T) {
		wrapped := Wrap(nil, "context")
		testutil.AssertTrue(t, wrapped == nil, "wrapping nil should return nil")
	})

	t.Run("multiple wraps preserve chain", func(t *testing.T) {
		baseErr := New("base")
		wrapped1 := Wrap(baseErr, "layer 1")
		wrapped2 := Wrap(wrapped1, "layer 2")

		testutil.AssertTrue(t, Is(wrapped2, baseErr), "should unwrap to base error")
		testutil.AssertTrue(t, wrapped2.Error() == "layer 2: layer 1: base", "should show full chain")
	})
}

func TestWrapf(t *testing.T) {
	t.Run("wraps error with formatted context", func(t *testing.T) {
		baseErr := New("base error")
		wrapped := Wrapf(baseErr, "failed for id=%d", 42)

		testutil.AssertNotNil(t, wrapped, "wrapped error should not be nil")
		testutil.AssertTrue(t, Is(wrapped, baseErr), "should be able to unwrap to base error")
		testutil.AssertTrue(t, wrapped.Error() == "failed for id=42: base error", "error message should include formatted context")
	})

	t.Run("returns nil when wrapping nil", func(t *testing.T) {
		wrapped := Wrapf(nil, "context %s", "test")
		testutil.AssertTrue(t, wrapped == nil, "wrapping nil should return nil")
	})
}

func TestIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "matches sentinel error",
			err:    ErrTimeout,
			target: ErrTimeout,
			want:   true,
		},
		{
			name:   "matches wrapped sentinel error",
			err:    Wrap(ErrTimeout, "context"),
			target: ErrTimeout,
			want:   true,
		},
		{
			name:   "does not match different error",
			err:    ErrTimeout,
			target: ErrNotFound,
			want:   false,
		},
		{
			name:   "nil does not match",
			err:    nil,
			target: ErrTimeout,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Is(tt.err, tt.target)
			testutil.AssertEqual(t, got, tt.want, "Is() result should match expected")
		})
	}
}

func TestAs_CommandError(t *testing.T) {
	t.Run("finds the command behind a wrap", func(t *testing.T) {
		err := Wrap(NewCommandError("apt-cache search rg", "exit status 100", "E: cache broken\n", false), "search")

		var target *CommandError
		testutil.AssertTrue(t, As(err, &target), "should find CommandError")
		testutil.AssertEqual(t, target.Command, "apt-cache search rg", "command kept")
		testutil.AssertEqual(t, target.Stderr, "E: cache broken", "stderr trimmed")
	})

	t.Run("returns false for other errors", func(t *testing.T) {
		var target *CommandError
		testutil.AssertFalse(t, As(Wrap(ErrNotFound, "tool"), &target), "no CommandError in chain")
	})
}

func TestCommandError(t *testing.T) {
	tests := []struct {
		name        string
		err         *CommandError
		wantMsg     string
		wantTimeout bool
	}{
		{"with reason", NewCommandError("brew install git", "exit status 1", "", false), "brew install git: exit status 1", false},
		{"without reason", NewCommandError("brew install git", "", "", false), "brew install git: command failed", false},
		{"timed out", NewCommandError("brew install git", "timed out after 10m0s", "", true), "brew install git: timed out after 10m0s", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.err.Error(), tt.wantMsg, "message")
			testutil.AssertTrue(t, IsCommandFailed(tt.err), "always a command failure")
			testutil.AssertEqual(t, IsTimeout(tt.err), tt.wantTimeout, "timeout class")
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"timeout beats command failure", NewCommandError("sleep 99", "timed out", "", true), "timeout"},
		{"command failure", Wrap(NewCommandError("false", "exit status 1", "", false), "run"), "command_failed"},
		{"invalid input", Wrapf(ErrInvalidInput, "term %q", "x;y"), "invalid_input"},
		{"invalid config", Wrap(ErrInvalidConfig, "config.yaml"), "invalid_config"},
		{"not found", ErrNotFound, "not_found"},
		{"unsupported", Wrap(ErrUnsupported, "no package manager"), "unsupported"},
		{"anything else", New("boom"), "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, Kind(tt.err), tt.want, "kind")
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrTimeout", ErrTimeout, "operation timed out"},
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrUnsupported", ErrUnsupported, "environment unsupported"},
		{"ErrCommandFailed", ErrCommandFailed, "command failed"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
		{"ErrInvalidConfig", ErrInvalidConfig, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.err.Error(), tt.want, "error message should match")
		})
	}
}

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct timeout error", ErrTimeout, true},
		{"wrapped timeout error", Wrap(ErrTimeout, "context"), true},
		{"different error", ErrNotFound, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsTimeout(tt.err)
			testutil.AssertEqual(t, got, tt.want, "IsTimeout result should match")
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct not found error", ErrNotFound, true},
		{"wrapped not found error", Wrap(ErrNotFound, "context"), true},
		{"different error", ErrTimeout, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsNotFound(tt.err)
			testutil.AssertEqual(t, got, tt.want, "IsNotFound result should match")
		})
	}
}

func TestIsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct invalid input error", ErrInvalidInput, true},
		{"wrapped invalid input error", Wrap(ErrInvalidInput, "context"), true},
		{"different error", ErrTimeout, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsInvalidInput(tt.err)
			testutil.AssertEqual(t, got, tt.want, "IsInvalidInput result should match")
		})
	}
}

func TestIsCommandFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct command failure", ErrCommandFailed, true},
		{"wrapped command failure", Wrapf(ErrCommandFailed, "brew install %s", "git"), true},
		{"different error", ErrTimeout, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsCommandFailed(tt.err)
			testutil.AssertEqual(t, got, tt.want, "IsCommandFailed result should match")
		})
	}
}

func TestIsUnsupportedAndInvalidConfig(t *testing.T) {
	testutil.AssertTrue(t, IsUnsupported(Wrap(ErrUnsupported, "no package manager")), "wrapped unsupported should match")
	testutil.AssertFalse(t, IsUnsupported(ErrInvalidConfig), "invalid config is not unsupported")
	testutil.AssertTrue(t, IsInvalidConfig(Wrap(ErrInvalidConfig, "parse config.yaml")), "wrapped invalid config should match")
	testutil.AssertFalse(t, IsInvalidConfig(nil), "nil is not invalid config")
}

func TestJoin(t *testing.T) {
	t.Run("joins multiple errors", func(t *testing.T) {
		err1 := New("error 1")
		err2 := New("error 2")
		err3 := New("error 3")

		joined := Join(err1, err2, err3)
		testutil.AssertNotNil(t, joined, "joined error should not be nil")

		// All errors should be findable in the joined error
		testutil.AssertTrue(t, Is(joined, err1), "should find first error")
		testutil.AssertTrue(t, Is(joined, err2), "should find second error")
		testutil.AssertTrue(t, Is(joined, err3), "should find third error")
	})

	t.Run("discards nil errors", func(t *testing.T) {
		err1 := New("error 1")
		err2 := New("error 2")

		joined := Join(err1, nil, err2, nil)
		testutil.AssertNotNil(t, joined, "joined error should not be nil")
		testutil.AssertTrue(t, Is(joined, err1), "should find first error")
		testutil.AssertTrue(t, Is(joined, err2), "should find second error")
	})

	t.Run("returns nil when all errors are nil", func(t *testing.T) {
		joined := Join(nil, nil, nil)
		testutil.AssertTrue(t, joined == nil, "should return nil when all errors are nil")
	})
}

func TestErrorf(t *testing.T) {
	err := Errorf("test error: %d", 42)
	testutil.AssertNotNil(t, err, "error should not be nil")
	testutil.AssertEqual(t, err.Error(), "test error: 42", "error message should be formatted")
}

func ExampleWrap() {
	baseErr := New("exit status 100")
	wrapped := Wrap(baseErr, "apt-get install git")
	fmt.Println(wrapped.Error())
	// Output: apt-get install git: exit status 100
}

func ExampleWrapf() {
	baseErr := New("invalid format")
	wrapped := Wrapf(baseErr, "failed to parse catalog %s", "catalog.yaml")
	fmt.Println(wrapped.Error())
	// Output: failed to parse catalog catalog.yaml: invalid format
}

func ExampleKind() {
	err := Wrapf(ErrUnsupported, "search %s", "ripgrep")
	fmt.Println(Kind(err))
	// Output: unsupported
}
