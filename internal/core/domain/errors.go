// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Catalog errors
	ErrToolNotFound      = errors.New("tool not found in catalog")
	ErrDuplicateTool     = errors.New("duplicate tool in catalog")
	ErrInvalidTool       = errors.New("invalid tool descriptor")
	ErrInvalidCategory   = errors.New("invalid tool category")
	ErrPrerequisiteCycle = errors.New("prerequisite cycle detected")

	// Package manager errors
	ErrNoPackageManager    = errors.New("no supported package manager detected")
	ErrNoInstallMethod     = errors.New("no install method for package manager")
	ErrUnsupportedPlatform = errors.New("platform has no package manager strategy")

	// Command errors
	ErrCommandFailed      = errors.New("command failed")
	ErrVerificationFailed = errors.New("tool not detectable after install")
)
