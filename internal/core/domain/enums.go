// internal/core/domain/enums.go
package domain

import "strings"

// OSFamily clasifica el sistema operativo anfitrión.
type OSFamily string

const (
	OSFamilyMacOS   OSFamily = "macOS"
	OSFamilyLinux   OSFamily = "Linux"
	OSFamilyWindows OSFamily = "Windows"
	OSFamilyUnknown OSFamily = "Unknown"
)

// IsValid verifica si la familia es una de las conocidas.
func (f OSFamily) IsValid() bool {
	switch f {
	case OSFamilyMacOS, OSFamilyLinux, OSFamilyWindows, OSFamilyUnknown:
		return true
	default:
		return false
	}
}

// String retorna la representación string de la familia.
func (f OSFamily) String() string {
	return string(f)
}

// OSFamilyFromGOOS maps a runtime.GOOS value to its family. Anything that is
// not darwin, linux or windows is Unknown.
func OSFamilyFromGOOS(goos string) OSFamily {
	switch strings.ToLower(strings.TrimSpace(goos)) {
	case "darwin":
		return OSFamilyMacOS
	case "linux":
		return OSFamilyLinux
	case "windows":
		return OSFamilyWindows
	default:
		return OSFamilyUnknown
	}
}

// PackageManagerID identifica un gestor de paquetes soportado.
// The set is closed: adding a manager means adding a constant here, a case in
// InstallMethods.For and a template in the pkgmgr table.
type PackageManagerID string

const (
	PackageManagerHomebrew PackageManagerID = "homebrew"
	PackageManagerApt      PackageManagerID = "apt"
	PackageManagerDnf      PackageManagerID = "dnf"
	PackageManagerYum      PackageManagerID = "yum"
	PackageManagerPacman   PackageManagerID = "pacman"
	PackageManagerZypper   PackageManagerID = "zypper"
	PackageManagerUnknown  PackageManagerID = "unknown"
)

// AllPackageManagers lists every concrete manager (unknown excluded).
var AllPackageManagers = []PackageManagerID{
	PackageManagerHomebrew,
	PackageManagerApt,
	PackageManagerDnf,
	PackageManagerYum,
	PackageManagerPacman,
	PackageManagerZypper,
}

// IsValid verifica si el identificador es un gestor concreto.
func (id PackageManagerID) IsValid() bool {
	switch id {
	case PackageManagerHomebrew, PackageManagerApt, PackageManagerDnf,
		PackageManagerYum, PackageManagerPacman, PackageManagerZypper:
		return true
	default:
		return false
	}
}

// String retorna la representación string del gestor.
func (id PackageManagerID) String() string {
	return string(id)
}

// ParsePackageManagerID accepts the canonical identifiers plus the common
// command names ("brew", "apt-get").
func ParsePackageManagerID(s string) PackageManagerID {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "homebrew", "brew":
		return PackageManagerHomebrew
	case "apt", "apt-get":
		return PackageManagerApt
	case "dnf":
		return PackageManagerDnf
	case "yum":
		return PackageManagerYum
	case "pacman":
		return PackageManagerPacman
	case "zypper":
		return PackageManagerZypper
	default:
		return PackageManagerUnknown
	}
}

// Category agrupa herramientas del catálogo.
type Category string

const (
	CategoryLanguage       Category = "language"
	CategoryRuntime        Category = "runtime"
	CategorySDK            Category = "sdk"
	CategoryPackageManager Category = "packageManager"
	CategoryVersionManager Category = "versionManager"
	CategoryUtility        Category = "utility"
)

// AllCategories in display order.
var AllCategories = []Category{
	CategoryLanguage,
	CategoryRuntime,
	CategorySDK,
	CategoryPackageManager,
	CategoryVersionManager,
	CategoryUtility,
}

// IsValid verifica si la categoría es válida.
func (c Category) IsValid() bool {
	switch c {
	case CategoryLanguage, CategoryRuntime, CategorySDK,
		CategoryPackageManager, CategoryVersionManager, CategoryUtility:
		return true
	default:
		return false
	}
}

// String retorna la representación string de la categoría.
func (c Category) String() string {
	return string(c)
}

// ParseCategory matches case-insensitively so "packagemanager" and
// "package-manager" both resolve.
func ParseCategory(s string) (Category, bool) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	for _, c := range AllCategories {
		if strings.ToLower(string(c)) == norm {
			return c, true
		}
	}
	return "", false
}

// InstallStrategy selects the install flow used by the orchestrator.
type InstallStrategy string

const (
	// StrategyGeneric installs through the detected package manager.
	StrategyGeneric InstallStrategy = "generic"

	// StrategyVersionManager installs a version manager first and delegates
	// the runtime install to it.
	StrategyVersionManager InstallStrategy = "versionManager"

	// StrategyIDEBundle installs prerequisites and then an IDE package that
	// ships the SDK.
	StrategyIDEBundle InstallStrategy = "ideBundle"
)

// IsValid verifica si la estrategia es válida. Empty means generic.
func (s InstallStrategy) IsValid() bool {
	switch s {
	case "", StrategyGeneric, StrategyVersionManager, StrategyIDEBundle:
		return true
	default:
		return false
	}
}
