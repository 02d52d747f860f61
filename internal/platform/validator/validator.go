// internal/platform/validator/validator.go
package validator

import (
	"regexp"
	"strings"
)

var (
	// Nombres de herramienta: minúsculas, dígitos, guiones.
	toolNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_.+-]*$`)

	// Versiones: "20", "3.12.1", "1.22rc1", "lts", "stable", "2.x+build".
	versionRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+~-]*$`)
)

// shellMeta son los caracteres que el shell interpretaría.
const shellMeta = ";&|`$<>\\\"'(){}[]*?!#~\n\r\t"

// Tool name validators

// IsToolName verifica si un string es un nombre de catálogo válido.
func IsToolName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	return toolNameRegex.MatchString(name)
}

// NormalizeToolName normaliza un nombre o alias para buscarlo en el catálogo.
func NormalizeToolName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Command validators

// IsCommandName accepts executable names and absolute or relative paths.
// Nothing the shell would expand or split is allowed.
func IsCommandName(name string) bool {
	if name == "" || len(name) > 255 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./+@", r):
		default:
			return false
		}
	}
	return true
}

// Version validators

// IsVersion verifica si una versión pedida es segura para sustituirla en un
// comando de instalación. El string vacío no es una versión.
func IsVersion(version string) bool {
	if len(version) == 0 || len(version) > 64 {
		return false
	}
	return versionRegex.MatchString(version)
}

// NormalizeVersion quita espacios y un prefijo "v" ("v20.1" -> "20.1").
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if len(version) > 1 && (version[0] == 'v' || version[0] == 'V') && version[1] >= '0' && version[1] <= '9' {
		return version[1:]
	}
	return version
}

// Search validators

// IsSearchTerm valida un término de búsqueda de paquetes. Spaces are
// allowed; shell metacharacters are not.
func IsSearchTerm(term string) bool {
	term = strings.TrimSpace(term)
	if len(term) == 0 || len(term) > 128 {
		return false
	}
	return !strings.ContainsAny(term, shellMeta)
}
