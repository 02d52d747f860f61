// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de colores de la terminal.
var (
	// Teal - cabeceras y elementos principales
	Teal = pterm.NewRGB(0, 168, 150)

	// Leaf - instalaciones correctas
	Leaf = pterm.NewRGB(110, 200, 90)

	// Amber - warnings y pasos best-effort fallidos
	Amber = pterm.NewRGB(255, 182, 39)

	// Brick - errores
	Brick = pterm.NewRGB(215, 58, 56)

	// Slate - texto secundario, versiones, detalles
	Slate = pterm.NewRGB(120, 120, 130)

	// Chalk - texto principal
	Chalk = pterm.NewRGB(232, 232, 232)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = Teal.ToRGBStyle()
	StyleSuccess   = Leaf.ToRGBStyle()
	StyleWarning   = Amber.ToRGBStyle()
	StyleError     = Brick.ToRGBStyle()
	StyleSecondary = Slate.ToRGBStyle()
	StyleText      = Chalk.ToRGBStyle()
)
