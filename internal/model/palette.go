package model

// Palette is the background theme derived from the current temperature.
type Palette string

const (
	PaletteCool Palette = "cool"
	PaletteWarm Palette = "warm"
)

// warmThreshold is the temperature above which the warm palette applies.
func warmThreshold(u UnitSystem) float64 {
	if u == Imperial {
		return 40
	}
	return 20
}

// Background derives the palette from temperature and units. The threshold itself is cool.
func Background(temp float64, units UnitSystem) Palette {
	if temp <= warmThreshold(units) {
		return PaletteCool
	}
	return PaletteWarm
}

// BackgroundFor is Background with a nil record resolving to cool.
func BackgroundFor(r *ForecastRecord, units UnitSystem) Palette {
	if r == nil {
		return PaletteCool
	}
	return Background(r.Temperature, units)
}

func (p Palette) Gradient() string {
	if p == PaletteWarm {
		return "from-blue-800 to-gray-700"
	}
	return "from-blue-500 to-fuchsia-500"
}

// ThemeGradient is the base gradient for the dark/light flag.
func ThemeGradient(dark bool) string {
	if dark {
		return "from-gray-900 to-gray-700"
	}
	return "from-violet-800 to-blue-500"
}
