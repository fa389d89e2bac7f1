// Package units defines SI unit values and physical constants. The
// simulation core works in SI base units only (Kelvin, Joule/Kelvin,
// Kelvin/Watt, Watt); any conversion happens here, before values cross
// into the core.
package units

// SI base units.
const (
	Meter    = 1.0
	Second   = 1.0
	Kilogram = 1.0
	Kelvin   = 1.0
	Mole     = 1.0
)

// Derived length, area and volume units.
const (
	Millimeter = 1e-3 * Meter
	Centimeter = 1e-2 * Meter
	Kilometer  = 1e3 * Meter

	M2  = Meter * Meter
	Cm2 = Centimeter * Centimeter
	Mm2 = Millimeter * Millimeter

	M3    = Meter * Meter * Meter
	Cm3   = Centimeter * Centimeter * Centimeter
	Mm3   = Millimeter * Millimeter * Millimeter
	Liter = 1e-3 * M3
)

// Time units.
const (
	Millisecond = 1e-3 * Second
	Minute      = 60 * Second
	Hour        = 3600 * Second
	Day         = 24 * Hour
)

// Mass units.
const (
	Gram = 1e-3 * Kilogram
	Ton  = 1e3 * Kilogram
)

// Derived units.
const (
	Newton  = Kilogram * Meter / (Second * Second)
	Joule   = Newton * Meter
	Watt    = Joule / Second
	Pascal  = Newton / M2
	Bar     = 1e5 * Pascal
	Calorie = 4.184 * Joule

	Kilojoule    = 1e3 * Joule
	Megajoule    = 1e6 * Joule
	WattHour     = 3600 * Joule
	KilowattHour = 1e3 * WattHour

	// thermal conductivity and specific heat capacity
	WattPerMeterKelvin     = Watt / (Meter * Kelvin)
	JoulePerKilogramKelvin = Joule / (Kilogram * Kelvin)
)

// Physical constants.
const (
	// Sigma is the Stefan-Boltzmann constant [W/(m^2 K^4)].
	Sigma = 5.670374419e-8 * Watt / (M2 * Kelvin * Kelvin * Kelvin * Kelvin)

	// Boltzmann constant [J/K].
	KB = 1.380649e-23 * Joule / Kelvin

	// GasConstant is the universal gas constant [J/(mol K)].
	GasConstant = 8.314462618 * Joule / (Mole * Kelvin)
)

// Temperature conversions. The core consumes Kelvin only.

func KToC(t float64) float64 { return t - 273.15 }

func CToK(t float64) float64 { return t + 273.15 }

func KToF(t float64) float64 { return (t-273.15)*9/5 + 32 }

func FToK(t float64) float64 { return (t-32)*5/9 + 273.15 }
