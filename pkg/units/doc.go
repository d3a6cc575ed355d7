// Package units holds the conversion table behind the widget: an ordered
// catalog of quantities, each with a set of named units and a scalar factor
// relative to the quantity's base unit.
//
// Linear quantities convert with
//
//	target = source * factor(target) / factor(source)
//
// while temperature is affine and handled by explicit Celsius, Fahrenheit and
// Kelvin formulas. Values shown to users go through FormatValue, which keeps six
// decimal places and trims trailing zeros.
package units
