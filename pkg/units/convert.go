package units

import "fmt"

// Convert converts value from one unit of q to another. Linear quantities use
// the factor ratio; temperature goes through the affine formulas.
func Convert(q Quantity, from, to string, value float64) (float64, error) {
	src, ok := q.Unit(from)
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, from, q.Name)
	}
	dst, ok := q.Unit(to)
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, to, q.Name)
	}
	if src.Key == dst.Key {
		return value, nil
	}
	if q.IsTemperature() {
		return ConvertTemperature(value, src.Key, dst.Key)
	}
	return ConvertLinear(value, src.Factor, dst.Factor), nil
}

// ConvertLinear applies target = value * toFactor / fromFactor.
func ConvertLinear(value, fromFactor, toFactor float64) float64 {
	return value * toFactor / fromFactor
}

// ConvertTemperature converts between Celsius, Fahrenheit and Kelvin.
func ConvertTemperature(value float64, from, to string) (float64, error) {
	if from == to {
		if !isTemperatureUnit(from) {
			return 0, fmt.Errorf("%w: %q is not a temperature unit", ErrUnknownUnit, from)
		}
		return value, nil
	}
	celsius, err := toCelsius(value, from)
	if err != nil {
		return 0, err
	}
	return fromCelsius(celsius, to)
}

func toCelsius(value float64, unit string) (float64, error) {
	switch unit {
	case Celsius:
		return value, nil
	case Fahrenheit:
		return (value - 32) * 5 / 9, nil
	case Kelvin:
		return value - 273.15, nil
	default:
		return 0, fmt.Errorf("%w: %q is not a temperature unit", ErrUnknownUnit, unit)
	}
}

func fromCelsius(value float64, unit string) (float64, error) {
	switch unit {
	case Celsius:
		return value, nil
	case Fahrenheit:
		return value*9/5 + 32, nil
	case Kelvin:
		return value + 273.15, nil
	default:
		return 0, fmt.Errorf("%w: %q is not a temperature unit", ErrUnknownUnit, unit)
	}
}

func isTemperatureUnit(key string) bool {
	switch key {
	case Celsius, Fahrenheit, Kelvin:
		return true
	default:
		return false
	}
}
