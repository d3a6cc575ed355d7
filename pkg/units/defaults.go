package units

var defaultQuantities = []Quantity{
	{
		Name:      "Length",
		Kind:      KindLinear,
		Primary:   "km",
		Secondary: "m",
		Units: []Unit{
			{Key: "km", Symbol: "km", Factor: 1},
			{Key: "m", Symbol: "m", Factor: 1000},
			{Key: "mm", Symbol: "mm", Factor: 1000000},
		},
	},
	{
		Name:      "Volume",
		Kind:      KindLinear,
		Primary:   "l",
		Secondary: "ml",
		Units: []Unit{
			{Key: "l", Symbol: "L", Factor: 1},
			{Key: "ml", Symbol: "mL", Factor: 1000},
			{Key: "gal", Symbol: "gal", Factor: 0.264172},
			{Key: "cubicMeter", Label: "cubic meter", Symbol: "m³", Factor: 0.001},
			{Key: "cubicInch", Label: "cubic inch", Symbol: "in³", Factor: 61.0237},
			{Key: "cubicFoot", Label: "cubic foot", Symbol: "ft³", Factor: 0.0353147},
		},
	},
	{
		Name:      "Mass",
		Kind:      KindLinear,
		Primary:   "kg",
		Secondary: "g",
		Units: []Unit{
			{Key: "kg", Symbol: "kg", Factor: 1},
			{Key: "g", Symbol: "g", Factor: 1000},
			{Key: "mg", Symbol: "mg", Factor: 1000000},
			{Key: "ton", Symbol: "t", Factor: 0.001},
		},
	},
	{
		Name:      "Time",
		Kind:      KindLinear,
		Primary:   "min",
		Secondary: "sec",
		Units: []Unit{
			{Key: "sec", Symbol: "s", Factor: 1},
			{Key: "min", Symbol: "min", Factor: 1.0 / 60},
			{Key: "hour", Symbol: "h", Factor: 1.0 / 3600},
			{Key: "day", Symbol: "d", Factor: 1.0 / 86400},
		},
	},
	{
		Name:      "Temperature",
		Kind:      KindTemperature,
		Primary:   Celsius,
		Secondary: Fahrenheit,
		Units: []Unit{
			{Key: Celsius, Symbol: "°C"},
			{Key: Fahrenheit, Symbol: "°F"},
			{Key: Kelvin, Symbol: "K"},
		},
	},
	{
		Name:      "Area",
		Kind:      KindLinear,
		Primary:   "sqm",
		Secondary: "sqcm",
		Units: []Unit{
			{Key: "sqm", Symbol: "m²", Factor: 1},
			{Key: "sqcm", Symbol: "cm²", Factor: 10000},
			{Key: "sqft", Symbol: "ft²", Factor: 10.7639},
			{Key: "acre", Symbol: "ac", Factor: 0.000247105},
		},
	},
	{
		Name:      "Speed",
		Kind:      KindLinear,
		Primary:   "mps",
		Secondary: "kmph",
		Units: []Unit{
			{Key: "mps", Symbol: "m/s", Factor: 1},
			{Key: "kmph", Symbol: "km/h", Factor: 3.6},
			{Key: "mph", Symbol: "mph", Factor: 2.23694},
		},
	},
	{
		Name:      "Energy",
		Kind:      KindLinear,
		Primary:   "joule",
		Secondary: "calorie",
		Units: []Unit{
			{Key: "joule", Symbol: "J", Factor: 1},
			{Key: "calorie", Symbol: "cal", Factor: 0.239006},
			{Key: "kilowattHour", Label: "kilowatt hour", Symbol: "kWh", Factor: 2.77778e-7},
		},
	},
	{
		Name:      "Pressure",
		Kind:      KindLinear,
		Primary:   "pascal",
		Secondary: "bar",
		Units: []Unit{
			{Key: "pascal", Symbol: "Pa", Factor: 1},
			{Key: "bar", Symbol: "bar", Factor: 0.00001},
			{Key: "psi", Symbol: "psi", Factor: 0.000145038},
		},
	},
}

var defaultCatalog = MustCatalog(defaultQuantities...)

// Default returns the built-in catalog. Catalogs are immutable so the value is
// shared between callers.
func Default() *Catalog {
	return defaultCatalog
}
