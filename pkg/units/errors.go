package units

import "errors"

var (
	// ErrUnknownQuantity is returned when a quantity name is not in the catalog.
	ErrUnknownQuantity = errors.New("units: unknown quantity")
	// ErrUnknownUnit is returned when a unit key does not belong to the quantity.
	ErrUnknownUnit = errors.New("units: unknown unit")
	// ErrInvalidValue signals user input that does not parse as a finite number.
	ErrInvalidValue = errors.New("units: invalid value")
	// ErrInvalidCatalog wraps every catalog validation failure.
	ErrInvalidCatalog = errors.New("units: invalid catalog")
)
