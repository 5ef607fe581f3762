package matching

import "fmt"

// InvalidEnumError signals that a matcher, predicate, or sort-key function
// was asked to dispatch on a Side or OrderType value it does not recognize.
// This is a programming-error class, not a runtime condition: the operation
// is abandoned with state untouched.
type InvalidEnumError struct {
	Enum  string
	Value int
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("matching: invalid %s value %d", e.Enum, e.Value)
}

func invalidSide(side Side) error {
	return &InvalidEnumError{Enum: "Side", Value: int(side)}
}

func invalidOrderType(t OrderType) error {
	return &InvalidEnumError{Enum: "OrderType", Value: int(t)}
}

// InvalidOrderTypeError is returned by MatchOrder for order types the core
// has no matcher for (currently only Market — a market order has no trigger
// or limit condition to sweep against).
type InvalidOrderTypeError struct {
	OrderType OrderType
}

func (e *InvalidOrderTypeError) Error() string {
	return fmt.Sprintf("matching: order type %s has no matcher", e.OrderType)
}
