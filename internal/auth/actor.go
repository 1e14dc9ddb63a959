package auth

import "errors"

// Kind is the role a profile plays in the marketplace.
type Kind string

const (
	KindSupplier Kind = "SUPPLIER"
	KindBuyer    Kind = "BUYER"
)

var ErrInvalidKind = errors.New("invalid profile kind")

func (k Kind) Valid() bool {
	return k == KindSupplier || k == KindBuyer
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Actor is the verified identity a request acts as. Services take it as an
// explicit argument.
type Actor struct {
	ProfileID uint
	Email     string
	Kind      Kind
}

func (a Actor) IsSupplier() bool { return a.Kind == KindSupplier }

func (a Actor) IsBuyer() bool { return a.Kind == KindBuyer }
