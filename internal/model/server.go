package model

// Placeholder addresses meaning "not configured". Servers carrying one of
// these are listable but must never be probed.
const (
	AddressUndefined = "undefined"
	AddressZero      = "0.0.0.0"
)

// Server is an addressable endpoint derived from a registry entry.
// Immutable after creation.
type Server struct {
	Name    string
	Address string
}

// Probeable reports whether the server carries an address a reachability
// check could meaningfully target.
func (s Server) Probeable() bool {
	switch s.Address {
	case "", AddressUndefined, AddressZero:
		return false
	}
	return true
}
