// Package location holds the city/address directory and the rules that turn
// user-supplied city and address strings into storage partitions.
package location

import "strings"

const (
	// DefaultCity is used whenever a request names no city.
	DefaultCity = "omsk"
	// Office is the canonical address of the head office.
	Office = "office"
)

// NormalizeCity trims and lowercases city and falls back to DefaultCity when
// it is empty.
func NormalizeCity(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return DefaultCity
	}
	return city
}

// NormalizeAddress collapses suffixed variants ("kamergersky:2") to their
// lowercased base address. Empty input and "office" in any case both map
// to Office.
func NormalizeAddress(address string) string {
	base, _, _ := strings.Cut(address, ":")
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "" || base == Office {
		return Office
	}
	return base
}

// SafeSegment lowercases s and replaces every rune outside a-z, а-я and
// 0-9 with an underscore, so the result is usable as a storage key.
func SafeSegment(s string) string {
	if s == "" {
		return "default"
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'а' && r <= 'я', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// CityKey is the storage key of a city.
func CityKey(city string) string {
	return SafeSegment(NormalizeCity(city))
}

// Partition identifies one (city, address) order set.
type Partition struct {
	City    string
	Address string
}

// NewPartition normalises city and address.
func NewPartition(city, address string) Partition {
	return Partition{City: NormalizeCity(city), Address: NormalizeAddress(address)}
}

// CityKey is the storage key of the partition's city.
func (p Partition) CityKey() string { return SafeSegment(p.City) }

// AddressKey is the storage key of the partition's address.
func (p Partition) AddressKey() string { return SafeSegment(p.Address) }

// Key joins both storage keys.
func (p Partition) Key() string { return p.CityKey() + "/" + p.AddressKey() }
