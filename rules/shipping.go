package rules

import (
	"errors"

	apperr "github.com/dalemusser/rulebook/pantry/errors"
)

// ShippingMethod selects a per-parcel rate table.
type ShippingMethod string

// Supported shipping methods.
const (
	Standard ShippingMethod = "standard"
	Express  ShippingMethod = "express"
)

// ErrUnknownShippingMethod is wrapped by the error ItemsShippingCost returns
// for a method other than Standard or Express.
var ErrUnknownShippingMethod = errors.New("unknown shipping method")

// Parcel weight bands, inclusive upper bounds. Heavier parcels fall in the
// heavy band.
const (
	LightParcelMax  = 5.0
	MediumParcelMax = 10.0
)

const (
	bandLight = iota
	bandMedium
	bandHeavy
)

// parcelRates holds the light, medium and heavy rate per method.
var parcelRates = map[ShippingMethod][3]float64{
	Standard: {10, 15, 20},
	Express:  {20, 30, 40},
}

func weightBand(weight float64) int {
	switch {
	case weight <= LightParcelMax:
		return bandLight
	case weight <= MediumParcelMax:
		return bandMedium
	}
	return bandHeavy
}

// Parcel is one item to ship.
type Parcel struct {
	Weight float64 `json:"weight" yaml:"weight"`
}

// Valid reports whether m is a supported method.
func (m ShippingMethod) Valid() bool {
	_, ok := parcelRates[m]
	return ok
}

// ItemsShippingCost sums the per-parcel rate for method. The method is
// checked before any parcel, so an unknown method fails even for an empty
// slice.
func ItemsShippingCost(parcels []Parcel, method ShippingMethod) (float64, error) {
	rates, ok := parcelRates[method]
	if !ok {
		return 0, apperr.UnknownShippingMethod(string(method)).Wrap(ErrUnknownShippingMethod)
	}

	var total float64
	for _, p := range parcels {
		total += rates[weightBand(p.Weight)]
	}
	return total, nil
}

// Dimensional shipping weight bands, inclusive upper bounds.
const (
	PacketWeightMax = 1.0
	ParcelWeightMax = 5.0
)

// Dimensional shipping costs per band.
const (
	PacketCost  = 5.0
	ParcelCost  = 10.0
	FreightCost = 20.0
)

// ShippingCost prices a package by weight. The dimensions are accepted for
// interface compatibility but do not change the band.
func ShippingCost(weight, length, width, height float64) float64 {
	switch {
	case weight <= PacketWeightMax:
		return PacketCost
	case weight <= ParcelWeightMax:
		return ParcelCost
	}
	return FreightCost
}
