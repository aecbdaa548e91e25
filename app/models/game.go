package models

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Game is a purchasable catalog item. Created only by an admin; immutable
// once created (there is no update or delete route).
type Game struct {
	gorm.Model
	Name     string `gorm:"size:100;not null" json:"name"`
	Price    string `gorm:"size:100;not null" json:"price"`
	ImageURL string `gorm:"size:250;not null" json:"img_url"`
}

// ErrBadPrice reports a price string outside the supported format.
var ErrBadPrice = errors.New("price must be a leading currency symbol followed by whole units, like $20")

// PriceMinorUnits converts a stored price string into an integer minor-unit
// amount for the payment gateway. Only whole-unit prices with a leading $
// are supported: "$20" → 2000. Fractional cents are out of the numeric model
// and are rejected at catalog-creation time, so a failure here on a stored
// price is an internal inconsistency.
func PriceMinorUnits(price string) (int64, error) {
	units, ok := strings.CutPrefix(price, "$")
	if !ok {
		return 0, ErrBadPrice
	}

	n, err := strconv.ParseInt(units, 10, 64)
	if err != nil || n < 0 || n > math.MaxInt64/100 {
		// the upper bound keeps n*100 from wrapping
		return 0, ErrBadPrice
	}

	return n * 100, nil
}
