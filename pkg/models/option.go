package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OptionType identifies the exercise direction of a European option.
type OptionType int

const (
	OptionTypeCall OptionType = iota
	OptionTypePut
)

// ParseOptionType resolves the two accepted spellings, case-insensitively.
// Anything other than "call" or "put" is an error; there is deliberately no
// default so a bad string can never reach the pricing formulas.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return OptionTypeCall, nil
	case "put":
		return OptionTypePut, nil
	default:
		return 0, fmt.Errorf("invalid option type %q: must be \"call\" or \"put\"", s)
	}
}

// Valid reports whether t is one of the two defined variants.
func (t OptionType) Valid() bool {
	return t == OptionTypeCall || t == OptionTypePut
}

func (t OptionType) String() string {
	switch t {
	case OptionTypeCall:
		return "call"
	case OptionTypePut:
		return "put"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// MarshalJSON encodes the option type as its string spelling.
func (t OptionType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid option type %d", int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the two spellings, case-insensitively.
func (t *OptionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseOptionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// OptionParams holds the market and contract inputs to the pricing formulas.
type OptionParams struct {
	Type   OptionType `json:"type"`
	Spot   float64    `json:"spot"`
	Strike float64    `json:"strike"`
	Expiry float64    `json:"expiry"` // time to expiry in years
	Rate   float64    `json:"rate"`   // annualized risk-free rate
	Sigma  float64    `json:"sigma"`  // annualized volatility
}

// Greeks is the price and sensitivity bundle for one parameter set at one
// instant. It is an output record and is never mutated after creation.
type Greeks struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}
