package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Browsers send empty form inputs as "" rather than omitting the key.
// OptionalDecimal and OptionalInt normalize "", null and absent to unset,
// so downstream payloads never carry a bogus zero.

// OptionalDecimal is a decimal field that distinguishes unset from zero.
type OptionalDecimal struct {
	Value decimal.Decimal
	Valid bool
}

// NewOptionalDecimal returns a set OptionalDecimal.
func NewOptionalDecimal(d decimal.Decimal) OptionalDecimal {
	return OptionalDecimal{Value: d, Valid: true}
}

// UnmarshalJSON accepts a number, a numeric string, "" or null.
func (o *OptionalDecimal) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = OptionalDecimal{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*o = OptionalDecimal{}
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("invalid decimal value %q", s)
		}
		*o = OptionalDecimal{Value: d, Valid: true}
		return nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return err
	}
	*o = OptionalDecimal{Value: d, Valid: true}
	return nil
}

// MarshalJSON emits the decimal value, or null when unset.
func (o OptionalDecimal) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return o.Value.MarshalJSON()
}

// IsZero reports whether the value is unset, so omitzero fields drop the
// key from the wire body instead of sending null.
func (o OptionalDecimal) IsZero() bool {
	return !o.Valid
}

// OptionalInt is an integer field that distinguishes unset from zero.
type OptionalInt struct {
	Value int64
	Valid bool
}

// NewOptionalInt returns a set OptionalInt.
func NewOptionalInt(v int64) OptionalInt {
	return OptionalInt{Value: v, Valid: true}
}

// UnmarshalJSON accepts a number, a numeric string, "" or null.
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = OptionalInt{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*o = OptionalInt{}
			return nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value %q", s)
		}
		*o = OptionalInt{Value: v, Valid: true}
		return nil
	}

	var v int64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*o = OptionalInt{Value: v, Valid: true}
	return nil
}

// MarshalJSON emits the integer value, or null when unset.
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(o.Value, 10)), nil
}

// IsZero reports whether the value is unset, so omitzero fields drop the
// key from the wire body instead of sending null.
func (o OptionalInt) IsZero() bool {
	return !o.Valid
}
