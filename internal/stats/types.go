// Package stats provides the battle stat records parsed from pasted spy reports,
// the table they are shown in, and the rules for inferring a missing stat.
package stats

import (
	"encoding/json"
	"strconv"
)

// Value is an integer stat that may be unknown.
// An unknown value always has N == 0.
type Value struct {
	N     int64
	Valid bool
}

// Known returns a known value.
func Known(n int64) Value {
	return Value{N: n, Valid: true}
}

// String returns the plain integer or "null".
func (v Value) String() string {
	if !v.Valid {
		return "null"
	}
	return strconv.FormatInt(v.N, 10)
}

// MarshalJSON encodes unknown values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(v.N, 10)), nil
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = Known(n)
	return nil
}

// Record is one entity's stat block.
type Record struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Strength  Value  `json:"strength"`
	Speed     Value  `json:"speed"`
	Dexterity Value  `json:"dexterity"`
	Defense   Value  `json:"defense"`
	Total     Value  `json:"total"`
}

// Label returns the "Name[ID]" identifier shown in the first table column.
func (r Record) Label() string {
	return r.Name + "[" + r.ID + "]"
}

// Stats returns the four stats followed by the total, in table column order.
func (r Record) Stats() []Value {
	return []Value{r.Strength, r.Speed, r.Dexterity, r.Defense, r.Total}
}

// Missing returns how many of the five values are unknown.
func (r Record) Missing() int {
	n := 0
	for _, v := range r.Stats() {
		if !v.Valid {
			n++
		}
	}
	return n
}

func (r *Record) fields() []*Value {
	return []*Value{&r.Strength, &r.Speed, &r.Dexterity, &r.Defense, &r.Total}
}

// Infer fills in the one unknown value when exactly one of the five is missing,
// using total = strength + speed + dexterity + defense. With two or more
// missing values the record is left untouched.
func (r *Record) Infer() {
	var missing *Value
	count := 0
	for _, f := range r.fields() {
		if !f.Valid {
			missing = f
			count++
		}
	}
	if count != 1 {
		return
	}

	if missing == &r.Total {
		*missing = Known(r.Strength.N + r.Speed.N + r.Dexterity.N + r.Defense.N)
		return
	}

	var others int64
	for _, f := range r.fields()[:4] {
		if f != missing {
			others += f.N
		}
	}
	*missing = Known(r.Total.N - others)
}
