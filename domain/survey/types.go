package survey

import "time"

// Sex is the recoded sex category of a trapped animal.
type Sex string

const (
	SexFemale      Sex = "Female"
	SexMale        Sex = "Male"
	SexUnspecified Sex = "Unspecified"
)

// sexCodes maps raw field codes to labeled categories. Codes outside the
// vocabulary fall through to SexUnspecified rather than failing the row.
var sexCodes = map[string]Sex{
	"f": SexFemale,
	"m": SexMale,
}

// RecodeSex maps a raw sex code (already lowercased and trimmed by the
// loader) to its labeled category.
func RecodeSex(code string) Sex {
	if s, ok := sexCodes[code]; ok {
		return s
	}
	return SexUnspecified
}

// Measure is an optional numeric field value. Blank cells in the source
// produce a Measure with Valid=false; a missing value is never zero.
type Measure struct {
	Value float64
	Valid bool
}

// Some returns a present measurement.
func Some(v float64) Measure {
	return Measure{Value: v, Valid: true}
}

// None returns a missing measurement.
func None() Measure {
	return Measure{}
}

// Record is one trapping observation. Records are immutable once loaded;
// sex recoding and year derivation happen exactly once, at load time.
type Record struct {
	ID         string
	Date       time.Time
	Year       int
	Site       string
	Sex        Sex
	Age        string
	WeightG    Measure // grams
	HindfootMM Measure // millimeters
}

// Dataset is an ordered sequence of records. After loading, every record
// carries the juvenile age code; ordering has no statistical meaning.
type Dataset []Record

// Weights returns the valid weight values for records of the given sex.
func (ds Dataset) Weights(sex Sex) []float64 {
	var out []float64
	for _, r := range ds {
		if r.Sex == sex && r.WeightG.Valid {
			out = append(out, r.WeightG.Value)
		}
	}
	return out
}

// Pairs returns the (hindfoot length, weight) pairs where both values are
// present.
func (ds Dataset) Pairs() (hindfoot, weight []float64) {
	for _, r := range ds {
		if r.HindfootMM.Valid && r.WeightG.Valid {
			hindfoot = append(hindfoot, r.HindfootMM.Value)
			weight = append(weight, r.WeightG.Value)
		}
	}
	return hindfoot, weight
}
