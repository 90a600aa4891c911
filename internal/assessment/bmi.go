package assessment

import "math"

// BMICategory buckets a BMI value at 18.5, 25 and 30.
type BMICategory int

const (
	BMIUnderweight BMICategory = iota
	BMINormal
	BMIOverweight
	BMIObese
)

func (c BMICategory) String() string {
	switch c {
	case BMIUnderweight:
		return "underweight"
	case BMINormal:
		return "normal"
	case BMIOverweight:
		return "overweight"
	case BMIObese:
		return "obese"
	default:
		return "unknown"
	}
}

// BMI returns weight / height² with height given in centimetres. The second
// result is false when either measurement is not positive.
func BMI(heightCM, weightKG float64) (float64, bool) {
	if heightCM <= 0 || weightKG <= 0 {
		return 0, false
	}
	m := heightCM / 100
	return weightKG / (m * m), true
}

// CategoryForBMI buckets a BMI value at 18.5, 25 and 30.
func CategoryForBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
