package rules

import "strconv"

// Number is any built-in integer or floating-point type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Number status labels.
const (
	Positive = "Positive"
	Negative = "Negative"
	Zero     = "Zero"
)

// NumberStatus reports the sign of n.
func NumberStatus[T Number](n T) string {
	switch {
	case n > 0:
		return Positive
	case n < 0:
		return Negative
	}
	return Zero
}

// Accepted Celsius range for conversion, inclusive.
const (
	MinCelsius = -100
	MaxCelsius = 100
)

// InvalidTemperature is returned by DescribeFahrenheit outside the accepted range.
const InvalidTemperature = "Invalid Temperature"

// CelsiusToFahrenheit converts celsius to Fahrenheit. ok is false when
// celsius lies outside [MinCelsius, MaxCelsius].
func CelsiusToFahrenheit(celsius int) (fahrenheit float64, ok bool) {
	if celsius < MinCelsius || celsius > MaxCelsius {
		return 0, false
	}
	return float64(celsius)*9/5 + 32, true
}

// DescribeFahrenheit returns the converted temperature as text, or
// InvalidTemperature when celsius is out of range.
func DescribeFahrenheit(celsius int) string {
	f, ok := CelsiusToFahrenheit(celsius)
	if !ok {
		return InvalidTemperature
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Weather advisory thresholds.
const (
	HotTemperature   = 30.0
	HumidHumidity    = 70.0
	FreezingAdvisory = 0.0
)

// Weather advisory labels.
const (
	AdvisoryHotHumid = "High Temperature and Humidity. Stay Hydrated."
	AdvisoryCold     = "Low Temperature. Bundle Up!"
	AdvisoryNone     = "No Specific Advisory"
)

// WeatherAdvisory picks an advisory for the given temperature (°C) and
// relative humidity (%). Exactly 0 °C is not cold.
func WeatherAdvisory(temperature, humidity float64) string {
	switch {
	case temperature >= HotTemperature && humidity >= HumidHumidity:
		return AdvisoryHotHumid
	case temperature < FreezingAdvisory:
		return AdvisoryCold
	}
	return AdvisoryNone
}

// Quiz grading thresholds.
const (
	PassMinCorrect          = 7
	PassMaxIncorrect        = 2
	ConditionalMinCorrect   = 5
	ConditionalMaxIncorrect = 3
)

// Quiz grade labels.
const (
	GradePass            = "Pass"
	GradeConditionalPass = "Conditional Pass"
	GradeFail            = "Fail"
)

// GradeQuiz grades a quiz from its count of correct and incorrect answers.
func GradeQuiz(correct, incorrect int) string {
	switch {
	case correct >= PassMinCorrect && incorrect <= PassMaxIncorrect:
		return GradePass
	case correct >= ConditionalMinCorrect && incorrect <= ConditionalMaxIncorrect:
		return GradeConditionalPass
	}
	return GradeFail
}
