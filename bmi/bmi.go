// Package bmi computes the Body Mass Index and classifies it into a weight
// category.
package bmi

import (
	"errors"
	"math"
)

// Label is a weight category.
type Label string

const (
	Underweight Label = "underweight"
	Normal      Label = "normal"
	Overweight  Label = "overweight"
)

// Lower bounds (inclusive) of the normal and overweight categories.
const (
	NormalThreshold     = 18.5
	OverweightThreshold = 25.0
)

var (
	// ErrInvalidInput is returned when height or weight is not a positive finite number.
	ErrInvalidInput = errors.New("bmi: height and weight must be positive numbers")
	// ErrInvalidBMI is returned when a BMI value is not a positive finite number.
	ErrInvalidBMI = errors.New("bmi: value must be a positive number")
)

// Result is the JSON body returned for a successful calculation.
type Result struct {
	BMI   float64 `json:"bmi"`
	Label Label   `json:"label"`
}

// Calculate returns weight / (height/100)^2 for a height in centimetres and
// a weight in kilograms.
func Calculate(heightCM, weightKG float64) (float64, error) {
	if !positive(heightCM) || !positive(weightKG) {
		return 0, ErrInvalidInput
	}
	m := heightCM / 100
	return weightKG / (m * m), nil
}

// Classify maps a BMI to its category. Each category includes its lower
// bound, so 18.5 is normal and 25 is overweight.
func Classify(bmi float64) (Label, error) {
	if !positive(bmi) {
		return "", ErrInvalidBMI
	}
	switch {
	case bmi >= OverweightThreshold:
		return Overweight, nil
	case bmi >= NormalThreshold:
		return Normal, nil
	default:
		return Underweight, nil
	}
}

// Compute calculates and classifies the BMI. The label is taken from the
// unrounded value; the returned BMI is rounded to two decimals.
func Compute(heightCM, weightKG float64) (Result, error) {
	v, err := Calculate(heightCM, weightKG)
	if err != nil {
		return Result{}, err
	}
	label, err := Classify(v)
	if err != nil {
		return Result{}, err
	}
	return Result{BMI: Round(v, 2), Label: label}, nil
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
