package api

import (
	"fmt"

	"github.com/Gobd/querycheck/bmi"
	"github.com/Gobd/querycheck/openapi"
	"github.com/getkin/kin-openapi/openapi3"
)

// Document describes the public endpoints as an OpenAPI document.
func Document(version string) (*openapi3.T, error) {
	doc := openapi.DocBase("bmi", "Body Mass Index calculator.", version)

	err := openapi.Get(doc, PathBMI, "calculateBMI", openapi.Endpoint{
		Summary:     "Calculate the BMI",
		Description: "Exactly the height and weight parameters must be given.",
		Query:       NewBMIValidator(),
		Responses: map[string]openapi.Response{
			"200": {Desc: "BMI rounded to two decimals and its category.", Bodies: []any{bmi.Result{}}},
			"422": {Desc: "Every failed constraint, one per line.", Text: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", PathBMI, err)
	}

	err = openapi.Get(doc, PathHealth, "health", openapi.Endpoint{
		Summary:   "Liveness probe",
		Responses: map[string]openapi.Response{"200": {Desc: HealthBody, Text: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", PathHealth, err)
	}

	return doc, nil
}
