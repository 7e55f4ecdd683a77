// Package openapi builds OpenAPI 3 documents for endpoints whose query
// parameters are declared with a [querycheck.Validator], and serves them
// through Swagger UI.
//
// Use [DocBase] to create a base document, register endpoints with [Get] and
// serve the Swagger UI with [SwaggerHandlerMust]:
//
//	doc := openapi.DocBase("bmi", "BMI calculator", "1.0")
//	openapi.Get(doc, "/", "calculateBMI", openapi.Endpoint{
//	    Query: validator,
//	    Responses: map[string]openapi.Response{
//	        "200": {Desc: "BMI", Bodies: []any{bmi.Result{}}},
//	    },
//	})
//	mux.Handle("/swagger/", openapi.SwaggerHandlerMust("/swagger/", doc))
package openapi
