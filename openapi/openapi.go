package openapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Gobd/querycheck"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Response describes an HTTP response with a description and body types for
// schema generation. Text responses are documented as a plain string.
type Response struct {
	Desc   string
	Bodies []any
	Text   bool
}

// Endpoint describes a single API operation for [Get].
type Endpoint struct {
	Summary     string
	Description string
	Query       *querycheck.Validator // query parameters, one per declared rule
	Responses   map[string]Response   // keyed by status code (e.g. "200", "4xx")
}

// NewResponseMust is like [NewResponse] but panics on error.
func NewResponseMust(vs map[string]Response) *openapi3.Responses {
	o, err := NewResponse(vs)
	if err != nil {
		panic(err)
	}
	return o
}

// NewResponse creates an OpenAPI responses object.
// Map key is status code (e.g. "200", "4xx").
func NewResponse(vs map[string]Response) (*openapi3.Responses, error) {
	if len(vs) == 0 {
		return nil, errors.New("no values given")
	}

	opts := make([]openapi3.NewResponsesOption, 0, len(vs))

	for statusCode := range vs {
		desc := vs[statusCode].Desc

		var content openapi3.Content
		switch {
		case vs[statusCode].Text:
			content = openapi3.Content{
				"text/plain": &openapi3.MediaType{
					Schema: openapi3.NewStringSchema().NewRef(),
				},
			}
		case len(vs[statusCode].Bodies) > 0:
			var refs openapi3.SchemaRefs
			for _, body := range vs[statusCode].Bodies {
				schema, err := openapi3gen.NewSchemaRefForValue(body, nil)
				if err != nil {
					return nil, fmt.Errorf("schema for %s response: %w", statusCode, err)
				}
				refs = append(refs, schema)
			}

			schema := &openapi3.SchemaRef{Value: &openapi3.Schema{OneOf: refs}}
			if len(refs) == 1 {
				schema = refs[0]
			}
			content = openapi3.Content{
				"application/json": &openapi3.MediaType{Schema: schema},
			}
		}

		opts = append(opts, openapi3.WithName(statusCode, &openapi3.Response{
			Description: &desc,
			Content:     content,
		}))
	}

	return openapi3.NewResponses(opts...), nil
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: &openapi3.Paths{},
	}
}

// AddPath adds an operation to the OpenAPI spec at the given path and method.
func AddPath(path, method string, s *openapi3.T, op *openapi3.Operation) {
	p := s.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}
	p.SetOperation(method, op)
	s.Paths.Set(path, p)
}

// Get registers a GET endpoint on doc.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) error {
	op := &openapi3.Operation{
		OperationID: operationID,
		Summary:     ep.Summary,
		Description: ep.Description,
	}

	if ep.Query != nil {
		params, err := ep.Query.Parameters()
		if err != nil {
			return fmt.Errorf("parameters of %s: %w", path, err)
		}
		op.Parameters = params
	}

	if ep.Responses != nil {
		responses, err := NewResponse(ep.Responses)
		if err != nil {
			return fmt.Errorf("responses of %s: %w", path, err)
		}
		op.Responses = responses
	} else {
		op.Responses = openapi3.NewResponses()
	}

	AddPath(path, http.MethodGet, doc, op)
	return nil
}
