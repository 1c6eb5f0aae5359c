// Package openapi builds the OpenAPI 3 document served at /openapi.json.
package openapi

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"

	"crudkit/internal/catalog"
	"crudkit/internal/http/dto"
)

func New(app *catalog.App) *openapi3.T {
	version := app.Version
	if version == "" {
		version = "1.0.0"
	}
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       app.Title,
			Description: app.Description,
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
}

// Resource describes the CRUD routes of one resource. record is a zero value
// of the stored entity and input a zero value of its create payload.
type Resource struct {
	Name   string
	Entity string
	Tag    string
	Prefix string
	Record any
	Input  any
}

func AddResource(doc *openapi3.T, res Resource) error {
	record, err := schemaFor(res.Record)
	if err != nil {
		return fmt.Errorf("%s record schema: %w", res.Name, err)
	}
	input, err := schemaFor(res.Input)
	if err != nil {
		return fmt.Errorf("%s input schema: %w", res.Name, err)
	}
	patch := partial(input)
	failure, err := schemaFor(dto.ErrorResponse{})
	if err != nil {
		return fmt.Errorf("error schema: %w", err)
	}
	message, err := schemaFor(dto.MessageResponse{})
	if err != nil {
		return fmt.Errorf("message schema: %w", err)
	}

	list := openapi3.NewArraySchema()
	list.Items = record

	tags := []string{res.Tag}
	if res.Tag == "" {
		tags = []string{res.Name}
	}
	notFound := response(res.Entity+" not found", failure)
	badRequest := response("invalid request body", failure)

	collection := &openapi3.PathItem{
		Get: operation(tags, "list"+res.Entity, "List "+res.Entity+" records",
			[]*openapi3.Parameter{
				openapi3.NewQueryParameter("skip").WithSchema(openapi3.NewIntegerSchema().WithMin(0)),
				openapi3.NewQueryParameter("limit").WithSchema(openapi3.NewIntegerSchema().WithMin(0)),
			},
			nil,
			map[int]*openapi3.Response{
				http.StatusOK: response("records in insertion order", openapi3.NewSchemaRef("", list)),
			}),
		Post: operation(tags, "create"+res.Entity, "Create a "+res.Entity, nil, input,
			map[int]*openapi3.Response{
				http.StatusOK:         response("created record", record),
				http.StatusBadRequest: badRequest,
			}),
	}

	idParam := []*openapi3.Parameter{openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema())}
	item := &openapi3.PathItem{
		Get: operation(tags, "get"+res.Entity, "Get a "+res.Entity, idParam, nil,
			map[int]*openapi3.Response{
				http.StatusOK:       response("record", record),
				http.StatusNotFound: notFound,
			}),
		Put: operation(tags, "update"+res.Entity, "Partially update a "+res.Entity, idParam, patch,
			map[int]*openapi3.Response{
				http.StatusOK:         response("updated record", record),
				http.StatusBadRequest: badRequest,
				http.StatusNotFound:   notFound,
			}),
		Delete: operation(tags, "delete"+res.Entity, "Delete a "+res.Entity, idParam, nil,
			map[int]*openapi3.Response{
				http.StatusOK:       response(res.Entity+" deleted", message),
				http.StatusNotFound: notFound,
			}),
	}

	events := &openapi3.PathItem{
		Get: operation(tags, "watch"+res.Entity, "Stream "+res.Entity+" changes", nil, nil,
			map[int]*openapi3.Response{
				http.StatusOK: openapi3.NewResponse().
					WithDescription("server-sent events").
					WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/event-stream"})),
			}),
	}

	base := res.Prefix + "/" + res.Name
	doc.Paths.Set(base+"/", collection)
	doc.Paths.Set(base+"/{id}", item)
	doc.Paths.Set(base+"/events", events)
	return nil
}

func schemaFor(value any) (*openapi3.SchemaRef, error) {
	ref, err := openapi3gen.NewSchemaRefForValue(value, openapi3.Schemas{})
	if err != nil {
		return nil, err
	}
	if ref.Value != nil {
		ref.Value.Required = requiredFields(reflect.TypeOf(value))
	}
	return ref, nil
}

// requiredFields lists the JSON names of fields tagged binding:"required".
func requiredFields(t reflect.Type) []string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !strings.Contains(f.Tag.Get("binding"), "required") {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	return names
}

func partial(ref *openapi3.SchemaRef) *openapi3.SchemaRef {
	if ref == nil || ref.Value == nil {
		return ref
	}
	clone := *ref.Value
	clone.Required = nil
	return openapi3.NewSchemaRef("", &clone)
}

func operation(tags []string, id, summary string, params []*openapi3.Parameter, body *openapi3.SchemaRef, responses map[int]*openapi3.Response) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Tags = tags
	op.OperationID = id
	op.Summary = summary
	for _, p := range params {
		op.AddParameter(p)
	}
	if body != nil {
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(body),
		}
	}
	for status, r := range responses {
		op.AddResponse(status, r)
	}
	return op
}

func response(description string, schema *openapi3.SchemaRef) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(schema)
}
