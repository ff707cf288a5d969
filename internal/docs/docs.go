// Package docs registra la descripción Swagger de las rutas HTML de pets.
// Se sirve en /swagger/* vía http-swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/pets": {
            "get": {
                "produces": ["text/html"],
                "summary": "List pets",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "summary": "Create a pet",
                "parameters": [
                    {"type": "string", "description": "Name", "name": "pet[name]", "in": "formData", "required": true},
                    {"enum": ["dog", "cat", "bird", "horse"], "type": "string", "description": "Species", "name": "pet[species]", "in": "formData"},
                    {"type": "string", "description": "Address", "name": "pet[address]", "in": "formData"},
                    {"type": "string", "description": "Found on (YYYY-MM-DD)", "name": "pet[found_on]", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/pets/new": {
            "get": {
                "produces": ["text/html"],
                "summary": "New pet form",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["text/html"],
                "summary": "Show a pet",
                "parameters": [
                    {"type": "string", "description": "Pet ID", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "patch": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["text/html"],
                "summary": "Update a pet",
                "parameters": [
                    {"type": "string", "description": "Pet ID", "name": "petID", "in": "path", "required": true},
                    {"type": "string", "description": "Name", "name": "pet[name]", "in": "formData"},
                    {"enum": ["dog", "cat", "bird", "horse"], "type": "string", "description": "Species", "name": "pet[species]", "in": "formData"},
                    {"type": "string", "description": "Address", "name": "pet[address]", "in": "formData"},
                    {"type": "string", "description": "Found on (YYYY-MM-DD)", "name": "pet[found_on]", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Unprocessable Entity"}
                }
            },
            "delete": {
                "summary": "Delete a pet",
                "parameters": [
                    {"type": "string", "description": "Pet ID", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/pets/{petID}/edit": {
            "get": {
                "produces": ["text/html"],
                "summary": "Edit pet form",
                "parameters": [
                    {"type": "string", "description": "Pet ID", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "found-pets",
	Description:      "Server-rendered CRUD for found pets.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
