// Package docs holds the OpenAPI description served at /swagger/.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/upload/": {
            "post": {
                "description": "Parses the file, stores it, computes summary statistics and generates a PDF report",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Upload an equipment CSV",
                "parameters": [
                    {"type": "file", "description": "CSV or XLSX file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/datasets/": {
            "get": {
                "description": "Newest first. Invalid page values fall back to page 1 with the default page size.",
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "List uploaded datasets",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DatasetPage"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/datasets/export/": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["datasets"],
                "summary": "Export history as XLSX",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/datasets/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Get a dataset",
                "parameters": [{"type": "integer", "description": "Dataset ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HistoryItem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "delete": {
                "tags": ["datasets"],
                "summary": "Delete a dataset",
                "parameters": [{"type": "integer", "description": "Dataset ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/datasets/{id}/preview/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["datasets"],
                "summary": "Preview a dataset",
                "parameters": [{"type": "integer", "description": "Dataset ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Preview"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/datasets/{id}/charts/{kind}.png": {
            "get": {
                "produces": ["image/png"],
                "tags": ["datasets"],
                "summary": "Render a dataset chart",
                "parameters": [
                    {"type": "integer", "description": "Dataset ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "enum": ["pie", "bar"], "description": "pie or bar", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/media/reports/{name}": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["reports"],
                "summary": "Download a PDF report",
                "parameters": [{"type": "string", "description": "Report file name", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.Summary": {
            "type": "object",
            "properties": {
                "total_rows": {"type": "integer"},
                "average_pressure": {"type": "number"},
                "average_temperature": {"type": "number"},
                "type_distribution": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "models.UploadResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/models.Summary"},
                "report": {"type": "string"},
                "dataset_id": {"type": "integer"}
            }
        },
        "models.HistoryItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "filename": {"type": "string"},
                "uploaded_at": {"type": "string"},
                "summary": {"$ref": "#/definitions/models.Summary"},
                "report_url": {"type": "string"}
            }
        },
        "models.DatasetPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.HistoryItem"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"}
            }
        },
        "models.Preview": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"type": "object"}}
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
	Title:            "Chemical Equipment Visualizer API",
	Description:      "Upload equipment CSVs, browse upload history, preview rows and download PDF reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
