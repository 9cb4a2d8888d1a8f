// Package docs registers the swagger document served at /swagger/.
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
        "/operations": {
            "get": {
                "description": "Get every operation a report can run",
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "List operations",
                "responses": {
                    "200": {
                        "description": "Available operations",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/pipeline.Operation"}}
                    }
                }
            }
        },
        "/reports": {
            "post": {
                "description": "Run the requested operations. Without sources the dataset loaded at startup is used.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Run a report",
                "parameters": [
                    {
                        "description": "Report configuration",
                        "name": "report",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.ReportSpec"}
                    }
                ],
                "responses": {
                    "200": {"description": "Report results", "schema": {"$ref": "#/definitions/model.Report"}},
                    "400": {"description": "Invalid report spec", "schema": {"type": "string"}},
                    "500": {"description": "Internal server error", "schema": {"type": "string"}}
                }
            }
        },
        "/products/stats": {
            "get": {
                "description": "Count, min, max and average list price per size or color, ordered by key",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Product statistics per group",
                "parameters": [
                    {"type": "string", "default": "size", "description": "size or color", "name": "groupBy", "in": "query"},
                    {"type": "integer", "description": "accumulate groups concurrently with this many workers", "name": "workers", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Group statistics", "schema": {"$ref": "#/definitions/handler.GroupStatsResponse"}},
                    "400": {"description": "Invalid query", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "pipeline.Operation": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "usesSales": {"type": "boolean"}
            }
        },
        "model.Source": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "model.Sources": {
            "type": "object",
            "properties": {
                "products": {"$ref": "#/definitions/model.Source"},
                "sales": {"$ref": "#/definitions/model.Source"}
            }
        },
        "model.Export": {
            "type": "object",
            "properties": {
                "file": {"type": "string"},
                "dir": {"type": "string"}
            }
        },
        "model.ReportSpec": {
            "type": "object",
            "properties": {
                "sources": {"$ref": "#/definitions/model.Sources"},
                "operations": {"type": "array", "items": {"type": "string"}},
                "color": {"type": "string"},
                "groupBy": {"type": "string"},
                "workers": {"type": "integer"},
                "export": {"$ref": "#/definitions/model.Export"},
                "timeout": {"type": "string"}
            }
        },
        "aggregate.GroupStatistic-string": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "count": {"type": "integer"},
                "min": {"type": "string"},
                "max": {"type": "string"},
                "sum": {"type": "string"},
                "average": {"type": "string"}
            }
        },
        "model.OperationResult": {
            "type": "object",
            "properties": {
                "operation": {"type": "string"},
                "count": {"type": "integer"},
                "value": {"type": "string"},
                "groupBy": {"type": "string"},
                "groups": {"type": "array", "items": {"$ref": "#/definitions/aggregate.GroupStatistic-string"}},
                "noData": {"type": "boolean"},
                "text": {"type": "string"}
            }
        },
        "model.StageMetrics": {
            "type": "object",
            "properties": {
                "stage": {"type": "string"},
                "startTime": {"type": "string"},
                "duration": {"type": "integer"},
                "recordsProcessed": {"type": "integer"},
                "rejected": {"type": "integer"}
            }
        },
        "model.ExportResult": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "path": {"type": "string"},
                "results": {"type": "integer"},
                "exportedAt": {"type": "string"}
            }
        },
        "model.Report": {
            "type": "object",
            "properties": {
                "runId": {"type": "string"},
                "startedAt": {"type": "string"},
                "duration": {"type": "integer"},
                "products": {"type": "integer"},
                "sales": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/model.OperationResult"}},
                "stages": {"type": "array", "items": {"$ref": "#/definitions/model.StageMetrics"}},
                "rejected": {"type": "array", "items": {"type": "string"}},
                "export": {"$ref": "#/definitions/model.ExportResult"}
            }
        },
        "handler.GroupStatsResponse": {
            "type": "object",
            "properties": {
                "groupBy": {"type": "string"},
                "groups": {"type": "array", "items": {"$ref": "#/definitions/aggregate.GroupStatistic-string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Sales Stats API",
	Description:      "Aggregate product and sales collections: counts, sums, min/max/average and per-group statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
