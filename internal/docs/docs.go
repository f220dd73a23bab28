// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/app/main.go -o internal/docs
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
        "/admin/sync": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Queues a reconciliation of the remote catalog. With wait=true the run happens inside the request and its result is returned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Trigger a sync",
                "parameters": [
                    {
                        "description": "Entity type (defaults to starships)",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/handler.TriggerSyncRequest"}
                    },
                    {
                        "type": "boolean",
                        "description": "Run synchronously",
                        "name": "wait",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reconcile.Result"}},
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/admin/sync/status": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns the sync checkpoint for starships and the size of the local mirror",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Sync status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SyncStatusResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.SuccessResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "handler.TriggerSyncRequest": {
            "type": "object",
            "required": ["entity_type"],
            "properties": {"entity_type": {"type": "string"}}
        },
        "handler.SyncStatusResponse": {
            "type": "object",
            "properties": {
                "entity_type": {"type": "string"},
                "running": {"type": "boolean"},
                "last_synced": {"type": "string"},
                "never_synced": {"type": "boolean"},
                "starships": {"type": "integer"},
                "manufacturer_links": {"type": "integer"}
            }
        },
        "reconcile.Result": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "entity_type": {"type": "string"},
                "started_at": {"type": "string"},
                "duration": {"type": "integer"},
                "remote_count": {"type": "integer"},
                "pruned": {"type": "integer"},
                "prune_batches": {"type": "integer"},
                "inserted": {"type": "integer"},
                "updated": {"type": "integer"},
                "manufacturers_created": {"type": "integer"},
                "links_created": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Starships Backend API",
	Description:      "Admin surface of the SWAPI starship mirror.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
