// Package docs holds the swagger spec served at /swagger.
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
        "/parcel-types": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reference"],
                "summary": "List parcel types",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.ParcelTypeResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/parcels": {
            "get": {
                "description": "List the caller's parcels, filtered and paginated",
                "produces": ["application/json"],
                "tags": ["Parcels"],
                "summary": "List parcels",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number, from 1", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size, 1..100", "name": "page_size", "in": "query"},
                    {"type": "integer", "description": "Parcel type filter", "name": "parcel_type_id", "in": "query"},
                    {"type": "boolean", "description": "Only priced (true) or unpriced (false) parcels", "name": "has_delivery_cost", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/parcels/registration": {
            "post": {
                "description": "Accept a parcel for asynchronous registration; the delivery cost is calculated in the background",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Parcels"],
                "summary": "Register parcel",
                "parameters": [
                    {"description": "Parcel", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/parcels/{id}": {
            "get": {
                "description": "Get one of the caller's parcels",
                "produces": ["application/json"],
                "tags": ["Parcels"],
                "summary": "Get parcel",
                "parameters": [
                    {"type": "integer", "description": "Parcel ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ParcelResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/parcels/{id}/assign-company": {
            "post": {
                "description": "Bind a parcel to a transport company; a parcel can be assigned only once",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Parcels"],
                "summary": "Assign transport company",
                "parameters": [
                    {"type": "integer", "description": "Parcel ID", "name": "id", "in": "path", "required": true},
                    {"description": "Company", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AssignCompanyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ParcelResponse"}},
                    "400": {"description": "invalid input or already assigned", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rates/usd": {
            "get": {
                "description": "Get the USD rate currently used for delivery cost calculation",
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "Get cached USD rate",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GetUSDResponse"}},
                    "404": {"description": "rate not cached yet", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rates/usd/refresh": {
            "post": {
                "description": "Enqueue a background fetch of the live USD rate into the cache",
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "Refresh USD rate",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.ScheduleRefreshResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/transport-companies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reference"],
                "summary": "List transport companies",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.TransportCompanyResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.AssignCompanyRequest": {
            "type": "object",
            "properties": {
                "company_id": {"type": "integer", "example": 1}
            }
        },
        "handler.GetUSDResponse": {
            "type": "object",
            "properties": {
                "currency": {"type": "string", "example": "USD"},
                "value": {"type": "number", "example": 92.5}
            }
        },
        "handler.ListResponse": {
            "type": "object",
            "properties": {
                "parcels": {"type": "array", "items": {"$ref": "#/definitions/handler.ParcelResponse"}},
                "total": {"type": "integer", "example": 12}
            }
        },
        "handler.ParcelResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string", "example": "2025-01-02T15:04:05Z"},
                "delivery_cost": {"type": "string", "example": "1462.5"},
                "id": {"type": "integer", "example": 42},
                "name": {"type": "string", "example": "Laptop"},
                "parcel_type_id": {"type": "integer", "example": 2},
                "parcel_type_name": {"type": "string", "example": "Electronics"},
                "transport_company_id": {"type": "integer", "example": 1},
                "value": {"type": "number", "example": 1500},
                "weight": {"type": "number", "example": 2.5}
            }
        },
        "handler.ParcelTypeResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 2},
                "name": {"type": "string", "example": "Electronics"}
            }
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 255, "example": "Laptop"},
                "parcel_type_id": {"type": "integer", "example": 2},
                "value": {"type": "number", "example": 1500},
                "weight": {"type": "number", "example": 2.5}
            }
        },
        "handler.RegisterResponse": {
            "type": "object",
            "properties": {
                "task_id": {"type": "string", "example": "77b5d9f5-0569-47e3-aee2-f659d59fbd97"}
            }
        },
        "handler.ScheduleRefreshResponse": {
            "type": "object",
            "properties": {
                "task_id": {"type": "string", "example": "0b7c1c1e-4d0e-4a53-9b8f-5f3f2a1d9c11"}
            }
        },
        "handler.TransportCompanyResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "DHL"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
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
	Title:            "Parcels API",
	Description:      "Parcel registration with delivery cost calculation and transport company assignment.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
