// Package docs registers the OpenAPI document served at /swagger.
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
        "/generate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Extracts the résumé text, derives a bio and skills, renders the theme and zips it.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "Generate portfolio",
                "parameters": [
                    {"type": "file", "description": "Résumé PDF", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Theme name (neo, glass, ...)", "name": "theme", "in": "formData", "required": true},
                    {"type": "string", "description": "Primary colour, default #00d2ff", "name": "primary_color", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ApiError"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/presenter.ApiError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/presenter.ApiError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/presenter.ApiError"}}
                }
            }
        },
        "/preview/{job_id}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["portfolio"],
                "summary": "Preview generated site",
                "parameters": [{"type": "string", "description": "Job id", "name": "job_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "301": {"description": "redirect to the trailing-slash form", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ApiError"}}
                }
            }
        },
        "/preview/{job_id}/style.css": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["portfolio"],
                "summary": "Preview stylesheet",
                "parameters": [{"type": "string", "description": "Job id", "name": "job_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ApiError"}}
                }
            }
        },
        "/download/{job_id}": {
            "get": {
                "produces": ["application/zip"],
                "tags": ["portfolio"],
                "summary": "Download generated site",
                "parameters": [{"type": "string", "description": "Job id", "name": "job_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ApiError"}}
                }
            }
        },
        "/api/v1/themes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "List themes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register user",
                "parameters": [{"description": "registration payload", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.credentialsRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ApiError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/presenter.ApiError"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"description": "login payload", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.credentialsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.ApiError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ApiError"}}
                }
            }
        },
        "/api/v1/jobs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List my portfolios",
                "parameters": [
                    {"type": "integer", "description": "page size (1..200, default 20)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ApiError"}}
                }
            }
        },
        "/api/v1/jobs/{job_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Get my portfolio",
                "parameters": [{"type": "string", "description": "Job id", "name": "job_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ApiError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ApiError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Delete my portfolio",
                "parameters": [{"type": "string", "description": "Job id", "name": "job_id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.ApiError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.ApiError"}}
                }
            }
        },
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/api/v1/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Report"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/health.Report"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.GenerateResponse": {
            "type": "object",
            "properties": {
                "job_id": {"type": "string"},
                "preview_url": {"type": "string"}
            }
        },
        "handlers.credentialsRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.authResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "health.Report": {
            "type": "object",
            "properties": {
                "checks": {"type": "object", "additionalProperties": {"type": "string"}},
                "ready": {"type": "boolean"}
            }
        },
        "presenter.ApiError": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "detail": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Accepts \"Bearer <JWT>\" or a bare \"<JWT>\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "portfolio-optimiser API",
	Description:      "Turns an uploaded résumé PDF into a themed static portfolio site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
