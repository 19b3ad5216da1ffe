// Package auth holds the generated OpenAPI document served at /swagger/.
// Regenerate with: swag init -g internal/auth/http/router.go -o api/auth
package auth

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Zeepkist GTR",
            "url": "https://github.com/zeepkist"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/external/confirm": {
            "get": {
                "description": "Completes the Steam OpenID handshake. On success the browser is redirected to\nthe original redirectUrl with the token pair attached as a base64 \"token\"\nquery parameter.",
                "tags": ["External"],
                "summary": "External Login Confirmation",
                "responses": {
                    "302": {"description": "Found"},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "500": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/external/login": {
            "get": {
                "description": "Starts the Steam OpenID browser login. The browser is redirected to the Steam\ncommunity login page and returns to the confirm endpoint, which forwards the\ntoken pair to redirectUrl.",
                "tags": ["External"],
                "summary": "External Login",
                "parameters": [
                    {
                        "type": "string",
                        "description": "absolute URL to send the token to after login",
                        "name": "redirectUrl",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/external/refresh": {
            "post": {
                "description": "Rotates an external client's token pair. The presented refresh token is single use.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["External"],
                "summary": "External Token Refresh",
                "parameters": [
                    {
                        "description": "steamId, refreshToken",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.externalRefreshRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "token pair", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "500": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/game/login": {
            "post": {
                "description": "Authenticates a game client with a Steam session ticket and issues a token pair.\nRequests from mod builds older than the configured minimum are rejected.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "Game Login",
                "parameters": [
                    {
                        "description": "modVersion, steamId, authenticationTicket",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.gameLoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "token pair", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "500": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/game/refresh": {
            "post": {
                "description": "Rotates a game client's token pair. The presented refresh token is single use.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Game"],
                "summary": "Game Token Refresh",
                "parameters": [
                    {
                        "description": "modVersion, steamId, refreshToken",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.gameRefreshRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "token pair", "schema": {"$ref": "#/definitions/domain.TokenResponse"}},
                    "400": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "401": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "403": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "404": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}},
                    "500": {"description": "error, error_description", "schema": {"$ref": "#/definitions/httpx.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe returning basic service health, uptime and version.\nAlways returns 200 OK while the process is running.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/http.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe checking critical dependencies. Returns 503 while the\ndatabase is unreachable.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/http.HealthResponse"}},
                    "503": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/http.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.TokenResponse": {
            "type": "object",
            "properties": {
                "accessExpiry": {"type": "string"},
                "accessToken": {"type": "string"},
                "externalId": {"type": "string"},
                "refreshExpiry": {"type": "string"},
                "refreshToken": {"type": "string"},
                "userId": {"type": "integer"}
            }
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/http.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "http.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"}
            }
        },
        "http.externalRefreshRequest": {
            "type": "object",
            "properties": {
                "refreshToken": {"type": "string"},
                "steamId": {"type": "string"}
            }
        },
        "http.gameLoginRequest": {
            "type": "object",
            "properties": {
                "authenticationTicket": {"type": "string"},
                "modVersion": {"type": "string"},
                "steamId": {"type": "string"}
            }
        },
        "http.gameRefreshRequest": {
            "type": "object",
            "properties": {
                "modVersion": {"type": "string"},
                "refreshToken": {"type": "string"},
                "steamId": {"type": "string"}
            }
        },
        "httpx.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Zeepkist GTR Authentication Service API",
	Description:      "Token issuance and refresh for the Zeepkist GTR leaderboard platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
