// Package docs registers the OpenAPI description served under /swagger.
// Regenerate the full path set with `swag init -g cmd/api/main.go`.
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}
        },
        "/api/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/auth/session": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Bootstrap the caller's profile", "responses": {"200": {"description": "OK"}}}
        },
        "/api/auth/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Get own profile", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Update own profile", "responses": {"200": {"description": "OK"}}}
        },
        "/api/auth/points": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Get own points", "responses": {"200": {"description": "OK"}}}
        },
        "/api/reports": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "List all reports", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "File a new report", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/reports/my-reports": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "List the caller's reports", "responses": {"200": {"description": "OK"}}}
        },
        "/api/reports/assigned": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "List reports assigned to the calling patrol", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/api/reports/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Get a report", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/api/reports/{id}/status": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Change a report's status", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/reports/{id}/assign": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Assign a report to a patrol", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/reports/{id}/priority": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Set a report's priority", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/reports/{id}/proof": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Attach proof images to a report", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List user profiles", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/leaderboard": {
            "get": {"tags": ["users"], "summary": "Top users by points", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get a user profile", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}/role": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Change a user's role", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}/ban": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Ban or unban a user", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}/points": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Manually add or remove points", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}/points/history": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Points ledger of a user", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}/stats": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Report statistics of a user", "responses": {"200": {"description": "OK"}}}
        },
        "/api/chat": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["chat"], "summary": "List chat messages visible to the caller", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["chat"], "summary": "Send a chat message", "responses": {"201": {"description": "Created"}}}
        },
        "/api/chat/conversation/{userId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["chat"], "summary": "Messages sent by one user", "responses": {"200": {"description": "OK"}}}
        },
        "/api/chat/conversations": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["chat"], "summary": "One summary per user who has written to support", "responses": {"200": {"description": "OK"}}}
        },
        "/api/chat/{messageId}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["chat"], "summary": "Delete a message", "responses": {"200": {"description": "OK"}}}
        },
        "/api/chat/{userId}/read": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["chat"], "summary": "Mark a conversation as read", "responses": {"200": {"description": "OK"}}}
        },
        "/api/uploads/signature": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["uploads"], "summary": "Sign a direct image upload", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Cars-G Reporting API",
	Description:      "Community incident reporting: reports, patrol workflow, points and support chat.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
