// Package docs registers the Swagger document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"Bearer": []}],
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["auth"], "summary": "Create an account", "security": [],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SignupInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/UserView"}}, "400": {"description": "Invalid input"}, "409": {"description": "Email already registered"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Log in with email and password", "security": [],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResult"}}, "401": {"description": "Wrong email or password"}}
            }
        },
        "/auth/guest": {
            "post": {
                "tags": ["auth"], "summary": "Log in as guest", "security": [],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResult"}}}
            }
        },
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Revoke the current token", "responses": {"204": {"description": "No Content"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UserView"}}}}},
        "/board": {"get": {"tags": ["board"], "summary": "Tasks grouped into the four columns", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Board"}}}}},
        "/summary": {"get": {"tags": ["board"], "summary": "Counts per column and next urgent deadline", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Summary"}}}}},
        "/search": {
            "get": {
                "tags": ["board"], "summary": "Filter the board by title or description",
                "parameters": [{"in": "query", "name": "q", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Board"}}}
            }
        },
        "/tasks": {
            "get": {"tags": ["tasks"], "summary": "List tasks", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["tasks"], "summary": "Create a task",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/TaskInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Task"}}, "400": {"description": "Invalid input"}}
            }
        },
        "/tasks/{id}": {
            "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
            "get": {"tags": ["tasks"], "summary": "Get a task", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}}, "404": {"description": "Not found"}}},
            "put": {
                "tags": ["tasks"], "summary": "Edit a task",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/TaskInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}}}
            },
            "delete": {"tags": ["tasks"], "summary": "Delete a task", "responses": {"204": {"description": "No Content"}}}
        },
        "/tasks/{id}/status": {
            "patch": {
                "tags": ["tasks"], "summary": "Move a task to another column",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"status": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Task"}}}
            }
        },
        "/tasks/{id}/subtasks": {
            "post": {
                "tags": ["subtasks"], "summary": "Add a subtask",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SubtaskRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Subtask"}}}
            }
        },
        "/tasks/{id}/subtasks/{subtaskId}": {
            "parameters": [
                {"in": "path", "name": "id", "type": "integer", "required": true},
                {"in": "path", "name": "subtaskId", "type": "string", "required": true}
            ],
            "patch": {
                "tags": ["subtasks"], "summary": "Edit a subtask",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SubtaskRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Subtask"}}}
            },
            "delete": {"tags": ["subtasks"], "summary": "Delete a subtask", "responses": {"204": {"description": "No Content"}}}
        },
        "/tasks/{id}/subtasks/{subtaskId}/toggle": {
            "post": {
                "tags": ["subtasks"], "summary": "Check or uncheck a subtask",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "path", "name": "subtaskId", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Subtask"}}}
            }
        },
        "/contacts": {
            "get": {"tags": ["contacts"], "summary": "Contacts sorted and grouped by letter", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["contacts"], "summary": "Create a contact",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ContactInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Contact"}}}
            }
        },
        "/contacts/{id}": {
            "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
            "get": {"tags": ["contacts"], "summary": "Get a contact", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Contact"}}}},
            "put": {
                "tags": ["contacts"], "summary": "Edit a contact",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ContactInput"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Contact"}}}
            },
            "delete": {"tags": ["contacts"], "summary": "Delete a contact and unassign it", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "SignupInput": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "confirm_password": {"type": "string"}, "accept_policy": {"type": "boolean"}}},
        "LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "UserView": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "initials": {"type": "string"}, "guest": {"type": "boolean"}}},
        "LoginResult": {"type": "object", "properties": {"token": {"type": "string"}, "expires_at": {"type": "integer"}, "user": {"$ref": "#/definitions/UserView"}}},
        "Assignee": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "color": {"type": "string"}}},
        "Subtask": {"type": "object", "properties": {"id": {"type": "string"}, "description": {"type": "string"}, "isChecked": {"type": "boolean"}}},
        "SubtaskRequest": {"type": "object", "properties": {"description": {"type": "string"}}},
        "Task": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "Title": {"type": "string"},
                "Description": {"type": "string"},
                "Assigned_to": {"type": "object", "additionalProperties": {"$ref": "#/definitions/Assignee"}},
                "Due_date": {"type": "string", "format": "date"},
                "Prio": {"type": "string", "enum": ["urgent", "medium", "low"]},
                "Category": {"type": "string", "enum": ["Technical Task", "User Story"]},
                "Subtasks": {"type": "object", "additionalProperties": {"$ref": "#/definitions/Subtask"}},
                "Status": {"type": "string", "enum": ["to do", "in progress", "await feedback", "done"]},
                "timestamp": {"type": "integer"}
            }
        },
        "TaskInput": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "due_date": {"type": "string", "format": "date"},
                "prio": {"type": "string"},
                "category": {"type": "string"},
                "status": {"type": "string"},
                "assigned_to": {"type": "array", "items": {"type": "string"}},
                "subtasks": {"type": "array", "items": {"type": "object", "properties": {"id": {"type": "string"}, "description": {"type": "string"}}}}
            }
        },
        "Column": {"type": "object", "properties": {"status": {"type": "string"}, "column_id": {"type": "string"}, "title": {"type": "string"}, "tasks": {"type": "array", "items": {"$ref": "#/definitions/Task"}}}},
        "Board": {"type": "object", "properties": {"columns": {"type": "array", "items": {"$ref": "#/definitions/Column"}}}},
        "Summary": {"type": "object", "properties": {"to_do": {"type": "integer"}, "in_progress": {"type": "integer"}, "await_feedback": {"type": "integer"}, "done": {"type": "integer"}, "total": {"type": "integer"}, "urgent": {"type": "integer"}, "upcoming_deadline": {"type": "string"}}},
        "Contact": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "color": {"type": "string"}}},
        "ContactInput": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Join board API",
	Description:      "Kanban board, contacts and accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
