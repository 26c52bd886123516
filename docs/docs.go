// Package docs registers the OpenAPI document served at /swagger. Regenerate
// with `swag init -g cmd/api/main.go` after changing handler annotations.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token."
        }
    },
    "paths": {
        "/interviews": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interviews"],
                "summary": "Start an interview",
                "responses": {
                    "201": {"description": "Interview started"},
                    "409": {"description": "An interview is already active"}
                }
            }
        },
        "/interviews/answer": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interviews"],
                "summary": "Submit an answer",
                "responses": {
                    "200": {"description": "Interviewer reply"},
                    "404": {"description": "No active session"},
                    "409": {"description": "Another operation is in progress"},
                    "504": {"description": "Dialogue service timed out"}
                }
            }
        },
        "/interviews/answer/audio": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interviews"],
                "summary": "Submit a recorded answer",
                "responses": {
                    "200": {"description": "Interviewer reply"},
                    "404": {"description": "No active session"},
                    "500": {"description": "Transcription failed"}
                }
            }
        },
        "/interviews/end": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interviews"],
                "summary": "End the interview",
                "responses": {
                    "200": {"description": "Interview closed"},
                    "404": {"description": "No active session"}
                }
            }
        },
        "/interviews/metrics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interviews"],
                "summary": "Live behavioral metrics",
                "responses": {
                    "200": {"description": "Current snapshot"},
                    "404": {"description": "No active session"}
                }
            }
        },
        "/interviews/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interviews"],
                "summary": "Interview history",
                "responses": {
                    "200": {"description": "Past interviews"}
                }
            }
        },
        "/interviews/{session_id}/report": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Interviews"],
                "summary": "Interview report",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Stored report"},
                    "404": {"description": "Unknown session"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Interview Coach API",
	Description:      "API for AI mock interviews with live behavioral metrics tracking",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
