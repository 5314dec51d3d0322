// Package docs is generated by swaggo/swag. Regenerate with `swag init -g cmd/web/main.go`.
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
        "/functions/send-notification": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Send a notification to a related user",
                "parameters": [
                    {
                        "description": "Notification",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.SendNotificationRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SendNotificationResponse"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/functions/verify-social-platform": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Verify that a social platform URL points at the claimed profile",
                "parameters": [
                    {
                        "description": "Platform",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.VerifyPlatformRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.VerifyPlatformResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.SendNotificationRequest": {
            "type": "object",
            "properties": {
                "recipientUserId": {"type": "string"},
                "type": {"type": "string", "enum": ["collab_request", "collab_accepted", "collab_completed", "collab_interest"]},
                "title": {"type": "string"},
                "message": {"type": "string"},
                "senderName": {"type": "string"},
                "data": {"type": "object"}
            }
        },
        "dto.SendNotificationResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "dto.VerifyPlatformRequest": {
            "type": "object",
            "properties": {
                "platformId": {"type": "string"},
                "platformName": {"type": "string"},
                "handle": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "dto.VerifyPlatformResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "verified": {"type": "boolean"},
                "valid": {"type": "boolean"},
                "displayName": {"type": "string"},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
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
	Title:            "CollabEx API",
	Description:      "Influencer and brand collaboration backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
