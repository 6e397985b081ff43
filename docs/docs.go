// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/onboarding-api/main.go
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
		"/auth/register": {
			"post": {
				"summary": "Register a new merchant",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.credentialsRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.loginResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"summary": "Sign in",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.credentialsRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.loginResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/auth/logout": {
			"post": {
				"summary": "Sign out",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/auth/2fa/verify": {
			"post": {
				"summary": "Complete two-factor sign in",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.challengeRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.loginResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"429": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/auth/2fa/cancel": {
			"post": {
				"summary": "Cancel two-factor sign in",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/v1/session": {
			"get": {
				"summary": "Current surface",
				"tags": [
					"session"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.surfaceResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/v1/setup-2fa": {
			"get": {
				"summary": "Two-factor status",
				"tags": [
					"two-factor"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.mfaStatusResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			},
			"post": {
				"summary": "Drive two-factor setup",
				"tags": [
					"two-factor"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.mfaSetupRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.mfaEnrollmentResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/v1/verify-2fa": {
			"post": {
				"summary": "Verify a two-factor code",
				"description": "action=setup (default, alias enable) checks the code of a pending setup and turns two-factor on; action=check verifies an authenticator code against the enabled secret. Backup codes are only accepted at sign-in.",
				"tags": [
					"two-factor"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.mfaVerifyRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.mfaStatusResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"429": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/v1/registration/steps/{step}": {
			"post": {
				"summary": "Validate one wizard step",
				"tags": [
					"registration"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "step",
						"required": true,
						"type": "integer"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/wizard.Draft"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.stepValidationResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/v1/registration": {
			"post": {
				"summary": "Finish the wizard",
				"tags": [
					"registration"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/wizard.Draft"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.CompanyApplication"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"500": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/admin/login": {
			"post": {
				"summary": "Admin sign in",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.credentialsRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.loginResponse"
						}
					},
					"401": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/admin/session": {
			"get": {
				"summary": "Admin console gate",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.surfaceResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/admin/v1/applications": {
			"get": {
				"summary": "List company applications",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "query",
						"name": "status",
						"type": "string",
						"enum": [
							"pending",
							"under_review",
							"approved",
							"rejected"
						]
					},
					{
						"in": "query",
						"name": "page",
						"type": "integer"
					},
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.applicationPageResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/admin/v1/applications/{id}": {
			"get": {
				"summary": "Get a company application",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.CompanyApplication"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/admin/v1/applications/{id}/review": {
			"post": {
				"summary": "Move an application under review",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.CompanyApplication"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/admin/v1/applications/{id}/approve": {
			"post": {
				"summary": "Approve an application",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.CompanyApplication"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/admin/v1/applications/{id}/reject": {
			"post": {
				"summary": "Reject an application",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "id",
						"required": true,
						"type": "string"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.rejectRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.CompanyApplication"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/admin/v1/settings/{key}": {
			"put": {
				"summary": "Update a platform setting",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "path",
						"name": "key",
						"required": true,
						"type": "string"
					},
					{
						"in": "body",
						"name": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.settingRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/domain.PlatformSetting"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/api.errorResponse"
						}
					}
				}
			}
		},
		"/admin/v1/stats": {
			"get": {
				"summary": "Admin overview",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.overviewResponse"
						}
					}
				}
			}
		},
		"/admin/v1/activity": {
			"get": {
				"summary": "Recent audit entries",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "query",
						"name": "limit",
						"type": "integer"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	},
	"definitions": {
		"api.errorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"fields": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"field": {
								"type": "string"
							},
							"message": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"handler.credentialsRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"handler.challengeRequest": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				}
			}
		},
		"handler.loginResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"token": {
					"type": "string"
				},
				"challenge_token": {
					"type": "string"
				},
				"expires_at": {
					"type": "string"
				},
				"identity": {
					"type": "object",
					"properties": {
						"id": {
							"type": "string"
						},
						"email": {
							"type": "string"
						},
						"role": {
							"type": "string"
						}
					}
				},
				"surface": {
					"$ref": "#/definitions/domain.Surface"
				}
			}
		},
		"handler.surfaceResponse": {
			"type": "object",
			"properties": {
				"surface": {
					"$ref": "#/definitions/domain.Surface"
				}
			}
		},
		"handler.mfaSetupRequest": {
			"type": "object",
			"properties": {
				"action": {
					"type": "string",
					"enum": [
						"enable",
						"disable",
						"confirm",
						"cancel"
					]
				},
				"confirm": {
					"type": "boolean"
				}
			}
		},
		"handler.mfaVerifyRequest": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string"
				},
				"action": {
					"type": "string",
					"enum": [
						"setup",
						"enable",
						"check"
					]
				}
			}
		},
		"handler.mfaStatusResponse": {
			"type": "object",
			"properties": {
				"is_enabled": {
					"type": "boolean"
				},
				"state": {
					"type": "string"
				}
			}
		},
		"handler.mfaEnrollmentResponse": {
			"type": "object",
			"properties": {
				"secret": {
					"type": "string"
				},
				"qrCodeUrl": {
					"type": "string"
				},
				"backupCodes": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"handler.stepValidationResponse": {
			"type": "object",
			"properties": {
				"step": {
					"type": "integer"
				},
				"valid": {
					"type": "boolean"
				},
				"can_proceed": {
					"type": "boolean"
				},
				"errors": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"field": {
								"type": "string"
							},
							"message": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"handler.rejectRequest": {
			"type": "object",
			"properties": {
				"reason": {
					"type": "string"
				}
			}
		},
		"handler.settingRequest": {
			"type": "object",
			"properties": {
				"value": {
					"type": "string"
				}
			}
		},
		"handler.applicationPageResponse": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.CompanyApplication"
					}
				},
				"total": {
					"type": "integer"
				},
				"page": {
					"type": "integer"
				},
				"limit": {
					"type": "integer"
				},
				"total_pages": {
					"type": "integer"
				}
			}
		},
		"handler.overviewResponse": {
			"type": "object",
			"properties": {
				"pending": {
					"type": "integer"
				},
				"under_review": {
					"type": "integer"
				},
				"recent_activity": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/domain.ActivityLog"
					}
				},
				"errors": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"domain.Surface": {
			"type": "object",
			"properties": {
				"kind": {
					"type": "string"
				},
				"stage": {
					"type": "string"
				},
				"application_id": {
					"type": "string"
				},
				"rejection_reason": {
					"type": "string"
				}
			}
		},
		"domain.CompanyApplication": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"owner_identity_id": {
					"type": "string"
				},
				"business_type": {
					"type": "string"
				},
				"tax_id": {
					"type": "string"
				},
				"legal_name": {
					"type": "string"
				},
				"invoice_name": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"approved_by": {
					"type": "string"
				},
				"approved_at": {
					"type": "string"
				},
				"reviewed_at": {
					"type": "string"
				},
				"rejection_reason": {
					"type": "string"
				},
				"version": {
					"type": "integer"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"domain.ActivityLog": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"action": {
					"type": "string"
				},
				"resource_type": {
					"type": "string"
				},
				"resource_id": {
					"type": "string"
				},
				"actor_id": {
					"type": "string"
				},
				"details": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"domain.PlatformSetting": {
			"type": "object",
			"properties": {
				"key": {
					"type": "string"
				},
				"value": {
					"type": "string"
				},
				"updated_by": {
					"type": "string"
				},
				"updated_at": {
					"type": "string"
				}
			}
		},
		"wizard.Draft": {
			"type": "object",
			"properties": {
				"current_step": {
					"type": "integer"
				},
				"business": {
					"type": "object"
				},
				"financial": {
					"type": "object"
				},
				"representative": {
					"type": "object"
				},
				"address": {
					"type": "object"
				},
				"documents": {
					"type": "object"
				}
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Merchant Onboarding API",
	Description:      "Account-stage resolution, registration wizard, admin review and two-factor authentication for merchant onboarding.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
