package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Showcase API",
        "description": "Magic-link submission and public catalog API for the student showcase site",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Magic-link login flow"},
        {"name": "Submissions", "description": "Authenticated submission management"},
        {"name": "Catalog", "description": "Public showcase catalog"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/request-magic-link": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Request a login link",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MagicLinkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MagicLinkResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/auth/verify-magic-link": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Verify a login link",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VerifyMagicLinkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/VerifyMagicLinkResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/APIError"}},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/submissions/me": {
            "get": {
                "tags": ["Submissions"],
                "summary": "Get own submission",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Submission"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "put": {
                "tags": ["Submissions"],
                "summary": "Update own submission",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Submission"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/APIError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/submissions/upload-image": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Upload an image",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UploadResponse"}},
                    "400": {"description": "Invalid upload", "schema": {"$ref": "#/definitions/APIError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/projects": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Project"}}}
                }
            }
        },
        "/studios": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List studios",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Studio"}}}
                }
            }
        },
        "/filters": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List filter options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Filters"}}
                }
            }
        }
    },
    "definitions": {
        "MagicLinkRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            },
            "required": ["email"]
        },
        "MagicLinkResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "submissionId": {"type": "string"},
                "loginUrl": {"type": "string"}
            }
        },
        "VerifyMagicLinkRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            },
            "required": ["token"]
        },
        "VerifyMagicLinkResponse": {
            "type": "object",
            "properties": {
                "sessionToken": {"type": "string"},
                "email": {"type": "string"},
                "submissionId": {"type": "string"},
                "submission": {"$ref": "#/definitions/Submission"}
            }
        },
        "Submission": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "_type": {"type": "string"},
                "submittedBy": {"type": "string"},
                "title": {"type": "string"},
                "slug": {"type": "object"},
                "poster_image": {"type": "object"},
                "poster_image_url": {"type": "string"},
                "allTags": {"type": "array", "items": {"type": "string"}},
                "allStudents": {"type": "array", "items": {"type": "string"}},
                "home_studio": {"type": "object"},
                "description": {"type": "array", "items": {"type": "object"}},
                "media": {"type": "array", "items": {"type": "object"}}
            }
        },
        "UploadResponse": {
            "type": "object",
            "properties": {
                "assetId": {"type": "string"},
                "image": {"type": "object"},
                "url": {"type": "string"}
            }
        },
        "Project": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "title": {"type": "string"},
                "poster_image_url": {"type": "string"},
                "allTags": {"type": "array", "items": {"type": "string"}},
                "allStudents": {"type": "array", "items": {"type": "string"}},
                "home_studio": {"$ref": "#/definitions/Studio"}
            }
        },
        "Studio": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "title": {"type": "string"},
                "poster_image_url": {"type": "string"},
                "institution": {"type": "object"},
                "demands": {"type": "array", "items": {"type": "object"}}
            }
        },
        "Filters": {
            "type": "object",
            "properties": {
                "tags": {"type": "array", "items": {"type": "object"}},
                "institutions": {"type": "array", "items": {"type": "object"}},
                "demands": {"type": "array", "items": {"type": "object"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
