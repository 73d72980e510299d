package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutor Marketplace API",
        "description": "Tutors publish weekly availability per subject; students search it by weekday and time of day.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classes", "description": "Availability search and class registration"},
        {"name": "Subjects", "description": "Subject catalogue"},
        {"name": "Connections", "description": "Student to tutor contact counter"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check, pings the database",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/v1/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "Search available classes",
                "description": "Returns each class of the subject that has a slot on week_day covering time. Slots are half-open: from is inclusive, to is exclusive.",
                "parameters": [
                    {"name": "subject", "in": "query", "required": true, "type": "string"},
                    {"name": "week_day", "in": "query", "required": true, "type": "integer", "minimum": 0, "maximum": 6},
                    {"name": "time", "in": "query", "required": true, "type": "string", "pattern": "^[0-9]{1,2}:[0-9]{2}$"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassSearchEnvelope"}},
                    "400": {"description": "MISSING_SEARCH_PARAMETER, INVALID_TIME_FORMAT or VALIDATION_ERROR", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Register a class",
                "description": "Creates the tutor, the class and every schedule slot in one transaction.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "VALIDATION_ERROR or REGISTRATION_FAILED", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/classes/export": {
            "get": {
                "tags": ["Classes"],
                "summary": "Export search results",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "subject", "in": "query", "required": true, "type": "string"},
                    {"name": "week_day", "in": "query", "required": true, "type": "integer"},
                    {"name": "time", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Invalid filters", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "FEATURE_DISABLED", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/connections": {
            "get": {
                "tags": ["Connections"],
                "summary": "Count connections",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Connections"],
                "summary": "Record a connection with a tutor",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateConnectionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Tutor not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ScheduleEntry": {
            "type": "object",
            "properties": {
                "week_day": {"type": "integer", "minimum": 0, "maximum": 6},
                "from": {"type": "string", "example": "09:00"},
                "to": {"type": "string", "example": "10:00", "description": "exclusive; 24:00 allowed"}
            },
            "required": ["week_day", "from", "to"]
        },
        "RegisterClassRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "avatar": {"type": "string", "format": "uri"},
                "whatsapp": {"type": "string"},
                "bio": {"type": "string"},
                "subject": {"type": "string"},
                "cost": {"type": "number"},
                "schedule": {
                    "type": "array",
                    "minItems": 1,
                    "items": {"$ref": "#/definitions/ScheduleEntry"}
                }
            },
            "required": ["name", "avatar", "whatsapp", "bio", "subject", "cost", "schedule"]
        },
        "CreateConnectionRequest": {
            "type": "object",
            "properties": {
                "tutor_id": {"type": "integer"}
            },
            "required": ["tutor_id"]
        },
        "ClassSearchResult": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "subject": {"type": "string"},
                "cost": {"type": "number"},
                "tutor_id": {"type": "integer"},
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "whatsapp": {"type": "string"},
                "bio": {"type": "string"}
            }
        },
        "ClassSearchEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ClassSearchResult"}
                },
                "meta": {"type": "object"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
