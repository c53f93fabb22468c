package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Data API",
        "description": "Read-only query API over the preprocessed course dataset",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Courses", "description": "Merged course dataset queries"},
        {"name": "Admin", "description": "Operational endpoints"}
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
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses with run metadata",
                "responses": {
                    "200": {"description": "Course summaries plus metadata"},
                    "503": {"description": "Dataset not loaded"}
                }
            }
        },
        "/api/courses/list": {
            "get": {
                "tags": ["Courses"],
                "summary": "List distinct course numbers",
                "responses": {
                    "200": {"description": "Course numbers"}
                }
            }
        },
        "/api/courses/subjects": {
            "get": {
                "tags": ["Courses"],
                "summary": "List distinct subjects",
                "responses": {
                    "200": {"description": "Subjects"}
                }
            }
        },
        "/api/courses/subjects/{subject}": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses for one subject",
                "parameters": [
                    {"name": "subject", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Courses"},
                    "404": {"description": "Subject not found"}
                }
            }
        },
        "/api/courses/stats/enrollment": {
            "get": {
                "tags": ["Courses"],
                "summary": "Aggregate enrollment statistics",
                "responses": {
                    "200": {"description": "Totals and utilization buckets"}
                }
            }
        },
        "/api/courses/export": {
            "get": {
                "tags": ["Courses"],
                "summary": "Download the enrollment overview report",
                "parameters": [
                    {"name": "format", "in": "query", "required": false, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/api/courses/{courseKey}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get one course by key",
                "parameters": [
                    {"name": "courseKey", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Merged course"},
                    "404": {"description": "Course not found"}
                }
            }
        },
        "/api/admin/refresh": {
            "post": {
                "tags": ["Admin"],
                "summary": "Trigger an asynchronous dataset rebuild",
                "responses": {
                    "202": {"description": "Refresh queued"}
                }
            }
        }
    },
    "definitions": {
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
