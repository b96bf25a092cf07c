package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CampusGrid Timetable API",
        "description": "Weekly timetables, one-off reschedules, hall availability and materialized calendars.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Shared free slots and free lecture halls"},
        {"name": "Reschedules", "description": "One-off moves of a recurring session"},
        {"name": "Calendar", "description": "Materialized calendars and exports"},
        {"name": "Timetable", "description": "Recurring weekly sessions"},
        {"name": "Holidays", "description": "Campus-wide holidays"},
        {"name": "Catalog", "description": "Lecture halls and courses"}
    ],
    "paths": {
        "/availability/free-slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "Shared free slots of a professor and a cohort",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date", "required": true},
                    {"name": "professor_id", "in": "query", "type": "string", "required": true},
                    {"name": "branch", "in": "query", "type": "string", "required": true},
                    {"name": "semester", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/availability/halls": {
            "get": {
                "tags": ["Availability"],
                "summary": "Lecture halls free for a slot",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date", "required": true},
                    {"name": "time_slot", "in": "query", "type": "string", "required": true, "description": "HH:MM:SS - HH:MM:SS"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reschedules": {
            "post": {
                "tags": ["Reschedules"],
                "summary": "Reschedule one occurrence of a session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRescheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Persisted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Hall already booked", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Unknown lecture hall", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reschedules/{id}": {
            "get": {
                "tags": ["Reschedules"],
                "summary": "Get a reschedule",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Reschedules"],
                "summary": "Cancel a reschedule",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Removed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/professors/{id}/reschedules": {
            "get": {
                "tags": ["Reschedules"],
                "summary": "List reschedules of a professor",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Materialized calendar for a professor, student or cohort",
                "parameters": [
                    {"name": "professor_id", "in": "query", "type": "string"},
                    {"name": "student_id", "in": "query", "type": "string"},
                    {"name": "branch", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "integer"},
                    {"name": "class_group", "in": "query", "type": "string"},
                    {"name": "tutorial_group", "in": "query", "type": "string"},
                    {"name": "lab_group", "in": "query", "type": "string"},
                    {"name": "weeks", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/export": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Download a calendar as CSV, PDF or iCalendar",
                "produces": ["text/csv", "application/pdf", "text/calendar"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "ics"]},
                    {"name": "professor_id", "in": "query", "type": "string"},
                    {"name": "student_id", "in": "query", "type": "string"},
                    {"name": "branch", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "integer"},
                    {"name": "weeks", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}}
                }
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "List recurring sessions",
                "parameters": [
                    {"name": "day_of_week", "in": "query", "type": "string"},
                    {"name": "professor_id", "in": "query", "type": "string"},
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "lecture_hall_id", "in": "query", "type": "string"},
                    {"name": "branch", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "integer"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["class", "tutorial", "lab"]},
                    {"name": "group", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Timetable"],
                "summary": "Create a recurring session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Hall, professor or cohort clash", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/bulk": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Bulk create recurring sessions",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkCreateSessionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/{id}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get a recurring session",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Timetable"],
                "summary": "Delete a recurring session",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/holidays": {
            "get": {
                "tags": ["Holidays"],
                "summary": "List holidays",
                "parameters": [
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Holidays"],
                "summary": "Declare a holiday",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateHolidayRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Date already taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/holidays/{id}": {
            "delete": {
                "tags": ["Holidays"],
                "summary": "Remove a holiday",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/halls": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List lecture halls",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Register a lecture hall",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateHallRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List courses",
                "parameters": [
                    {"name": "branch", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Register a course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateRescheduleRequest": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"},
                "professor_id": {"type": "string"},
                "lecture_hall": {"type": "string"},
                "type": {"type": "string", "enum": ["class", "tutorial", "lab"]},
                "group": {"type": "string"},
                "original_date": {"type": "string", "format": "date"},
                "original_start_time": {"type": "string", "example": "10:00:00"},
                "original_end_time": {"type": "string", "example": "11:00:00"},
                "rescheduled_date": {"type": "string", "format": "date"},
                "new_start_time": {"type": "string", "example": "14:00:00"},
                "new_end_time": {"type": "string", "example": "15:00:00"},
                "reason": {"type": "string"}
            },
            "required": ["course_id", "professor_id", "lecture_hall", "type", "original_date", "original_start_time", "original_end_time", "rescheduled_date", "new_start_time"]
        },
        "CreateSessionRequest": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "string", "example": "monday"},
                "course_id": {"type": "string"},
                "start_time": {"type": "string", "example": "09:00:00"},
                "end_time": {"type": "string", "example": "10:00:00"},
                "lecture_hall_id": {"type": "string"},
                "professor_id": {"type": "string"},
                "type": {"type": "string", "enum": ["class", "tutorial", "lab"]},
                "group": {"type": "string"}
            },
            "required": ["day_of_week", "course_id", "start_time", "end_time", "lecture_hall_id", "professor_id", "type"]
        },
        "BulkCreateSessionsRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/CreateSessionRequest"}},
                "partial_on_error": {"type": "boolean"}
            },
            "required": ["items"]
        },
        "CreateHolidayRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "description": {"type": "string"}
            },
            "required": ["date", "description"]
        },
        "CreateHallRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            },
            "required": ["name"]
        },
        "CreateCourseRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "branch": {"type": "string"},
                "semester": {"type": "integer"}
            },
            "required": ["code", "name", "branch", "semester"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
