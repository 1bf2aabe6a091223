package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutoring Admin API",
        "description": "Students, class slots, payments and consumed classes with per-student balances",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "consumes": [
        "application/json"
    ],
    "produces": [
        "application/json"
    ],
    "tags": [
        {
            "name": "Auth",
            "description": "Admin credential check"
        },
        {
            "name": "Students",
            "description": "Student registry"
        },
        {
            "name": "Classes",
            "description": "Weekly class slots"
        },
        {
            "name": "Payments",
            "description": "Purchased classes"
        },
        {
            "name": "Consumed Classes",
            "description": "Attended classes"
        },
        {
            "name": "Statistics",
            "description": "Balances and history"
        },
        {
            "name": "Attendance",
            "description": "Batch attendance"
        },
        {
            "name": "Ops",
            "description": "Health and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Readiness check (pings the database)",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Database unavailable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/login": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Check admin credentials",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "500": {
                        "description": "Store error",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            }
        },
        "/students": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "List students",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid filter",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Students"
                ],
                "summary": "Create student",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StudentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Rejected by the store",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": [
                    "Students"
                ],
                "summary": "Get student",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Students"
                ],
                "summary": "Delete student",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted; body carries changes",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "409": {
                        "description": "Still referenced",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Students"
                ],
                "summary": "Update student",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/StudentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    }
                }
            }
        },
        "/classes": {
            "get": {
                "tags": [
                    "Classes"
                ],
                "summary": "List class slots",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid filter",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Classes"
                ],
                "summary": "Create class slot",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ClassSlotRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Rejected by the store",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": [
                    "Classes"
                ],
                "summary": "Get class slot",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Classes"
                ],
                "summary": "Delete class slot",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted; body carries changes",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "409": {
                        "description": "Still referenced",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Classes"
                ],
                "summary": "Update class slot",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ClassSlotRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    }
                }
            }
        },
        "/payments": {
            "get": {
                "tags": [
                    "Payments"
                ],
                "summary": "List payments",
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid filter",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Payments"
                ],
                "summary": "Create payment",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/PaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Rejected by the store",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            }
        },
        "/payments/{id}": {
            "get": {
                "tags": [
                    "Payments"
                ],
                "summary": "Get payment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Payments"
                ],
                "summary": "Delete payment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted; body carries changes",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "409": {
                        "description": "Still referenced",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Payments"
                ],
                "summary": "Update payment",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/PaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    }
                }
            }
        },
        "/consumed-classes": {
            "get": {
                "tags": [
                    "Consumed Classes"
                ],
                "summary": "List consumed classs",
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid filter",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Consumed Classes"
                ],
                "summary": "Create consumed class",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ConsumedClassRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Rejected by the store",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            }
        },
        "/consumed-classes/{id}": {
            "get": {
                "tags": [
                    "Consumed Classes"
                ],
                "summary": "Get consumed class",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "Consumed Classes"
                ],
                "summary": "Delete consumed class",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Deleted; body carries changes",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/MessageBody"
                        }
                    },
                    "409": {
                        "description": "Still referenced",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            }
        },
        "/statistics": {
            "get": {
                "tags": [
                    "Statistics"
                ],
                "summary": "Per-student payment and consumption balance",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "500": {
                        "description": "Store error",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            }
        },
        "/statistics/export": {
            "get": {
                "tags": [
                    "Statistics"
                ],
                "summary": "Download the statistics table",
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File"
                    },
                    "400": {
                        "description": "Unsupported format",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                },
                "produces": [
                    "text/csv",
                    "application/pdf"
                ]
            }
        },
        "/statistics/consumed-history/{student_id}": {
            "get": {
                "tags": [
                    "Statistics"
                ],
                "summary": "Consumed classes of a student, most recent first",
                "parameters": [
                    {
                        "name": "student_id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Envelope"
                        }
                    },
                    "400": {
                        "description": "Invalid id",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            }
        },
        "/class-attendance": {
            "post": {
                "tags": [
                    "Attendance"
                ],
                "summary": "Register one class for several students",
                "description": "Each student is inserted independently; failures do not roll back the others.",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AttendanceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "All inserted",
                        "schema": {
                            "$ref": "#/definitions/AttendanceResult"
                        }
                    },
                    "207": {
                        "description": "Some inserts failed",
                        "schema": {
                            "$ref": "#/definitions/AttendanceResult"
                        }
                    },
                    "400": {
                        "description": "Missing class_id, class_date or student_ids",
                        "schema": {
                            "$ref": "#/definitions/ErrorBody"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "data": {
                    "type": "object"
                }
            }
        },
        "MessageBody": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                }
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "username",
                "password"
            ]
        },
        "StudentRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "level": {
                    "type": "string"
                }
            }
        },
        "ClassSlotRequest": {
            "type": "object",
            "properties": {
                "day": {
                    "type": "string"
                },
                "time": {
                    "type": "string"
                },
                "level": {
                    "type": "string"
                }
            }
        },
        "PaymentRequest": {
            "type": "object",
            "properties": {
                "student_id": {
                    "type": "integer"
                },
                "amount": {
                    "type": "number"
                },
                "num_classes": {
                    "type": "integer",
                    "description": "defaults to 1 when omitted, null or 0"
                },
                "payment_date": {
                    "type": "string"
                }
            }
        },
        "ConsumedClassRequest": {
            "type": "object",
            "properties": {
                "student_id": {
                    "type": "integer"
                },
                "class_id": {
                    "type": "integer"
                },
                "date": {
                    "type": "string"
                },
                "time": {
                    "type": "string"
                }
            }
        },
        "AttendanceRequest": {
            "type": "object",
            "properties": {
                "class_id": {
                    "type": "integer"
                },
                "class_date": {
                    "type": "string"
                },
                "class_time": {
                    "type": "string"
                },
                "student_ids": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            },
            "required": [
                "class_id",
                "class_date",
                "student_ids"
            ]
        },
        "AttendanceFailure": {
            "type": "object",
            "properties": {
                "student_id": {
                    "type": "integer"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "AttendanceResult": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "inserted": {
                    "type": "integer"
                },
                "failed": {
                    "type": "integer"
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/AttendanceFailure"
                    }
                }
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
