// Package docs registers the OpenAPI description of the storefront API
// with swag so gin-swagger can serve it under /swagger.
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
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/booking/sessions": {
            "post": {
                "tags": ["booking"],
                "summary": "Start a booking session and load the seat map",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/booking.StartSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/booking.SessionResponse"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "502": {"description": "Seat map could not be loaded"}
                }
            }
        },
        "/booking/sessions/{id}": {
            "get": {
                "tags": ["booking"],
                "summary": "Read a booking session",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.SessionResponse"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/booking/sessions/{id}/seats/{seatId}/toggle": {
            "post": {
                "tags": ["booking"],
                "summary": "Pick or release a seat",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "path", "name": "seatId", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.SessionResponse"}},
                    "400": {"description": "Seat not selectable or limit reached"},
                    "409": {"description": "Session busy or not selecting"}
                }
            }
        },
        "/booking/sessions/{id}/refresh": {
            "post": {
                "tags": ["booking"],
                "summary": "Drop the selection and reload the seat map",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.RefreshResponse"}},
                    "409": {"description": "Session busy or not selecting"},
                    "502": {"description": "Seat map could not be loaded"}
                }
            }
        },
        "/booking/sessions/{id}/submit": {
            "post": {
                "tags": ["booking"],
                "summary": "Check the selection for conflicts and reserve it",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/booking.SessionResponse"}},
                    "400": {"description": "Empty selection"},
                    "409": {"description": "Seats taken meanwhile", "schema": {"$ref": "#/definitions/booking.ConflictDetails"}},
                    "502": {"description": "Reservation could not be created"}
                }
            }
        },
        "/booking/sessions/{id}/pay": {
            "post": {
                "tags": ["booking"],
                "summary": "Pay for the reservation",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/booking.PayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.SessionResponse"}},
                    "400": {"description": "Invalid payment method"},
                    "409": {"description": "Session busy or not reserved"},
                    "502": {"description": "Payment could not be completed"}
                }
            }
        },
        "/booking/sessions/{id}/cancel": {
            "post": {
                "tags": ["booking"],
                "summary": "Cancel the payment of the reservation",
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/booking.PayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.SessionResponse"}},
                    "400": {"description": "Invalid payment method"},
                    "409": {"description": "Session busy or not reserved"},
                    "502": {"description": "Payment could not be cancelled"}
                }
            }
        },
        "/me/reservations": {
            "get": {
                "tags": ["history"],
                "summary": "List finished bookings of the current user",
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "limit", "type": "integer"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["PAID", "PAYMENT_CANCELLED", "CANCELLED"]}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/me/reservations/{reservationId}": {
            "delete": {
                "tags": ["history"],
                "summary": "Cancel a paid reservation",
                "parameters": [
                    {"in": "path", "name": "reservationId", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Not cancellable"},
                    "502": {"description": "Reservation API refused"}
                }
            }
        }
    },
    "definitions": {
        "booking.StartSessionRequest": {
            "type": "object",
            "required": ["eventId", "date", "time"],
            "properties": {
                "eventId": {"type": "integer"},
                "date": {"type": "string", "example": "2026-11-20"},
                "time": {"type": "string", "example": "19:30"}
            }
        },
        "booking.PayRequest": {
            "type": "object",
            "properties": {
                "paymentMethod": {"type": "string", "enum": ["CREDIT_CARD", "DEBIT_CARD", "PAYPAL", "BANK_TRANSFER"]}
            }
        },
        "seats.Seat": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "rowName": {"type": "string"},
                "seatNumber": {"type": "integer"},
                "seatSection": {"type": "string"},
                "floor": {"type": "string"},
                "price": {"type": "integer"},
                "status": {"type": "string", "enum": ["AVAILABLE", "RESERVED", "WAITING", "SELECTED"]}
            }
        },
        "booking.ReservationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "seats": {"type": "array", "items": {"$ref": "#/definitions/seats.Seat"}},
                "total": {"type": "integer"},
                "paymentMethod": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "booking.SessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "eventId": {"type": "integer"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "phase": {"type": "string", "enum": ["SELECTING", "REFRESHING", "SUBMITTING", "RESERVED", "PAYING", "CANCELLING", "PAID", "CANCELLED"]},
                "seats": {"type": "array", "items": {"$ref": "#/definitions/seats.Seat"}},
                "selection": {"type": "array", "items": {"$ref": "#/definitions/seats.Seat"}},
                "selectedCount": {"type": "integer"},
                "maxSeats": {"type": "integer"},
                "total": {"type": "integer"},
                "reservation": {"$ref": "#/definitions/booking.ReservationResponse"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "booking.RefreshResponse": {
            "type": "object",
            "properties": {
                "session": {"$ref": "#/definitions/booking.SessionResponse"},
                "dropped": {"type": "array", "items": {"$ref": "#/definitions/seats.Seat"}}
            }
        },
        "booking.ConflictDetails": {
            "type": "object",
            "properties": {
                "conflictSeatIds": {"type": "array", "items": {"type": "integer"}},
                "session": {"$ref": "#/definitions/booking.SessionResponse"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Ticketfront Booking API",
	Description:      "Seat selection, reservation and payment for show bookings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
