// Package docs holds the OpenAPI document served at /v1/swagger.json. It is
// kept in the layout swag init emits and must follow the handler annotations
// in api/resources.
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
        "/health": {
            "get": {
                "description": "Liveness probe with the running version",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/metrics": {
            "get": {
                "description": "Event counters and the most recent events. With event set, the retained events of that type within the window, counted per label set.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Monitoring snapshot",
                "parameters": [
                    {"type": "string", "description": "Event name", "name": "event", "in": "query"},
                    {"type": "integer", "description": "Window in minutes (default 60)", "name": "minutes", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/monitoring.Snapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/machines/{id}": {
            "get": {
                "description": "Reading, status, vitals, maintenance and alerts of one machine",
                "produces": ["application/json"],
                "tags": ["machines"],
                "summary": "Machine detail view",
                "parameters": [
                    {"type": "string", "description": "Machine ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DetailView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/machines/{id}/trend": {
            "get": {
                "description": "Amps and vibration history of one machine",
                "produces": ["application/json"],
                "tags": ["machines"],
                "summary": "Machine trend",
                "parameters": [
                    {"type": "string", "description": "Machine ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Window in minutes (default 60)", "name": "minutes", "in": "query"},
                    {"type": "integer", "description": "Number of points (default 60)", "name": "points", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TrendPoint"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/nav": {
            "get": {
                "description": "Navigation state of the session with the data of the active view",
                "produces": ["application/json"],
                "tags": ["navigation"],
                "summary": "Active view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ActiveView"}}
                }
            }
        },
        "/nav/events": {
            "post": {
                "description": "Apply a select_unit, select_machine or back event",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["navigation"],
                "summary": "Dispatch navigation event",
                "parameters": [
                    {"description": "Navigation event", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Event"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ActiveView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/nav/reset": {
            "post": {
                "description": "Start a fresh session on the Unit 1 overview",
                "produces": ["application/json"],
                "tags": ["navigation"],
                "summary": "Reset session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ActiveView"}}
                }
            }
        },
        "/units/{unit}/machines": {
            "get": {
                "description": "Machines of a unit in process order with their status",
                "produces": ["application/json"],
                "tags": ["units"],
                "summary": "Fleet overview",
                "parameters": [
                    {"type": "string", "description": "Unit (Unit1, Unit2)", "name": "unit", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FleetView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/units/{unit}/report.xlsx": {
            "get": {
                "description": "Status and alerts workbook of a unit",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["units"],
                "summary": "Unit status report",
                "parameters": [
                    {"type": "string", "description": "Unit (Unit1, Unit2)", "name": "unit", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket stream of nav_changed and machine_reading events",
                "tags": ["push"],
                "summary": "Push channel",
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        }
    },
    "definitions": {
        "errors.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "details": {},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "models.Alert": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "severity": {"type": "string", "enum": ["INFO", "WARNING", "CRITICAL"]}
            }
        },
        "models.Machine": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string", "enum": ["shredder", "mill", "crusher"]},
                "position": {"type": "integer"},
                "stage": {"type": "string"},
                "unit": {"type": "string", "enum": ["Unit1", "Unit2"]}
            }
        },
        "models.Reading": {
            "type": "object",
            "properties": {
                "amps": {"type": "number"},
                "jamCount": {"type": "integer"},
                "observedAt": {"type": "string"},
                "temperature": {"type": "number"},
                "vibration": {"type": "number"}
            }
        },
        "models.DueState": {
            "type": "object",
            "properties": {
                "hours": {"type": "number"},
                "overdue": {"type": "boolean"}
            }
        },
        "models.MaintenanceRecord": {
            "type": "object",
            "properties": {
                "dueIn": {"$ref": "#/definitions/models.DueState"},
                "machineId": {"type": "string"},
                "nextJob": {"type": "string"},
                "spareStatus": {"type": "string", "enum": ["AVAILABLE", "LOW", "MISSING"]}
            }
        },
        "models.Vitals": {
            "type": "object",
            "properties": {
                "load": {"type": "string", "enum": ["Normal", "High"]},
                "vibration": {"type": "string", "enum": ["Normal", "CRITICAL"]}
            }
        },
        "models.MachineSummary": {
            "type": "object",
            "properties": {
                "degraded": {"type": "string"},
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "position": {"type": "integer"},
                "reading": {"$ref": "#/definitions/models.Reading"},
                "stage": {"type": "string"},
                "status": {"type": "string", "enum": ["RUNNING", "JAMMED", "CRITICAL"]},
                "unit": {"type": "string"}
            }
        },
        "models.FleetView": {
            "type": "object",
            "properties": {
                "flow": {"type": "string"},
                "machines": {"type": "array", "items": {"$ref": "#/definitions/models.MachineSummary"}},
                "title": {"type": "string"},
                "unit": {"type": "string"}
            }
        },
        "models.DetailView": {
            "type": "object",
            "properties": {
                "alerts": {"type": "array", "items": {"$ref": "#/definitions/models.Alert"}},
                "machine": {"$ref": "#/definitions/models.Machine"},
                "maintenance": {"$ref": "#/definitions/models.MaintenanceRecord"},
                "maintenanceError": {"type": "string"},
                "reading": {"$ref": "#/definitions/models.Reading"},
                "sensorError": {"type": "string"},
                "status": {"type": "string", "enum": ["RUNNING", "JAMMED", "CRITICAL"]},
                "vitals": {"$ref": "#/definitions/models.Vitals"}
            }
        },
        "models.NavState": {
            "type": "object",
            "properties": {
                "selectedMachine": {"type": "string"},
                "view": {"type": "string", "enum": ["UNIT1_OVERVIEW", "UNIT2_OVERVIEW", "DETAIL"]}
            }
        },
        "models.ActiveView": {
            "type": "object",
            "properties": {
                "detail": {"$ref": "#/definitions/models.DetailView"},
                "fleet": {"$ref": "#/definitions/models.FleetView"},
                "session": {"type": "string"},
                "state": {"$ref": "#/definitions/models.NavState"}
            }
        },
        "models.Event": {
            "type": "object",
            "properties": {
                "machineId": {"type": "string"},
                "type": {"type": "string", "enum": ["select_unit", "select_machine", "back"]},
                "unit": {"type": "string"}
            }
        },
        "models.TrendPoint": {
            "type": "object",
            "properties": {
                "amps": {"type": "number"},
                "time": {"type": "string"},
                "vibration": {"type": "number"}
            }
        },
        "monitoring.Event": {
            "type": "object",
            "properties": {
                "at": {"type": "string"},
                "labels": {"type": "object", "additionalProperties": {"type": "string"}},
                "name": {"type": "string"}
            }
        },
        "monitoring.Snapshot": {
            "type": "object",
            "properties": {
                "counters": {"type": "object", "additionalProperties": {"type": "integer"}},
                "recent": {"type": "array", "items": {"$ref": "#/definitions/monitoring.Event"}},
                "since": {"type": "string"}
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
	Title:            "Fleet Command API",
	Description:      "Status, maintenance alerts and navigation for the shredder fleet.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
