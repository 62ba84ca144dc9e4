// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g main.go
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
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HealthResponse"}}
                }
            }
        },
        "/api/stock/{symbol}": {
            "get": {
                "description": "Fetch daily closes for a symbol from the quote provider. Unknown timeframes fall back to 3M.",
                "produces": ["application/json"],
                "tags": ["stocks"],
                "summary": "Get a normalized daily series",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol, case-insensitive", "name": "symbol", "in": "path", "required": true},
                    {"type": "string", "default": "3M", "description": "1M, 3M, 6M or 1Y", "name": "timeframe", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.QuoteSeries"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Settings"}}
                }
            },
            "put": {
                "description": "Overwrites the stored settings. Enabling volume switches the chart to price mode.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Replace settings",
                "parameters": [
                    {"description": "Settings", "name": "settings", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Settings"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Settings"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/watchlist": {
            "get": {
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Get the watch-list",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.WatchlistResponse"}}
                }
            },
            "post": {
                "description": "Fetches the symbol first and adds it only if data came back.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Add a symbol",
                "parameters": [
                    {"description": "Symbol to add", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.AddSymbolRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.QuoteSeries"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/watchlist/{symbol}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Remove a symbol",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.WatchlistResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/refresh": {
            "post": {
                "description": "Refetches every symbol. A total outage returns 503 and keeps the previous data.",
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Refresh all watched symbols",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RefreshResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.RefreshResponse"}}
                }
            }
        },
        "/api/alerts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "Get the last computed alerts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AlertsResponse"}}
                }
            }
        },
        "/api/alerts/confirm": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "Set the alert rule and evaluate it",
                "parameters": [
                    {"description": "Threshold (percent) and period", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ConfirmAlertsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AlertsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/api/chart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["chart"],
                "summary": "Chart datasets for the loaded watch-list",
                "parameters": [
                    {"type": "string", "default": "3M", "description": "1M, 3M, 6M or 1Y", "name": "timeframe", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ChartResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "uptime": {"type": "number"}
            }
        },
        "models.PricePoint": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "price": {"type": "number"},
                "volume": {"type": "integer"}
            }
        },
        "models.QuoteSeries": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "name": {"type": "string"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.PricePoint"}},
                "currentPrice": {"type": "number"},
                "change24h": {"type": "number"}
            }
        },
        "models.AlertRule": {
            "type": "object",
            "properties": {
                "threshold": {"type": "number"},
                "period": {"type": "string"}
            }
        },
        "models.ChartSettings": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "showVolume": {"type": "boolean"}
            }
        },
        "models.Settings": {
            "type": "object",
            "properties": {
                "selectedStocks": {"type": "array", "items": {"type": "string"}},
                "chartSettings": {"$ref": "#/definitions/models.ChartSettings"},
                "alertSettings": {"$ref": "#/definitions/models.AlertRule"}
            }
        },
        "models.AddSymbolRequest": {
            "type": "object",
            "required": ["symbol"],
            "properties": {
                "symbol": {"type": "string"}
            }
        },
        "models.ConfirmAlertsRequest": {
            "type": "object",
            "required": ["period", "threshold"],
            "properties": {
                "threshold": {"type": "number"},
                "period": {"type": "string"}
            }
        },
        "models.TriggeredAlert": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "currentPrice": {"type": "number"},
                "periodHigh": {"type": "number"},
                "dropPercentage": {"type": "number"},
                "period": {"type": "string"}
            }
        },
        "models.Warning": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.AlertsResponse": {
            "type": "object",
            "properties": {
                "rule": {"$ref": "#/definitions/models.AlertRule"},
                "alerts": {"type": "array", "items": {"$ref": "#/definitions/models.TriggeredAlert"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.RefreshResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "requested": {"type": "integer"},
                "succeeded": {"type": "array", "items": {"type": "string"}},
                "failed": {"type": "array", "items": {"type": "string"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.WatchlistEntry": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "color": {"type": "string"},
                "loaded": {"type": "boolean"},
                "name": {"type": "string"},
                "currentPrice": {"type": "number"},
                "change24h": {"type": "number"},
                "hasAlert": {"type": "boolean"}
            }
        },
        "models.WatchlistResponse": {
            "type": "object",
            "properties": {
                "symbols": {"type": "array", "items": {"type": "string"}},
                "stocks": {"type": "array", "items": {"$ref": "#/definitions/models.WatchlistEntry"}}
            }
        },
        "models.ChartPoint": {
            "type": "object",
            "properties": {
                "x": {"type": "string"},
                "y": {"type": "number"},
                "price": {"type": "number"}
            }
        },
        "models.ChartDataset": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "kind": {"type": "string"},
                "color": {"type": "string"},
                "axis": {"type": "string"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/models.ChartPoint"}}
            }
        },
        "models.ChartResponse": {
            "type": "object",
            "properties": {
                "timeframe": {"type": "string"},
                "type": {"type": "string"},
                "timeUnit": {"type": "string"},
                "days": {"type": "integer"},
                "datasets": {"type": "array", "items": {"$ref": "#/definitions/models.ChartDataset"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Stock Alert API",
	Description:      "Quote proxy, watch-list session and drawdown alerts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
