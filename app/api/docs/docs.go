// Package docs holds the swagger spec served at /swagger. Maintained by
// hand, keep it in sync with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auctions": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["auction"],
                "summary": "Create an auction",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "409": {"description": "item already has a live auction"}
                }
            }
        },
        "/auctions/live": {
            "get": {
                "tags": ["auction"],
                "summary": "List live auctions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auction/{chainId}/{index}": {
            "get": {
                "tags": ["auction"],
                "summary": "Get an auction",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/auction/{chainId}/{index}/bids": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["auction"],
                "summary": "Place a bid",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "auction not live, below floor, or insufficient funds"}
                }
            }
        },
        "/auction/{chainId}/{index}/end": {
            "post": {
                "tags": ["auction"],
                "summary": "End an auction",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auction/{chainId}/{index}/withdraw": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["auction"],
                "summary": "Withdraw escrowed funds",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/sign": {
            "post": {
                "tags": ["auth"],
                "summary": "Get access token",
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/account/{account}/nonce": {
            "post": {
                "tags": ["account"],
                "summary": "Generate nonce for signing",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
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
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Faro Auction House API",
	Description:      "API Document for the Faro custodial auction house.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
