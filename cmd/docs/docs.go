// Package docs registers the OpenAPI document served under /swagger. The
// template is maintained by hand alongside the handler annotations; keep both
// in step when routes or DTOs change.
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
        "/recurringdepositproducts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["recurringdepositproducts"],
                "summary": "List recurring deposit products",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Failed to list products", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recurringdepositproducts"],
                "summary": "Create a recurring deposit product",
                "parameters": [{"description": "Product definition", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ProductRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ProductIDResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Product rule violated", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Referenced resource not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Name or short name already in use", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/recurringdepositproducts/{productId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["recurringdepositproducts"],
                "summary": "Get a recurring deposit product",
                "parameters": [{"type": "integer", "description": "Product ID", "name": "productId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductResponse"}},
                    "404": {"description": "Product not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recurringdepositproducts"],
                "summary": "Update a recurring deposit product",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "productId", "in": "path", "required": true},
                    {"description": "Parameters to change", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductUpdateResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Product rule violated", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Product or referenced resource not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Name or short name already in use", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["recurringdepositproducts"],
                "summary": "Delete a recurring deposit product",
                "parameters": [{"type": "integer", "description": "Product ID", "name": "productId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductIDResponse"}},
                    "404": {"description": "Product not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/transfers": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Record an account transfer",
                "parameters": [{"description": "Transfer details", "name": "transfer", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTransferRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransferResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Duplicate transfer", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/transfers/vendor-disbursements": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Record a vendor disbursement",
                "parameters": [{"description": "Disbursement details", "name": "disbursement", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.VendorDisbursementRequest"}}],
                "responses": {
                    "200": {"description": "Existing transfer returned", "schema": {"$ref": "#/definitions/dto.VendorDisbursementResponse"}},
                    "201": {"description": "Transfer created", "schema": {"$ref": "#/definitions/dto.VendorDisbursementResponse"}}
                }
            }
        },
        "/transfers/vendor-disbursement": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Find the active vendor disbursement transfer",
                "parameters": [
                    {"type": "integer", "name": "savingsAccountId", "in": "query", "required": true},
                    {"type": "integer", "name": "vendorSavingsAccountId", "in": "query", "required": true},
                    {"type": "string", "name": "date", "in": "query", "required": true},
                    {"type": "string", "name": "description", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransferResponse"}},
                    "404": {"description": "No active transfer for the key", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/transfers/by-source-loan-transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "List active transfers debited by loan transactions",
                "parameters": [{"type": "string", "description": "Comma separated loan transaction IDs", "name": "ids", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransferResponse"}}}
                }
            }
        },
        "/transfers/{transferId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Get a transfer",
                "parameters": [{"type": "integer", "name": "transferId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransferResponse"}},
                    "404": {"description": "Transfer not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/transfers/{transferId}/reverse": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Reverse a transfer",
                "parameters": [{"type": "integer", "name": "transferId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransferResponse"}},
                    "404": {"description": "Transfer not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/loans/{loanId}/transfers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "List active transfers touching a loan",
                "parameters": [{"type": "integer", "name": "loanId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransferResponse"}}}
                }
            }
        },
        "/loans/{loanId}/transfers/outgoing": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "List active transfers debiting a loan",
                "parameters": [{"type": "integer", "name": "loanId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransferResponse"}}}
                }
            }
        },
        "/loantransactions/{loanTransactionId}/transfer": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transfers"],
                "summary": "Get the transfer credited by a loan transaction",
                "parameters": [{"type": "integer", "name": "loanTransactionId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransferResponse"}},
                    "404": {"description": "No active transfer", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/dto.ErrorResponseItem"}}
            }
        },
        "dto.ErrorResponseItem": {
            "type": "object",
            "properties": {
                "parameterName": {"type": "string"},
                "userMessageGlobalisationCode": {"type": "string"},
                "defaultUserMessage": {"type": "string"}
            }
        },
        "dto.ProductIDResponse": {
            "type": "object",
            "properties": {"resourceId": {"type": "integer"}}
        },
        "dto.ProductUpdateResponse": {
            "type": "object",
            "properties": {
                "resourceId": {"type": "integer"},
                "changes": {"type": "object", "additionalProperties": true}
            }
        },
        "dto.ProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "shortName": {"type": "string"},
                "description": {"type": "string"},
                "currencyCode": {"type": "string"},
                "digitsAfterDecimal": {"type": "integer"},
                "inMultiplesOf": {"type": "integer"},
                "nominalAnnualInterestRate": {"type": "number"},
                "interestCompoundingPeriodType": {"type": "integer"},
                "interestPostingPeriodType": {"type": "integer"},
                "interestCalculationType": {"type": "integer"},
                "interestCalculationDaysInYearType": {"type": "integer"},
                "minDepositTerm": {"type": "integer"},
                "maxDepositTerm": {"type": "integer"},
                "minDepositAmount": {"type": "number"},
                "depositAmount": {"type": "number"},
                "maxDepositAmount": {"type": "number"},
                "isMandatoryDeposit": {"type": "boolean"},
                "allowWithdrawal": {"type": "boolean"},
                "adjustAdvanceTowardsFuturePayments": {"type": "boolean"},
                "addPenaltyOnMissedTargetSavings": {"type": "boolean"},
                "accountingRule": {"type": "integer"},
                "withHoldTax": {"type": "boolean"},
                "taxGroupId": {"type": "integer"},
                "productCategoryId": {"type": "integer"},
                "productTypeId": {"type": "integer"},
                "charges": {"type": "array", "items": {"type": "object", "properties": {"id": {"type": "integer"}}}},
                "charts": {"type": "array", "items": {"type": "object"}},
                "savingsReferenceAccountId": {"type": "integer"},
                "savingsControlAccountId": {"type": "integer"},
                "interestOnSavingsAccountId": {"type": "integer"},
                "incomeFromFeeAccountId": {"type": "integer"},
                "incomeFromPenaltyAccountId": {"type": "integer"},
                "transfersInSuspenseAccountId": {"type": "integer"}
            }
        },
        "dto.ProductResponse": {
            "type": "object",
            "additionalProperties": true
        },
        "dto.AccountRefRequest": {
            "type": "object",
            "required": ["id", "kind"],
            "properties": {
                "kind": {"type": "string", "enum": ["LOAN", "SAVINGS"]},
                "id": {"type": "integer"}
            }
        },
        "dto.CreateTransferRequest": {
            "type": "object",
            "required": ["currencyCode", "date", "from", "to"],
            "properties": {
                "from": {"$ref": "#/definitions/dto.AccountRefRequest"},
                "to": {"$ref": "#/definitions/dto.AccountRefRequest"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "currencyCode": {"type": "string"},
                "fromLoanTransactionId": {"type": "integer"},
                "toLoanTransactionId": {"type": "integer"},
                "fromSavingsTransactionId": {"type": "integer"},
                "toSavingsTransactionId": {"type": "integer"}
            }
        },
        "dto.VendorDisbursementRequest": {
            "type": "object",
            "required": ["currencyCode", "date", "description", "savingsAccountId", "vendorSavingsAccountId"],
            "properties": {
                "savingsAccountId": {"type": "integer"},
                "vendorSavingsAccountId": {"type": "integer"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "currencyCode": {"type": "string"}
            }
        },
        "dto.TransferResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "from": {"$ref": "#/definitions/dto.AccountRefRequest"},
                "to": {"$ref": "#/definitions/dto.AccountRefRequest"},
                "vendorDisbursement": {"type": "boolean"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "amount": {"type": "number"},
                "currencyCode": {"type": "string"},
                "reversed": {"type": "boolean"},
                "fromLoanTransactionId": {"type": "integer"},
                "toLoanTransactionId": {"type": "integer"},
                "fromSavingsTransactionId": {"type": "integer"},
                "toSavingsTransactionId": {"type": "integer"},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"}
            }
        },
        "dto.VendorDisbursementResponse": {
            "type": "object",
            "properties": {
                "transfer": {"$ref": "#/definitions/dto.TransferResponse"},
                "created": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fineract Deposit Products API",
	Description:      "Recurring deposit product configuration and account transfer ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
