package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Content API for the training centre website dashboard",
        "title": "sitecms API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "paths": {
        "/store/status": {
            "get": {
                "tags": [
                    "Store"
                ],
                "summary": "Session status",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Dirty flag, revision, history size and backup count"
                    }
                }
            }
        },
        "/store/load": {
            "post": {
                "tags": [
                    "Store"
                ],
                "summary": "Reload both documents from the backend",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Documents loaded"
                    },
                    "502": {
                        "description": "Backend failure"
                    }
                }
            }
        },
        "/store/save": {
            "post": {
                "tags": [
                    "Store"
                ],
                "summary": "Save both documents to the backend",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Documents saved"
                    },
                    "502": {
                        "description": "Backend failure"
                    }
                }
            }
        },
        "/store/undo": {
            "post": {
                "tags": [
                    "Store"
                ],
                "summary": "Restore the documents of the previous save",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "applied is false when fewer than two saves exist"
                    }
                }
            }
        },
        "/store/redo": {
            "post": {
                "tags": [
                    "Store"
                ],
                "summary": "Redo is not supported",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "501": {
                        "description": "Not implemented"
                    }
                }
            }
        },
        "/store/history": {
            "get": {
                "tags": [
                    "Store"
                ],
                "summary": "List recorded saves",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Timestamps and actions, oldest first"
                    }
                }
            }
        },
        "/store/changes": {
            "get": {
                "tags": [
                    "Store"
                ],
                "summary": "Unsaved changes as JSON Patch operations",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Patch operations per document"
                    }
                }
            }
        },
        "/store/revisions": {
            "get": {
                "tags": [
                    "Store"
                ],
                "summary": "List archived saves",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Revisions, newest first"
                    },
                    "503": {
                        "description": "Archive disabled"
                    }
                }
            }
        },
        "/store/revisions/{id}": {
            "get": {
                "tags": [
                    "Store"
                ],
                "summary": "Get one archived save",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
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
                        "description": "Revision with documents"
                    },
                    "404": {
                        "description": "Unknown revision"
                    },
                    "503": {
                        "description": "Archive disabled"
                    }
                }
            }
        },
        "/documents/{file}": {
            "get": {
                "tags": [
                    "Documents"
                ],
                "summary": "Read a document or one value in it",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "path",
                        "in": "query",
                        "required": false,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Document or value"
                    },
                    "400": {
                        "description": "Unknown file"
                    },
                    "404": {
                        "description": "Path not found"
                    }
                }
            }
        },
        "/documents/{file}/fields": {
            "patch": {
                "tags": [
                    "Documents"
                ],
                "summary": "Set the value at a dot path",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "path": {
                                    "type": "string"
                                },
                                "value": {
                                    "type": "object"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Value set"
                    },
                    "400": {
                        "description": "Invalid request"
                    },
                    "422": {
                        "description": "Path does not fit the document"
                    }
                }
            }
        },
        "/documents/{file}/items": {
            "post": {
                "tags": [
                    "Documents"
                ],
                "summary": "Append an item to an array",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "path": {
                                    "type": "string"
                                },
                                "item": {
                                    "type": "object"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Item appended"
                    },
                    "422": {
                        "description": "Path does not fit the document"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Documents"
                ],
                "summary": "Remove an array element",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "path": {
                                    "type": "string"
                                },
                                "index": {
                                    "type": "integer"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "applied is false when the index is outside the array"
                    }
                }
            }
        },
        "/formations": {
            "get": {
                "tags": [
                    "Formations"
                ],
                "summary": "List formations in display order",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Formations"
                    }
                }
            },
            "post": {
                "tags": [
                    "Formations"
                ],
                "summary": "Add a formation",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "id": {
                                    "type": "string"
                                },
                                "title": {
                                    "type": "string"
                                },
                                "description": {
                                    "type": "string"
                                },
                                "image": {
                                    "type": "string"
                                },
                                "icon": {
                                    "type": "string"
                                },
                                "path": {
                                    "type": "string"
                                },
                                "showOnHome": {
                                    "type": "boolean"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Formation created"
                    },
                    "400": {
                        "description": "Invalid input"
                    },
                    "409": {
                        "description": "Duplicate id"
                    }
                }
            }
        },
        "/formations/{id}": {
            "put": {
                "tags": [
                    "Formations"
                ],
                "summary": "Update a formation",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "title": {
                                    "type": "string"
                                },
                                "description": {
                                    "type": "string"
                                },
                                "image": {
                                    "type": "string"
                                },
                                "icon": {
                                    "type": "string"
                                },
                                "path": {
                                    "type": "string"
                                },
                                "showOnHome": {
                                    "type": "boolean"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Formation updated"
                    },
                    "404": {
                        "description": "Unknown formation"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Formations"
                ],
                "summary": "Remove a formation",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Formation removed"
                    },
                    "404": {
                        "description": "Unknown formation"
                    }
                }
            }
        },
        "/formations/{id}/visibility": {
            "put": {
                "tags": [
                    "Formations"
                ],
                "summary": "Show or hide a formation",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "showOnHome": {
                                    "type": "boolean"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Visibility set"
                    },
                    "404": {
                        "description": "Unknown formation"
                    }
                }
            }
        },
        "/formations/reorder": {
            "post": {
                "tags": [
                    "Formations"
                ],
                "summary": "Move a formation",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "from": {
                                    "type": "integer"
                                },
                                "to": {
                                    "type": "integer"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Formation moved"
                    },
                    "422": {
                        "description": "Index out of range"
                    }
                }
            }
        },
        "/formations/backups": {
            "get": {
                "tags": [
                    "Formations"
                ],
                "summary": "List formation backups",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Backups, newest first"
                    }
                }
            },
            "post": {
                "tags": [
                    "Formations"
                ],
                "summary": "Back up the formation catalogue",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Backup created"
                    }
                }
            }
        },
        "/formations/backups/restore": {
            "post": {
                "tags": [
                    "Formations"
                ],
                "summary": "Restore a formation backup",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "date": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Backup restored"
                    },
                    "404": {
                        "description": "Unknown backup date"
                    }
                }
            }
        },
        "/navbar": {
            "get": {
                "tags": [
                    "Navbar"
                ],
                "summary": "List navbar links",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Navbar links"
                    }
                }
            }
        },
        "/navbar/sync": {
            "post": {
                "tags": [
                    "Navbar"
                ],
                "summary": "Rebuild the formations submenu",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "applied is false when already in sync"
                    }
                }
            }
        },
        "/navbar/sync-titles": {
            "post": {
                "tags": [
                    "Navbar"
                ],
                "summary": "Copy page titles onto the formations submenu",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "applied is false when nothing changed"
                    }
                }
            }
        },
        "/events": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "List events",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Events"
                    }
                }
            },
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Add an event",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "title": {
                                    "type": "string"
                                },
                                "description": {
                                    "type": "string"
                                },
                                "date": {
                                    "type": "string"
                                },
                                "location": {
                                    "type": "string"
                                },
                                "image": {
                                    "type": "string"
                                },
                                "featured": {
                                    "type": "boolean"
                                },
                                "showOnHome": {
                                    "type": "boolean"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Event created"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/events/{id}": {
            "put": {
                "tags": [
                    "Events"
                ],
                "summary": "Update an event",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "title": {
                                    "type": "string"
                                },
                                "description": {
                                    "type": "string"
                                },
                                "date": {
                                    "type": "string"
                                },
                                "location": {
                                    "type": "string"
                                },
                                "image": {
                                    "type": "string"
                                },
                                "featured": {
                                    "type": "boolean"
                                },
                                "showOnHome": {
                                    "type": "boolean"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Event updated"
                    },
                    "404": {
                        "description": "Unknown event"
                    }
                }
            },
            "delete": {
                "tags": [
                    "Events"
                ],
                "summary": "Remove an event",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Event removed"
                    },
                    "404": {
                        "description": "Unknown event"
                    }
                }
            }
        },
        "/uploads": {
            "post": {
                "tags": [
                    "Assets"
                ],
                "summary": "Upload an image or PDF",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "formData",
                        "required": true,
                        "type": "file"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Stored file name and public url"
                    },
                    "400": {
                        "description": "Unsupported type"
                    },
                    "413": {
                        "description": "Too large"
                    },
                    "502": {
                        "description": "Backend failure"
                    }
                }
            }
        },
        "/import": {
            "post": {
                "tags": [
                    "Assets"
                ],
                "summary": "Replace both documents",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "data": {
                                    "type": "object"
                                },
                                "datap": {
                                    "type": "object"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Documents imported"
                    },
                    "400": {
                        "description": "data or datap missing"
                    },
                    "502": {
                        "description": "Backend failure"
                    }
                }
            }
        },
        "/export/{file}": {
            "get": {
                "tags": [
                    "Assets"
                ],
                "summary": "Download a document as indented JSON",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "file",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Document"
                    },
                    "400": {
                        "description": "Unknown file"
                    }
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": [
                    "Notifications"
                ],
                "summary": "Recent notifications, newest first",
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Notifications"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "sitecms API",
	Description:      "Content API for the training centre website dashboard",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
