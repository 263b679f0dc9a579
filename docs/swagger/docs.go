// Package swagger registers the OpenAPI document served under /swagger.
//
// The document mirrors the handler annotations and uses the layout swag
// emits, so `swag init -g cmd/start.go -o docs/swagger` can replace it.
package swagger

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
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/catalog": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Create Catalogue Entry",
                "parameters": [
                    {"description": "Entry", "name": "entry", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.CreateInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CatalogEntry"}},
                    "400": {"description": "Invalid entry", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "External id already catalogued", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/catalog/search": {
            "get": {
                "description": "Text search over titles with tag, theme, demographic, studio, year and kind filters.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Search Catalogue",
                "parameters": [
                    {"type": "string", "description": "Text matched against title and alternative title", "name": "q", "in": "query"},
                    {"type": "string", "description": "Comma separated tags, all required", "name": "tags", "in": "query"},
                    {"type": "string", "description": "Comma separated themes, all required", "name": "themes", "in": "query"},
                    {"type": "string", "description": "Comma separated demographics, all required", "name": "demographics", "in": "query"},
                    {"type": "string", "description": "Studio", "name": "studio", "in": "query"},
                    {"type": "integer", "description": "Release year", "name": "year", "in": "query"},
                    {"type": "string", "description": "Anime, Manga, Manhwa or Webtoon", "name": "kind", "in": "query"},
                    {"type": "string", "description": "popularity (default), score, title or year", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Page, 1-100", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size, 1-100", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.SearchResult"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/catalog/filters": {
            "get": {
                "description": "Distinct tags, themes, demographics, studios and years present in the catalogue.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Search Filters",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Facets"}}}
            }
        },
        "/catalog/top": {
            "get": {
                "description": "Entries ordered by Bayesian weighted score. Entries below the vote threshold are excluded.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Top Ranked",
                "parameters": [
                    {"type": "string", "description": "Restrict to a tag", "name": "tag", "in": "query"},
                    {"type": "integer", "description": "Restrict to a release year", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Listing length, 1-100", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Ranked"}}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/catalog/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get Catalogue Entry",
                "parameters": [{"type": "integer", "description": "Catalogue entry id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CatalogEntry"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Pings the database, compares the catalogue and list tables against the models and checks the import archive bucket.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "ok or degraded", "schema": {"$ref": "#/definitions/health.Report"}},
                    "503": {"description": "database unreachable", "schema": {"$ref": "#/definitions/health.Report"}}
                }
            }
        },
        "/imports/mal": {
            "post": {
                "description": "Reconciles the export against the catalogue, fetching metadata for unknown titles, and upserts the user's list in one transaction.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["imports"],
                "summary": "Import MyAnimeList Export",
                "parameters": [
                    {"type": "integer", "description": "Acting user", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "file", "description": "MyAnimeList XML export", "name": "file", "in": "formData", "required": true},
                    {"type": "boolean", "description": "Copy scores", "name": "import_scores", "in": "formData"},
                    {"type": "boolean", "description": "Copy comments", "name": "import_notes", "in": "formData"},
                    {"type": "boolean", "description": "Copy status and progress", "name": "import_dates", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/importer.Result"}},
                    "400": {"description": "Invalid document", "schema": {"$ref": "#/definitions/importer.Result"}},
                    "413": {"description": "Document too large", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Commit failed", "schema": {"$ref": "#/definitions/importer.Result"}}
                }
            }
        },
        "/library": {
            "get": {
                "description": "The acting user's list with status, kind and tag facets.",
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "List Library",
                "parameters": [
                    {"type": "integer", "description": "Acting user", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "Planned, Watching, Reading, Completed or Dropped", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/library.ListResult"}},
                    "400": {"description": "Invalid status", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Add To Library",
                "parameters": [
                    {"type": "integer", "description": "Acting user", "name": "X-User-ID", "in": "header", "required": true},
                    {"description": "Entry", "name": "entry", "in": "body", "required": true, "schema": {"$ref": "#/definitions/library.AddInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ListEntry"}},
                    "404": {"description": "Catalogue entry not found", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Already on list", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/library/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Library Stats",
                "parameters": [{"type": "integer", "description": "Acting user", "name": "X-User-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/library.Stats"}}}
            }
        },
        "/library/{id}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Update Library Entry",
                "parameters": [
                    {"type": "integer", "description": "Acting user", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "List entry id", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/library.Patch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ListEntry"}},
                    "403": {"description": "Owned by another user", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/error"}}
                }
            },
            "delete": {
                "tags": ["library"],
                "summary": "Delete Library Entry",
                "parameters": [
                    {"type": "integer", "description": "Acting user", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "List entry id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Owned by another user", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "error": {"type": "object", "properties": {"error": {"type": "string"}}},
        "catalog.CreateInput": {
            "type": "object",
            "properties": {
                "external_id": {"type": "integer"},
                "title": {"type": "string"},
                "alt_title": {"type": "string"},
                "kind": {"type": "string", "enum": ["Anime", "Manga", "Manhwa", "Webtoon"]},
                "synopsis": {"type": "string"},
                "image_url": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "themes": {"type": "array", "items": {"type": "string"}},
                "demographics": {"type": "array", "items": {"type": "string"}},
                "studios": {"type": "array", "items": {"type": "string"}},
                "source": {"type": "string"},
                "release_year": {"type": "integer"},
                "total_units": {"type": "integer"}
            }
        },
        "catalog.Facets": {
            "type": "object",
            "properties": {
                "tags": {"type": "array", "items": {"type": "string"}},
                "themes": {"type": "array", "items": {"type": "string"}},
                "demographics": {"type": "array", "items": {"type": "string"}},
                "studios": {"type": "array", "items": {"type": "string"}},
                "years": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "catalog.Ranked": {
            "allOf": [
                {"$ref": "#/definitions/models.CatalogEntry"},
                {"type": "object", "properties": {"weighted_score": {"type": "number"}}}
            ]
        },
        "catalog.SearchResult": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"allOf": [
                    {"$ref": "#/definitions/models.CatalogEntry"},
                    {"type": "object", "properties": {"in_list": {"type": "boolean"}}}
                ]}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "per_page": {"type": "integer"},
                "has_next": {"type": "boolean"}
            }
        },
        "health.Report": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "database": {"type": "object", "properties": {"status": {"type": "string"}, "error": {"type": "string"}}},
                "schema": {"type": "object"},
                "storage": {"type": "object", "properties": {"status": {"type": "string"}, "error": {"type": "string"}}},
                "archive": {"type": "object"}
            }
        },
        "importer.Result": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "imported": {"type": "integer"},
                "updated": {"type": "integer"},
                "skipped": {"type": "integer"},
                "new_catalog_entries_created": {"type": "integer"},
                "catalog_entries_updated": {"type": "integer"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "archive_key": {"type": "string"}
            }
        },
        "library.AddInput": {
            "type": "object",
            "properties": {
                "catalog_entry_id": {"type": "integer"},
                "status": {"type": "string"},
                "progress": {"type": "integer"},
                "user_score": {"type": "integer"},
                "notes": {"type": "string"}
            }
        },
        "library.ListResult": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.ListEntry"}},
                "facets": {"type": "object", "properties": {
                    "statuses": {"type": "array", "items": {"type": "string"}},
                    "kinds": {"type": "array", "items": {"type": "string"}},
                    "tags": {"type": "array", "items": {"type": "string"}}
                }}
            }
        },
        "library.Patch": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "progress": {"type": "integer"},
                "user_score": {"type": "integer"},
                "notes": {"type": "string"}
            }
        },
        "library.Stats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "by_status": {"type": "object", "additionalProperties": {"type": "integer"}},
                "mean_score": {"type": "number"},
                "scored_count": {"type": "integer"},
                "total_progress": {"type": "integer"}
            }
        },
        "models.CatalogEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "external_id": {"type": "integer"},
                "title": {"type": "string"},
                "alt_title": {"type": "string"},
                "kind": {"type": "string"},
                "media_type": {"type": "string"},
                "image_url": {"type": "string"},
                "synopsis": {"type": "string"},
                "tags": {"type": "string"},
                "themes": {"type": "string"},
                "demographics": {"type": "string"},
                "studios": {"type": "string"},
                "producers": {"type": "string"},
                "licensors": {"type": "string"},
                "source": {"type": "string"},
                "release_year": {"type": "integer"},
                "total_units": {"type": "integer"},
                "score": {"type": "number"},
                "popularity_rank": {"type": "integer"},
                "vote_count": {"type": "integer"},
                "members": {"type": "integer"},
                "favorites": {"type": "integer"},
                "status": {"type": "string"},
                "rating": {"type": "string"},
                "duration": {"type": "string"},
                "air_from": {"type": "string"},
                "air_to": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.ListEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "catalog_entry_id": {"type": "integer"},
                "status": {"type": "string", "enum": ["Planned", "Watching", "Reading", "Completed", "Dropped"]},
                "progress": {"type": "integer"},
                "user_score": {"type": "integer"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "catalog": {"$ref": "#/definitions/models.CatalogEntry"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Media Tracker API",
	Description:      "Catalogue, per-user lists, rankings and MyAnimeList imports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
