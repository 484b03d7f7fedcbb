// Package docs 注册 StreamSlice 的 OpenAPI 文档
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
        "/": {
            "get": {
                "description": "Streams the configured media file. Without a Range header the whole file is returned with status 200; with Range: bytes=start-end the inclusive interval is returned with status 206.",
                "produces": ["application/octet-stream"],
                "summary": "Stream media",
                "parameters": [
                    {
                        "type": "string",
                        "description": "bytes=start-end, either bound may be omitted",
                        "name": "Range",
                        "in": "header"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Whole file",
                        "headers": {
                            "Accept-Ranges": {"type": "string"},
                            "Content-Length": {"type": "integer"},
                            "Content-Range": {"type": "string"}
                        }
                    },
                    "206": {
                        "description": "Requested byte interval",
                        "headers": {
                            "Accept-Ranges": {"type": "string"},
                            "Content-Length": {"type": "integer"},
                            "Content-Range": {"type": "string"}
                        }
                    },
                    "404": {"description": "Media file not found"},
                    "416": {"description": "Range not satisfiable"},
                    "500": {"description": "Media file could not be opened"}
                }
            },
            "head": {
                "summary": "Media headers only",
                "responses": {
                    "200": {"description": "Whole file headers"},
                    "206": {"description": "Partial content headers"}
                }
            }
        }
    }
}`

// SwaggerInfo 可在启动时修改描述与主机信息
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "StreamSlice",
	Description:      "Byte-range media streaming server.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
