// Package openapi describes a form as an OpenAPI 3 operation so scripted
// clients can discover the fields the knock endpoint accepts. Documents are
// built with kin-openapi.
package openapi
