// Package openapi exposes the public contracts for deriving unit schemas
// from OpenAPI documents. Implementations live under internal/openapi to
// keep the kin-openapi dependency hidden from consumers.
package openapi
