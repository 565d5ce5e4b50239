// Package schemas embeds the JSON schemas for the events this service
// consumes.
package schemas

import "embed"

//go:embed events
var SchemasFS embed.FS
