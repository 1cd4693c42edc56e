// Package schemas embeds the JSON Schemas that catalog data files must satisfy.
package schemas

import "embed"

// Schema file names
const (
	Jobs       = "jobs.schema.json"
	Resources  = "resources.schema.json"
	Mentorship = "mentorship.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the content of an embedded schema file
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
