// Package web embeds the repair form, the task board and their client
// scripts.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html tasks.html static
var files embed.FS

// Page names.
const (
	IndexPage = "index.html"
	TasksPage = "tasks.html"
)

// Page returns the raw HTML of a named page.
func Page(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Static returns the client script tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// static/ is embedded at build time
		panic(err)
	}
	return sub
}
