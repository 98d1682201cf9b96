// Package assets embeds the default word bank and the SQLite migrations.
package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed categories.yaml sql/*.sql
var FS embed.FS

// Categories returns the embedded default word bank (YAML).
func Categories() ([]byte, error) {
	return FS.ReadFile("categories.yaml")
}

// Migrations lists the embedded *.sql files in lexical order.
func Migrations() ([]string, error) {
	var out []string
	err := fs.WalkDir(FS, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			out = append(out, path)
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}
