// Package manifest synthesizes the minimal top-level Puppet manifest for a
// run: one default node block with the override variable assignments and one
// include per requested module.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/hoici/hoidev/internal/hiera"
	"github.com/hoici/hoidev/internal/logging"
)

// Filename is the manifest's fixed name inside the build directory.
const Filename = "site.pp"

var siteTemplate = template.Must(
	template.New("site").Funcs(template.FuncMap{
		"quote": quote,
	}).Parse(`node default {
{{- range .Variables}}
  ${{.Key}} = {{quote .Value}}
{{- end}}
{{- range .Modules}}
  include {{.}}
{{- end}}
}
`))

type templateData struct {
	Variables []hiera.Variable
	Modules   []string
}

// Generate renders the manifest. Variables keep their document order,
// modules keep their argument order, and duplicate modules pass through.
func Generate(vars []hiera.Variable, modules []string) ([]byte, error) {
	var buf bytes.Buffer
	err := siteTemplate.Execute(&buf, templateData{Variables: vars, Modules: modules})
	if err != nil {
		return nil, fmt.Errorf("failed to render manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the manifest into buildDir and returns its path. Detected
// override variables are reported to the user.
func Write(buildDir string, vars []hiera.Variable, modules []string) (string, error) {
	for _, v := range vars {
		logging.UserInfo("Setting $%s = %s", v.Key, quote(v.Value))
	}

	data, err := Generate(vars, modules)
	if err != nil {
		return "", err
	}

	path := filepath.Join(buildDir, Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	logging.Debug("wrote manifest", "path", path, "modules", len(modules), "variables", len(vars))
	return path, nil
}

// quote renders a value as a Puppet double-quoted string literal.
// Backslashes, double quotes, and dollar signs are escaped so override
// values are taken literally rather than interpolated.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}
