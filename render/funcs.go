package render

import (
	"context"
	"text/template"

	"github.com/ardnew/specialize/lang"
	"github.com/ardnew/specialize/secret"
)

// funcs returns the template function map. The rename function is defined
// only when renames is non-nil.
func (r *Renderer) funcs(ctx context.Context, renames *Renames) template.FuncMap {
	fm := template.FuncMap{
		"env":      environ(),
		"platform": hostPlatform,
		"target":   hostTarget,
		"hostname": hostname,
		"cwd":      workingDir,

		"fileExists": fileExists,
		"fileIsDir":  fileIsDir,

		"pathAbs":  pathAbs,
		"pathJoin": pathJoin,
		"pathRel":  pathRel,

		"mungPrefix": mungPrefix,
		"mungPrefixIf": func(subject string, prefix ...string) string {
			return mungPrefixIf(subject, fileIsDir, prefix...)
		},

		"toJson": encoder(ctx, lang.EncodingJSON, 0),
		"toYaml": encoder(ctx, lang.EncodingYAML, lang.DefaultIndent),
		"toToml": encoder(ctx, lang.EncodingTOML, 0),

		"expr": func(source string) (any, error) {
			return Eval(source, r.vars)
		},

		"awsParameterStore": func(name string) (string, error) {
			if r.secrets == nil {
				return "", secret.ErrNoProvider
			}

			return r.secrets.Lookup(ctx, name)
		},
	}

	if renames != nil {
		fm["rename"] = renames.Add
	}

	return fm
}

func encoder(ctx context.Context, enc lang.Encoding, indent int) func(any) (string, error) {
	return func(v any) (string, error) {
		return lang.EncodeString(ctx, v, enc, indent)
	}
}
