package render

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/ardnew/specialize/log"
	"github.com/ardnew/specialize/secret"
)

// Renderer renders templates against a fixed set of variables.
type Renderer struct {
	vars    map[string]any
	secrets secret.Provider
	logger  log.Logger
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithSecrets sets the provider used by the awsParameterStore function.
func WithSecrets(p secret.Provider) Option {
	return func(r *Renderer) { r.secrets = p }
}

// WithLogger sets the structured logger.
func WithLogger(logger log.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// New returns a Renderer whose templates see vars as dot.
func New(vars map[string]any, opts ...Option) *Renderer {
	if vars == nil {
		vars = make(map[string]any)
	}

	r := &Renderer{vars: vars}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render renders the template file or directory src to dst as described by
// [NewPlan]. When src is a directory, templates may call rename, and the
// recorded operations are applied after every file is written.
func (r *Renderer) Render(ctx context.Context, src, dst string) error {
	plan, err := NewPlan(src, dst)
	if err != nil {
		return err
	}

	var renames *Renames
	if plan.Dir {
		renames = new(Renames)
	}

	for _, job := range plan.Jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.renderFile(ctx, job, renames); err != nil {
			return err
		}
	}

	r.logger.DebugContext(ctx, "render complete",
		slog.String("src", src),
		slog.String("dst", dst),
		slog.Int("file_count", len(plan.Jobs)),
		slog.Int("rename_count", renames.Len()),
	)

	if renames == nil {
		return nil
	}

	return renames.Apply(ctx, dst, r.logger)
}

// RenderString renders the template text, identified by name in errors.
func (r *Renderer) RenderString(ctx context.Context, name, text string) (string, error) {
	return r.execute(ctx, name, text, nil)
}

func (r *Renderer) renderFile(ctx context.Context, job Job, renames *Renames) error {
	info, err := os.Stat(job.Src)
	if err != nil {
		return &FileError{File: job.Src, Message: err.Error(), Err: err}
	}

	data, err := os.ReadFile(job.Src)
	if err != nil {
		return &FileError{File: job.Src, Message: err.Error(), Err: err}
	}

	out, err := r.execute(ctx, job.Src, string(data), renames)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(job.Dst); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &FileError{File: job.Src, Message: err.Error(), Err: err}
		}
	}

	if err := os.WriteFile(job.Dst, []byte(out), info.Mode().Perm()); err != nil {
		return &FileError{File: job.Src, Message: err.Error(), Err: err}
	}

	r.logger.TraceContext(ctx, "rendered",
		slog.String("src", job.Src),
		slog.String("dst", job.Dst),
		slog.Int("size", len(out)),
	)

	return nil
}

func (r *Renderer) execute(
	ctx context.Context,
	name, text string,
	renames *Renames,
) (string, error) {
	t, err := template.New(name).
		Option("missingkey=error").
		Funcs(r.funcs(ctx, renames)).
		Parse(text)
	if err != nil {
		return "", syntaxError(name, err)
	}

	var sb strings.Builder

	if err := t.Execute(&sb, r.vars); err != nil {
		msg := strings.TrimPrefix(err.Error(), "template: ")
		msg = strings.TrimPrefix(msg, name+":")

		return "", &FileError{File: name, Message: msg, Err: ErrTemplate.Wrap(err)}
	}

	return sb.String(), nil
}

// syntaxError converts a template parse error of the form
// "template: NAME:LINE: MESSAGE" to a [FileError] with a line number.
func syntaxError(name string, err error) *FileError {
	fe := &FileError{File: name, Message: err.Error(), Err: ErrTemplate.Wrap(err)}

	rest, ok := strings.CutPrefix(err.Error(), "template: "+name+":")
	if !ok {
		return fe
	}

	num, msg, ok := strings.Cut(rest, ": ")
	if !ok {
		return fe
	}

	line, convErr := strconv.Atoi(num)
	if convErr != nil || line < 1 {
		return fe
	}

	fe.Line, fe.Message = line, msg

	return fe
}
