package hcl

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/mkr/internal/ctxlog"
	"github.com/specialistvlad/mkr/internal/handlers"
	"github.com/specialistvlad/mkr/internal/model"
	"github.com/specialistvlad/mkr/internal/target"
	"github.com/zclconf/go-cty/cty"
)

// validName is the shape of a target name. Names starting with a dash would
// be read as options on the command line.
var validName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// Loader loads build files into target definitions.
type Loader struct {
	handlers  *handlers.Handlers
	converter *Converter
	stdout    io.Writer
	stderr    io.Writer
}

// NewLoader creates a loader resolving action types through h. Actions
// write to stdout and stderr.
func NewLoader(h *handlers.Handlers, stdout, stderr io.Writer) *Loader {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Loader{
		handlers:  h,
		converter: NewConverter(),
		stdout:    stdout,
		stderr:    stderr,
	}
}

// Load parses path and returns its targets in declaration order. vars
// override variable defaults. Every definition problem found is returned in
// one *target.IllegalDefinitionError.
func (l *Loader) Load(ctx context.Context, path string, vars map[string]string) ([]target.Target, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		return nil, fmt.Errorf("no build file given")
	}

	bf, err := model.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	var problems []string
	for _, d := range bf.Diagnostics {
		problems = append(problems, d.Error())
	}

	values, varProblems := l.evalVariables(ctx, bf.Variables, vars)
	problems = append(problems, varProblems...)
	evalCtx := withVars(newEvalContext(), values)

	defaults := 0
	targets := make([]target.Target, 0, len(bf.Targets))
	for _, mt := range bf.Targets {
		t, tProblems := l.buildTarget(ctx, mt, evalCtx)
		problems = append(problems, tProblems...)
		if mt.IsDefault {
			defaults++
			if defaults == 2 {
				problems = append(problems, fmt.Sprintf("%s: only one default block is allowed", mt.FSInformation))
			}
		}
		targets = append(targets, t)
	}

	if len(problems) > 0 {
		return nil, &target.IllegalDefinitionError{Problems: problems}
	}
	logger.Debug("Build file loaded.", "path", path, "targets", len(targets))
	return targets, nil
}

func (l *Loader) evalVariables(ctx context.Context, vars []*model.Variable, overrides map[string]string) (map[string]cty.Value, []string) {
	var problems []string
	base := newEvalContext()
	values := make(map[string]cty.Value, len(vars))
	declared := make(map[string]bool, len(vars))

	for _, v := range vars {
		if declared[v.Name] {
			problems = append(problems, fmt.Sprintf("%s: variable %q is declared more than once", v.FSInformation, v.Name))
			continue
		}
		declared[v.Name] = true

		if override, ok := overrides[v.Name]; ok {
			val, err := l.converter.ToCtyValue(override)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: variable %q: %v", v.FSInformation, v.Name, err))
				continue
			}
			values[v.Name] = val
			continue
		}
		val, diags := v.Default.Value(base)
		if diags.HasErrors() {
			problems = append(problems, fmt.Sprintf("%s: variable %q: %s", v.FSInformation, v.Name, diags.Error()))
			continue
		}
		if val.IsNull() {
			problems = append(problems, fmt.Sprintf("%s: variable %q has no default and was not set", v.FSInformation, v.Name))
			continue
		}
		values[v.Name] = val
	}

	unknown := make([]string, 0)
	for name := range overrides {
		if !declared[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		problems = append(problems, fmt.Sprintf("variable %q is set but not declared", name))
	}

	ctxlog.FromContext(ctx).Debug("Variables evaluated.", "count", len(values))
	return values, problems
}

// step is one decoded action of a target.
type step struct {
	kind    string
	handler *handlers.RegisteredHandler
	input   any
	env     handlers.Env
}

func (l *Loader) buildTarget(ctx context.Context, mt *model.Target, evalCtx *hcl.EvalContext) (target.Target, []string) {
	var problems []string
	where := mt.FSInformation.String()

	name := mt.Name
	if mt.IsDefault {
		name = target.DefaultName
	} else if !validName.MatchString(name) {
		problems = append(problems, fmt.Sprintf("%s: invalid target name %q", where, name))
	}

	t := target.Target{Name: name, Source: where}
	if _, err := l.converter.DecodeExpression(ctx, mt.DependsOn, evalCtx, &t.Dependencies); err != nil {
		problems = append(problems, fmt.Sprintf("%s: target %q: depends_on: %v", where, name, err))
	}
	if _, err := l.converter.DecodeExpression(ctx, mt.Description, evalCtx, &t.Description); err != nil {
		problems = append(problems, fmt.Sprintf("%s: target %q: description: %v", where, name, err))
	}

	env := handlers.Env{
		BaseDir: mt.FSInformation.Dir(),
		Stdout:  l.stdout,
		Stderr:  l.stderr,
	}
	steps := make([]step, 0, len(mt.Actions))
	for _, a := range mt.Actions {
		h, ok := l.handlers.Get(a.Type)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: target %q: unknown action type %q", a.FSInformation, name, a.Type))
			continue
		}
		input := h.Input()
		if diags := gohcl.DecodeBody(a.Body, evalCtx, input); diags.HasErrors() {
			problems = append(problems, fmt.Sprintf("target %q: action %q: %s", name, a.Type, diags.Error()))
			continue
		}
		steps = append(steps, step{kind: a.Type, handler: h, input: input, env: env})
	}

	if len(steps) > 0 {
		t.Action = runSteps(steps)
	}
	return t, problems
}

func runSteps(steps []step) target.Action {
	return func(ctx context.Context) error {
		logger := ctxlog.FromContext(ctx)
		for i, s := range steps {
			logger.Debug("Running action.", "index", i, "type", s.kind)
			if err := s.handler.Fn(ctx, s.env, s.input); err != nil {
				return fmt.Errorf("action '%s' failed: %w", s.kind, err)
			}
		}
		return nil
	}
}
