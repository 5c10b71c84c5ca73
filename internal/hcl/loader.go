package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/railpath/internal/config"
	"github.com/specialistvlad/railpath/internal/ctxlog"
	"github.com/specialistvlad/railpath/internal/fsutil"
	"github.com/specialistvlad/railpath/internal/schema"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	evalCtx *hcl.EvalContext
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{evalCtx: newEvalContext()}
}

// newEvalContext exposes a small set of cty standard library functions to
// layout expressions, e.g. `points = [for x in range(0, 30, 10) : [x, 64, 0]]`.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"concat": stdlib.ConcatFunc,
			"range":  stdlib.RangeFunc,
			"min":    stdlib.MinFunc,
			"max":    stdlib.MaxFunc,
		},
	}
}

// Load parses every .hcl file under paths and merges their blocks into a
// single model. Settings blocks are merged attribute by attribute in file
// order; worlds with the same name are merged.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{Settings: config.DefaultSettings()}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, l.evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := l.merge(ctx, model, &root); err != nil {
			return nil, fmt.Errorf("file %s: %w", file, err)
		}
	}

	if err := validateModel(model); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.",
		"worlds", len(model.Worlds), "routes", len(model.Routes), "trains", len(model.Trains))
	return model, nil
}

func (l *Loader) merge(ctx context.Context, model *config.Model, root *schema.File) error {
	for _, s := range root.Settings {
		if err := translateSettings(&model.Settings, s); err != nil {
			return err
		}
	}
	for _, w := range root.Worlds {
		world, err := translateWorld(w)
		if err != nil {
			return err
		}
		if existing := model.World(world.Name); existing != nil {
			existing.Tracks = append(existing.Tracks, world.Tracks...)
			existing.Signs = append(existing.Signs, world.Signs...)
			continue
		}
		model.Worlds = append(model.Worlds, world)
	}
	for _, r := range root.Routes {
		model.Routes = append(model.Routes, &config.Route{Name: r.Name, Destinations: r.Destinations})
	}
	for _, t := range root.Trains {
		train, err := translateTrain(t)
		if err != nil {
			return err
		}
		model.Trains = append(model.Trains, train)
	}
	ctxlog.FromContext(ctx).Debug("Merged HCL file.",
		"settings", len(root.Settings), "worlds", len(root.Worlds),
		"routes", len(root.Routes), "trains", len(root.Trains))
	return nil
}
