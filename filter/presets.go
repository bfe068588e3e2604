package filter

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/s0up4200/eiga/tmdb"
)

// Presets is a named set of compiled filters. Any filter argument that is
// not a preset name is treated as an ad-hoc expression.
type Presets struct {
	compiler Compiler
	eval     *ConcurrentEvaluator

	mu     sync.RWMutex
	byName map[string]CompiledFilter
}

// NewPresets returns an empty preset set. The options tune the evaluator
// used by Apply and Run.
func NewPresets(opts ...EvaluatorOption) *Presets {
	return &Presets{
		compiler: NewExprCompiler(WithCache(100)),
		eval:     NewConcurrentEvaluator(opts...),
		byName:   make(map[string]CompiledFilter),
	}
}

// Set compiles expression and stores it under name
func (p *Presets) Set(name, expression string) error {
	f, err := p.compiler.Compile(expression)
	if err != nil {
		return &PresetError{Name: name, Err: err}
	}

	p.mu.Lock()
	p.byName[name] = f
	p.mu.Unlock()
	return nil
}

// Load adds every definition. Names are compiled in sorted order and the
// set is left untouched if any of them fails.
func (p *Presets) Load(defs map[string]string) error {
	staged := make(map[string]CompiledFilter, len(defs))
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		f, err := p.compiler.Compile(defs[name])
		if err != nil {
			return &PresetError{Name: name, Err: err}
		}
		staged[name] = f
	}

	p.mu.Lock()
	maps.Copy(p.byName, staged)
	p.mu.Unlock()
	return nil
}

// Remove drops a preset; unknown names are ignored
func (p *Presets) Remove(name string) {
	p.mu.Lock()
	delete(p.byName, name)
	p.mu.Unlock()
}

// Lookup returns the preset registered under name
func (p *Presets) Lookup(name string) (CompiledFilter, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.byName[name]
	return f, ok
}

// Names lists the registered presets in sorted order
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.byName))
}

// Resolve maps a preset name to its filter, falling back to compiling
// nameOrExpr as an expression
func (p *Presets) Resolve(nameOrExpr string) (CompiledFilter, error) {
	if f, ok := p.Lookup(nameOrExpr); ok {
		return f, nil
	}
	return p.compiler.Compile(nameOrExpr)
}

// Apply keeps the media matched by a preset or expression
func (p *Presets) Apply(ctx context.Context, nameOrExpr string, media []tmdb.Media) ([]tmdb.Media, error) {
	f, err := p.Resolve(nameOrExpr)
	if err != nil {
		return nil, err
	}
	return p.eval.Evaluate(ctx, f, media)
}

// Run evaluates the named presets, or all of them when names is empty, and
// returns the matches keyed by preset name
func (p *Presets) Run(ctx context.Context, media []tmdb.Media, names ...string) (map[string][]tmdb.Media, error) {
	selected, err := p.pick(names)
	if err != nil {
		return nil, err
	}
	return p.eval.EvaluateBatch(ctx, selected, media)
}

func (p *Presets) pick(names []string) (map[string]CompiledFilter, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(names) == 0 {
		return maps.Clone(p.byName), nil
	}

	picked := make(map[string]CompiledFilter, len(names))
	for _, name := range names {
		f, ok := p.byName[name]
		if !ok {
			return nil, &PresetError{Name: name, Err: ErrUnknownPreset}
		}
		picked[name] = f
	}
	return picked, nil
}
