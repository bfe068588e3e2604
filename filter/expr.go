package filter

import (
	"errors"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/eiga/cache"
	"github.com/s0up4200/eiga/tmdb"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	funcs      map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = cache.NewLRU[string, CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.customFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		customFuncs: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	// a zero-valued record gives the checker the type of every field
	c.typeEnv = createRuntimeEnvironment(&tmdb.Movie{})
	maps.Copy(c.typeEnv, c.customFuncs)

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	customFuncs map[string]any
	typeEnv     map[string]any
	cache       *cache.LRU[string, CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Message: "empty expression"}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.typeEnv),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		compErr := &CompilationError{Expression: expression, Message: err.Error(), Err: err}
		var fileErr *file.Error
		if errors.As(err, &fileErr) {
			compErr.Message = fileErr.Message
			compErr.Column = fileErr.Column + 1
		}
		return nil, compErr
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		funcs:      c.customFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Match runs the filter against a media record
func (f *exprFilter) Match(m tmdb.Media) (bool, error) {
	env := createRuntimeEnvironment(m)
	maps.Copy(env, f.funcs)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MediaID:    m.MediaID(),
			MediaType:  m.MediaType(),
			Title:      m.MediaTitle(),
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Evaluate reports whether the media matches, treating errors as no match
func (f *exprFilter) Evaluate(m tmdb.Media) bool {
	ok, err := f.Match(m)
	return err == nil && ok
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// Compile compiles an expression without caching
func Compile(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}
