package property

import (
	"errors"
	"fmt"
	"slices"

	"github.com/agentx-labs/codebuilder/internal/builderr"
	"github.com/agentx-labs/codebuilder/internal/lookup"
)

// Counters hands out sequential numbers per key for the duration of one
// build run.
type Counters struct {
	next map[string]int
}

// NewCounters returns an empty counter set.
func NewCounters() *Counters {
	return &Counters{next: make(map[string]int)}
}

// Next returns the next number for key, starting at 1.
func (c *Counters) Next(key string) int {
	c.next[key]++
	return c.next[key]
}

// Context carries everything a resolution may consult outside the data set
// being resolved.
type Context struct {
	Lookup   lookup.Service
	Counters *Counters

	// Parents holds the data of the requesting components, nearest first.
	Parents []Values
	// Root holds the data of the root component. Nil while resolving the
	// root itself.
	Root Values

	// External marks data coming from human input; internal properties are
	// rejected.
	External bool
}

func (c *Context) counters() *Counters {
	if c.Counters == nil {
		c.Counters = NewCounters()
	}
	return c.Counters
}

// Scope is handed to default and processing functions. It exposes already
// resolved values and, for processing, a restricted write handle.
type Scope struct {
	res      *resolution
	def      *Definition
	readable map[string]bool // local names readable by a default; nil means any resolved name
	writable map[string]bool // nil outside processing
	err      error
}

// Get returns the value at a property path; see pathRef for the grammar.
// Reading a local property that has not been resolved yet, or that a
// default did not declare, is a definition error reported after the
// function returns.
func (s *Scope) Get(path string) any {
	ref, err := parsePath(path)
	if err != nil {
		s.fail(builderr.Definitionf("property %q: %v", s.def.Name, err))
		return nil
	}
	switch {
	case s.res.localRef(ref):
		return s.local(ref.name)
	case ref.root:
		return s.res.ctx.Root[ref.name]
	case ref.up > 0:
		if ref.up > len(s.res.ctx.Parents) {
			return nil
		}
		return s.res.ctx.Parents[ref.up-1][ref.name]
	}
	return nil
}

func (s *Scope) local(name string) any {
	if s.readable != nil && !s.readable[name] && name != s.def.Name {
		s.fail(builderr.Definitionf("property %q reads undeclared dependency %q", s.def.Name, name))
		return nil
	}
	if !s.res.done[name] && name != s.def.Name {
		s.fail(builderr.Definitionf("property %q reads unresolved property %q", s.def.Name, name))
		return nil
	}
	return s.res.values[name]
}

// String returns the value at path as a string.
func (s *Scope) String(path string) string {
	return Values{"v": s.Get(path)}.String("v")
}

// Strings returns the list value at path.
func (s *Scope) Strings(path string) []string {
	l, _ := s.Get(path).([]string)
	return l
}

// Lookup returns the lookup service of the current run.
func (s *Scope) Lookup() lookup.Service {
	return s.res.ctx.Lookup
}

// Next returns the next sequential number for key within the current run.
func (s *Scope) Next(key string) int {
	return s.res.ctx.counters().Next(key)
}

// Set overwrites a property value. Only allowed from processing functions,
// for the property itself or one of its declared write targets.
func (s *Scope) Set(name string, value any) {
	if s.writable == nil {
		s.fail(builderr.Definitionf("property %q: Set called outside processing", s.def.Name))
		return
	}
	if name != s.def.Name && !s.writable[name] {
		s.fail(builderr.Definitionf("processing of %q writes undeclared target %q", s.def.Name, name))
		return
	}
	target, _ := s.res.schema.Get(name)
	if value == nil {
		delete(s.res.values, name)
		return
	}
	v, msg := normalize(target.Kind, value)
	if msg != "" {
		s.fail(builderr.Definitionf("processing of %q wrote %q: %s", s.def.Name, name, msg))
		return
	}
	s.res.values[name] = v
}

func (s *Scope) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

type resolution struct {
	schema *Schema
	ctx    *Context
	values Values
	done   map[string]bool
}

// localRef reports whether ref names a property of the data set being
// resolved. While the root itself is resolved, %root paths are local.
func (r *resolution) localRef(ref pathRef) bool {
	return ref.local() || (ref.root && r.ctx.Root == nil)
}

// Resolve computes every unset value of schema from partial, in dependency
// order. For each property: a supplied value wins, otherwise the default is
// evaluated; then options and the validator are checked; then processing
// runs. Processing is a single pass and may overwrite declared targets,
// including ones already resolved. Supplied empty values (empty string or
// list) count as unset, so the default still applies.
//
// User input errors (missing values, validation failures, unknown ids) are
// collected across independent properties and returned joined. Structural
// errors (cycles, schema contract violations) are returned immediately.
func Resolve(schema *Schema, partial Values, ctx *Context) (Values, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	if err := schema.check(); err != nil {
		return nil, err
	}

	res := &resolution{
		schema: schema,
		ctx:    ctx,
		values: make(Values, len(partial)),
		done:   make(map[string]bool, len(schema.defs)),
	}

	var errs []error
	for _, key := range sortedKeys(partial) {
		d, ok := schema.Get(key)
		if !ok {
			errs = append(errs, &builderr.InvalidInputError{Subject: "property", Value: key, Message: "unknown property"})
			continue
		}
		if ctx.External && d.Internal {
			errs = append(errs, &builderr.InvalidInputError{Subject: "property", Value: key, Message: "internal property cannot be supplied"})
			continue
		}
		if partial[key] == nil {
			continue
		}
		v, msg := normalize(d.Kind, partial[key])
		if msg != "" {
			errs = append(errs, &builderr.ValidationError{Property: key, Message: msg})
			continue
		}
		if isEmpty(v) {
			continue
		}
		res.values[key] = v
	}

	order, err := evaluationOrder(schema, res.values, ctx.Root == nil)
	if err != nil {
		return nil, err
	}

	failed := make(map[string]bool)
	for _, d := range order {
		if res.blockedBy(d, failed) {
			failed[d.Name] = true
			continue
		}
		if err := res.resolveOne(d); err != nil {
			if builderr.IsStructural(err) || !builderr.IsUserInput(err) {
				return nil, err
			}
			errs = append(errs, err)
			failed[d.Name] = true
		}
		res.done[d.Name] = true
	}

	if len(errs) > 0 {
		return res.values, errors.Join(errs...)
	}
	return res.values, nil
}

// blockedBy reports whether d depends on a property that already failed.
func (r *resolution) blockedBy(d *Definition, failed map[string]bool) bool {
	if len(failed) == 0 {
		return false
	}
	if !r.values.Has(d.Name) && d.Default != nil {
		for _, dep := range d.Default.deps {
			if ref, err := parsePath(dep); err == nil && r.localRef(ref) && failed[ref.name] {
				return true
			}
		}
	}
	for _, w := range r.schema.defs {
		if w.Processing != nil && failed[w.Name] && slices.Contains(w.Processing.Writes, d.Name) {
			return true
		}
	}
	return false
}

func (r *resolution) resolveOne(d *Definition) error {
	if !r.values.Has(d.Name) && d.Default != nil {
		v, err := r.evalDefault(d)
		if err != nil {
			return err
		}
		if v != nil {
			nv, msg := normalize(d.Kind, v)
			if msg != "" {
				return builderr.Definitionf("default of %q: %s", d.Name, msg)
			}
			r.values[d.Name] = nv
		}
	}

	v, ok := r.values[d.Name]
	if !ok || isEmpty(v) {
		if d.Required {
			return &builderr.MissingRequiredValueError{Property: d.Name}
		}
		return nil
	}

	if d.Options != nil {
		if err := r.checkOptions(d, v); err != nil {
			return err
		}
	}

	if d.Validator != nil && !d.Validator.Check(v) {
		return &builderr.ValidationError{Property: d.Name, Message: d.Validator.message(d)}
	}

	if d.Processing != nil && d.Processing.Fn != nil {
		s := &Scope{res: r, def: d, writable: make(map[string]bool, len(d.Processing.Writes))}
		for _, w := range d.Processing.Writes {
			s.writable[w] = true
		}
		err := d.Processing.Fn(s, v)
		if s.err != nil {
			return s.err
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *resolution) evalDefault(d *Definition) (any, error) {
	def := d.Default
	if def.fn == nil {
		return def.literal, nil
	}
	s := &Scope{res: r, def: d, readable: make(map[string]bool, len(def.deps))}
	for _, dep := range def.deps {
		if ref, err := parsePath(dep); err == nil && r.localRef(ref) {
			s.readable[ref.name] = true
		}
	}
	v, err := def.fn(s)
	if s.err != nil {
		return nil, s.err
	}
	if err != nil {
		return nil, fmt.Errorf("default of %q: %w", d.Name, err)
	}
	return v, nil
}

func (r *resolution) checkOptions(d *Definition, v any) error {
	opts, err := d.Options(r.ctx.Lookup)
	if err != nil {
		return fmt.Errorf("listing options for %q: %w", d.Name, err)
	}
	if opts == nil {
		return nil
	}
	allowed := make(map[string]bool, len(opts))
	for _, o := range opts {
		allowed[o.ID] = true
	}
	var candidates []string
	if list, ok := v.([]string); ok {
		candidates = list
	} else {
		candidates = []string{fmt.Sprint(v)}
	}
	for _, c := range candidates {
		if !allowed[c] {
			return &builderr.InvalidInputError{Subject: d.DisplayLabel(), Value: c, Message: "not an available option"}
		}
	}
	return nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []map[string]any:
		return len(t) == 0
	}
	return false
}

// evaluationOrder sorts the schema topologically. Unsupplied properties
// depend on the local properties their default reads; rootLocal makes
// %root paths local too. A processing target depends on its writer unless
// the writer already depends on it, in which case the writer overwrites a
// resolved value. Ties are broken by declaration order.
func evaluationOrder(schema *Schema, supplied Values, rootLocal bool) ([]*Definition, error) {
	n := len(schema.defs)
	edges := make([][]int, n)
	indeg := make([]int, n)
	addEdge := func(from, to int) {
		if from == to || slices.Contains(edges[from], to) {
			return
		}
		edges[from] = append(edges[from], to)
		indeg[to]++
	}

	for i, d := range schema.defs {
		if d.Default == nil || supplied.Has(d.Name) {
			continue
		}
		for _, dep := range d.Default.deps {
			ref, _ := parsePath(dep)
			if !ref.local() && !(ref.root && rootLocal) {
				continue
			}
			from, ok := schema.index[ref.name]
			if !ok {
				return nil, builderr.Definitionf("property %q depends on unknown root property %q", d.Name, ref.name)
			}
			addEdge(from, i)
		}
	}
	for i, d := range schema.defs {
		if d.Processing == nil {
			continue
		}
		for _, w := range d.Processing.Writes {
			if target := schema.index[w]; !reachable(edges, target, i) {
				addEdge(i, target)
			}
		}
	}

	order := make([]*Definition, 0, n)
	visited := make([]bool, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !visited[i] && indeg[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, &builderr.CyclicDefaultError{Cycle: findCycle(schema, edges, visited)}
		}
		visited[next] = true
		order = append(order, schema.defs[next])
		for _, to := range edges[next] {
			indeg[to]--
		}
	}
	return order, nil
}

// reachable reports whether to can be reached from from along edges.
func reachable(edges [][]int, from, to int) bool {
	if from == to {
		return true
	}
	seen := make([]bool, len(edges))
	stack := []int{from}
	seen[from] = true
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range edges[u] {
			if v == to {
				return true
			}
			if !seen[v] {
				seen[v] = true
				stack = append(stack, v)
			}
		}
	}
	return false
}

// findCycle returns one cycle among the unvisited nodes as property names,
// first name repeated at the end.
func findCycle(schema *Schema, edges [][]int, visited []bool) []string {
	const (
		white = iota
		grey
		black
	)
	color := make([]int, len(edges))
	var stack []int
	var cycle []string

	var dfs func(int) bool
	dfs = func(u int) bool {
		color[u] = grey
		stack = append(stack, u)
		for _, v := range edges[u] {
			if visited[v] {
				continue
			}
			if color[v] == grey {
				start := slices.Index(stack, v)
				for _, i := range stack[start:] {
					cycle = append(cycle, schema.defs[i].Name)
				}
				cycle = append(cycle, schema.defs[v].Name)
				return true
			}
			if color[v] == white && dfs(v) {
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[u] = black
		return false
	}

	for i := range edges {
		if !visited[i] && color[i] == white && dfs(i) {
			return cycle
		}
	}
	return nil
}
