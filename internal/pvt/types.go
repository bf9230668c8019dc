package pvt

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
)

// ParameterSpec describes one scalar input of a correlation.
type ParameterSpec struct {
	Name    string  `json:"name" yaml:"name"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Step    float64 `json:"step" yaml:"step"`
	Default float64 `json:"default" yaml:"default"`
	Unit    string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Validate checks min < max, step > 0 and min <= default <= max.
func (p ParameterSpec) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("parameter with empty name")
	}
	if !(p.Min < p.Max) {
		return fmt.Errorf("parameter %s: min %g not below max %g", p.Name, p.Min, p.Max)
	}
	if !(p.Step > 0) {
		return fmt.Errorf("parameter %s: step %g not positive", p.Name, p.Step)
	}
	if p.Default < p.Min || p.Default > p.Max {
		return fmt.Errorf("parameter %s: default %g outside [%g, %g]", p.Name, p.Default, p.Min, p.Max)
	}
	return nil
}

func (p ParameterSpec) Contains(v float64) bool {
	return v >= p.Min && v <= p.Max
}

func (p ParameterSpec) Clamp(v float64) float64 {
	return math.Max(p.Min, math.Min(p.Max, v))
}

// Nudge moves v by n steps and clamps the result to the declared range.
func (p ParameterSpec) Nudge(v float64, n int) float64 {
	next := v + float64(n)*p.Step
	// snap to the step lattice anchored at Min
	k := math.Round((next - p.Min) / p.Step)
	return p.Clamp(p.Min + k*p.Step)
}

// Label renders "name (unit)" or just the name.
func (p ParameterSpec) Label() string {
	if p.Unit == "" {
		return p.Name
	}
	return p.Name + " (" + p.Unit + ")"
}

// Snapshot maps every declared parameter name to a concrete value.
type Snapshot map[string]float64

func (s Snapshot) Clone() Snapshot {
	c := make(Snapshot, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// With returns a copy of s with name set to v.
func (s Snapshot) With(name string, v float64) Snapshot {
	c := s.Clone()
	c[name] = v
	return c
}

// Merge overlays other onto a copy of s.
func (s Snapshot) Merge(other Snapshot) Snapshot {
	c := s.Clone()
	for k, v := range other {
		c[k] = v
	}
	return c
}

// Keys returns the names in s in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the value for name or an error wrapping ErrMissingParameter.
func (s Snapshot) Lookup(id, name string) (float64, error) {
	v, ok := s[name]
	if !ok {
		return 0, Fail(id, ErrMissingParameter, name, 0)
	}
	return v, nil
}

// Value is a float that may be absent. The zero value is absent.
type Value struct {
	V  float64
	OK bool
}

// Absent is the sentinel for "not computable here".
var Absent = Value{}

func Some(v float64) Value {
	return Value{V: v, OK: true}
}

// Or returns the value, or def when absent.
func (v Value) Or(def float64) float64 {
	if !v.OK {
		return def
	}
	return v.V
}

// Float returns the value, or NaN when absent.
func (v Value) Float() float64 {
	return v.Or(math.NaN())
}

func (v Value) String() string {
	if !v.OK {
		return "-"
	}
	return strconv.FormatFloat(v.V, 'f', 5, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.OK {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Absent
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// Output is the record produced by one evaluation. Result is the primary
// output; Extras holds the secondary outputs that were computed.
type Output struct {
	Result float64
	Unit   string
	Extras map[string]float64
}

// Extra reports a secondary output, absent when it was not produced.
func (o Output) Extra(name string) Value {
	v, ok := o.Extras[name]
	if !ok {
		return Absent
	}
	return Some(v)
}

// Correlation is a stateless PVT formula.
type Correlation interface {
	// ID is the stable catalog key, e.g. "lasater-pb".
	ID() string
	// Name is the display name.
	Name() string
	// Unit of the primary result.
	Unit() string
	// Params lists inputs in display order.
	Params() []ParameterSpec
	// Extras lists the secondary output keys, in display order.
	Extras() []string
	Evaluate(s Snapshot) (Output, error)
}

// Defaults builds a snapshot of every declared parameter at its default.
func Defaults(c Correlation) Snapshot {
	s := make(Snapshot)
	for _, p := range c.Params() {
		s[p.Name] = p.Default
	}
	return s
}

// FindParam looks up a declared parameter by name.
func FindParam(c Correlation, name string) (ParameterSpec, bool) {
	for _, p := range c.Params() {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// ParamNames returns the declared parameter names in display order.
func ParamNames(c Correlation) []string {
	return names(c.Params())
}

func names(params []ParameterSpec) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}

// Selective is implemented by correlations that read only part of their
// declared parameters, depending on the values in s.
type Selective interface {
	ActiveParams(s Snapshot) []ParameterSpec
}

// Active returns the parameters c reads for s, in display order.
func Active(c Correlation, s Snapshot) []ParameterSpec {
	if sel, ok := c.(Selective); ok {
		return sel.ActiveParams(s)
	}
	return c.Params()
}

// ActiveNames returns the names of Active(c, s).
func ActiveNames(c Correlation, s Snapshot) []string {
	return names(Active(c, s))
}

// Require checks that s holds every parameter c reads for s, except the
// ones in skip.
func Require(c Correlation, s Snapshot, skip ...string) error {
	for _, p := range Active(c, s) {
		if slices.Contains(skip, p.Name) {
			continue
		}
		if _, ok := s[p.Name]; !ok {
			return Fail(c.ID(), ErrMissingParameter, p.Name, 0)
		}
	}
	return nil
}

// Finite rejects NaN and infinite results. Infinity is reported as overflow.
func Finite(id, name string, v float64) error {
	switch {
	case math.IsNaN(v):
		return Fail(id, ErrMathUndefined, name, v)
	case math.IsInf(v, 0):
		return Fail(id, ErrOverflow, name, v)
	}
	return nil
}
