package units

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownDimension is returned when a dimension name is not registered.
	ErrUnknownDimension = errors.New("unknown dimension")
	// ErrInvalidDimension is returned for malformed compound dimension expressions.
	ErrInvalidDimension = errors.New("invalid dimension expression")
	// ErrInvalidScaling is returned for non-positive or non-finite SI factors.
	ErrInvalidScaling = errors.New("invalid SI scaling")
)

// Dimensionless is the name of the unit-free dimension present in every registry.
const Dimensionless = "1"

// Dimension is a named physical quantity and the factor converting one of its
// native units into SI.
type Dimension struct {
	Name      string
	SIScaling float64
}

// Registry holds the dimensions of one unit system. It is safe for concurrent
// use; registered dimensions are never removed, so handles stay valid for the
// registry's lifetime.
type Registry struct {
	name string

	mu   sync.RWMutex
	dims map[string]Dimension
}

// NewRegistry creates a registry holding only the dimensionless entry.
func NewRegistry(name string) *Registry {
	return &Registry{
		name: name,
		dims: map[string]Dimension{
			Dimensionless: {Name: Dimensionless, SIScaling: 1},
		},
	}
}

// Name returns the unit system name.
func (r *Registry) Name() string {
	return r.name
}

// Register adds a dimension and returns a handle to it. Registering the same
// name twice or using an invalid factor is a programming error and panics.
func (r *Registry) Register(name string, siScaling float64) Handle {
	if err := validateScaling(siScaling); err != nil {
		panic(fmt.Sprintf("units: dimension '%s' in system '%s': %v", name, r.name, err))
	}
	if name == "" || containsOperator(name) {
		panic(fmt.Sprintf("units: invalid dimension name %q in system '%s'", name, r.name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.dims[name]; exists {
		panic(fmt.Sprintf("units: dimension '%s' already registered in system '%s'", name, r.name))
	}
	r.dims[name] = Dimension{Name: name, SIScaling: siScaling}
	return Handle{reg: r, key: name}
}

// Has reports whether name is registered, either as a base dimension or as an
// already parsed compound expression.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.dims[name]
	return ok
}

// Lookup returns a handle to a registered dimension.
func (r *Registry) Lookup(name string) (Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.dims[name]; !ok {
		return Handle{}, fmt.Errorf("%w: '%s' in system '%s'", ErrUnknownDimension, name, r.name)
	}
	return Handle{reg: r, key: name}, nil
}

// Parse returns a handle for a dimension expression. Plain names are looked up
// directly. Compound expressions combine registered names with '*' and at most
// one '/', e.g. "Length*Length/Time"; their factor is the product of the
// numerator factors divided by the product of the denominator factors.
func (r *Registry) Parse(expr string) (Handle, error) {
	expr = strings.TrimSpace(expr)
	if r.Has(expr) {
		return Handle{reg: r, key: expr}, nil
	}
	if !strings.ContainsAny(expr, "*/") {
		return r.Lookup(expr)
	}

	parts := strings.Split(expr, "/")
	if len(parts) > 2 {
		return Handle{}, fmt.Errorf("%w: %q has more than one '/'", ErrInvalidDimension, expr)
	}

	scaling, err := r.product(expr, parts[0])
	if err != nil {
		return Handle{}, err
	}
	if len(parts) == 2 {
		denominator, err := r.product(expr, parts[1])
		if err != nil {
			return Handle{}, err
		}
		scaling /= denominator
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.dims[expr]; !exists {
		r.dims[expr] = Dimension{Name: expr, SIScaling: scaling}
	}
	return Handle{reg: r, key: expr}, nil
}

func (r *Registry) product(expr, factors string) (float64, error) {
	scaling := 1.0
	for _, name := range strings.Split(factors, "*") {
		name = strings.TrimSpace(name)
		if name == "" {
			return 0, fmt.Errorf("%w: %q has an empty factor", ErrInvalidDimension, expr)
		}
		dim, ok := r.dimension(name)
		if !ok {
			return 0, fmt.Errorf("%w: '%s' in %q (system '%s')", ErrUnknownDimension, name, expr, r.name)
		}
		scaling *= dim.SIScaling
	}
	return scaling, nil
}

// Dimensions returns every registered dimension sorted by name, including
// memoized compound expressions.
func (r *Registry) Dimensions() []Dimension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dims := make([]Dimension, 0, len(r.dims))
	for _, d := range r.dims {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i].Name < dims[j].Name })
	return dims
}

func (r *Registry) dimension(name string) (Dimension, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dims[name]
	return d, ok
}

// set registers or replaces a base dimension. Used when a loaded system
// overrides a dimension inherited from its base.
func (r *Registry) set(name string, siScaling float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dims[name] = Dimension{Name: name, SIScaling: siScaling}
}

func containsOperator(name string) bool {
	return strings.ContainsAny(name, "*/")
}

func validateScaling(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidScaling, f)
	}
	return nil
}
