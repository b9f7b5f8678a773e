package radar

import (
	"errors"
	"fmt"
	"math"

	"alpr/gfx"
)

const (
	// AxisCount is the number of chart axes.
	AxisCount = 6
	// RingCount is the number of concentric reference rings.
	RingCount = 5
)

var (
	ErrUnknownProfile = errors.New("unknown profile")
	ErrInvalidProfile = errors.New("invalid profile")
)

// Values holds one score in [0,1] per axis, in axis order.
type Values [AxisCount]float64

// ValuesFrom converts a score slice, checking its length and range.
func ValuesFrom(s []float64) (Values, error) {
	var v Values
	if len(s) != AxisCount {
		return v, fmt.Errorf("%w: want %d values, got %d", ErrInvalidProfile, AxisCount, len(s))
	}
	copy(v[:], s)
	return v, v.validate()
}

func (v Values) validate() error {
	for i, x := range v {
		if math.IsNaN(x) || x < 0 || x > 1 {
			return fmt.Errorf("%w: axis %d value %v out of [0,1]", ErrInvalidProfile, i, x)
		}
	}
	return nil
}

// Profile is a named score vector with its display color.
type Profile struct {
	ID     string
	Name   string
	Values Values
	Color  gfx.Color
}

// Registry is a read-only profile catalogue keyed by id, in declaration order.
type Registry struct {
	profiles []Profile
	index    map[string]int
}

// NewRegistry validates profiles and builds a registry.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("%w: empty catalogue", ErrInvalidProfile)
	}
	r := &Registry{
		profiles: make([]Profile, 0, len(profiles)),
		index:    make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: missing id", ErrInvalidProfile)
		}
		if _, dup := r.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidProfile, p.ID)
		}
		if err := p.Values.validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.ID, err)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		r.index[p.ID] = len(r.profiles)
		r.profiles = append(r.profiles, p)
	}
	return r, nil
}

// Lookup returns the profile registered under id.
func (r *Registry) Lookup(id string) (Profile, error) {
	if r != nil {
		if i, ok := r.index[id]; ok {
			return r.profiles[i], nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
}

// Index returns the position of id in declaration order, or -1.
func (r *Registry) Index(id string) int {
	if r == nil {
		return -1
	}
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// At returns the i-th profile in declaration order.
func (r *Registry) At(i int) (Profile, bool) {
	if r == nil || i < 0 || i >= len(r.profiles) {
		return Profile{}, false
	}
	return r.profiles[i], true
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.profiles)
}

// Profiles returns a copy of the catalogue in declaration order.
func (r *Registry) Profiles() []Profile {
	if r == nil {
		return nil
	}
	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// DefaultProfileID is selected when no default is configured.
const DefaultProfileID = "independent"

// DefaultProfiles returns the reference learner profiles.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			ID:     "independent",
			Name:   "Independent Thinker",
			Values: Values{0.92, 0.78, 0.85, 0.72, 0.68, 0.65},
			Color:  gfx.RGB(99, 102, 241),
		},
		{
			ID:     "collaborative",
			Name:   "Collaborative Learner",
			Values: Values{0.65, 0.82, 0.70, 0.88, 0.80, 0.75},
			Color:  gfx.RGB(6, 182, 212),
		},
		{
			ID:     "explorer",
			Name:   "Creative Explorer",
			Values: Values{0.70, 0.60, 0.90, 0.65, 0.85, 0.88},
			Color:  gfx.RGB(245, 158, 11),
		},
		{
			ID:     "methodical",
			Name:   "Methodical Builder",
			Values: Values{0.75, 0.90, 0.60, 0.95, 0.70, 0.72},
			Color:  gfx.RGB(16, 185, 129),
		},
	}
}
