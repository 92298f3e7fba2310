// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repr

import (
	"fmt"
	"image/color"
	"reflect"
	"strings"

	"cogentcore.org/mol/loci"
	"cogentcore.org/mol/logx"
	"cogentcore.org/mol/marker"
	"cogentcore.org/mol/renderobject"
	"cogentcore.org/mol/structure"
	"cogentcore.org/mol/task"
	"cogentcore.org/mol/theme"
	"cogentcore.org/mol/visual"
	"github.com/mitchellh/mapstructure"
)

// Kinds are the kinds of representations a [Registry] can construct.
type Kinds int32

const (
	KindCartoon Kinds = iota
	KindSpacefill
	KindBallAndStick
	KindPoint
	KindLine
	KindCarbohydrate
	KindMolecularSurface
)

var kindNames = []string{"cartoon", "spacefill", "ball-and-stick", "point", "line", "carbohydrate", "molecular-surface"}

func (k Kinds) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kinds(%d)", int32(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name, e.g. "ball-and-stick".
func ParseKind(name string) (Kinds, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kinds(i), nil
		}
	}
	return 0, fmt.Errorf("repr.ParseKind: unknown representation kind %q", name)
}

// KindValues returns all kinds.
func KindValues() []Kinds {
	ks := make([]Kinds, len(kindNames))
	for i := range ks {
		ks[i] = Kinds(i)
	}
	return ks
}

// Handle is a representation of any props type, with props given as
// string keyed values as they come from a config file.
type Handle interface {
	Kind() Kinds
	Label() string
	RenderObjects() []*renderobject.RenderObject

	// Props returns a copy of the committed props.
	Props() any

	// Create decodes values onto the default props and creates the
	// representation with them.
	Create(tc *task.Context, s *structure.Structure, values map[string]any) error

	// Update decodes values onto the committed props and updates the
	// representation with them.
	Update(tc *task.Context, values map[string]any) (bool, error)

	GetLoci(id renderobject.PickingID) loci.Loci
	Mark(l loci.Loci, action marker.Actions) bool
	Destroy()
}

type handle[P any] struct {
	*Composite[P]
	kind Kinds
}

func (h *handle[P]) Kind() Kinds { return h.kind }
func (h *handle[P]) Props() any  { return h.Composite.Props() }

func (h *handle[P]) Create(tc *task.Context, s *structure.Structure, values map[string]any) error {
	props := h.Defaults()
	if err := DecodeProps(values, &props); err != nil {
		return fmt.Errorf("%s: %w", h.label, err)
	}
	return h.Composite.Create(tc, s, props)
}

func (h *handle[P]) Update(tc *task.Context, values map[string]any) (bool, error) {
	if !h.created {
		return false, nil
	}
	props := h.Composite.Props()
	if err := DecodeProps(values, &props); err != nil {
		return false, fmt.Errorf("%s: %w", h.label, err)
	}
	return h.Composite.Update(tc, props)
}

// NewHandle wraps a composite representation of the given kind.
func NewHandle[P any](kind Kinds, c *Composite[P]) Handle {
	return &handle[P]{Composite: c, kind: kind}
}

// Registry maps kinds to constructors.
type Registry map[Kinds]func() Handle

// New returns a new representation of the kind.
func (r Registry) New(kind Kinds) (Handle, error) {
	f, ok := r[kind]
	if !ok {
		return nil, fmt.Errorf("repr.Registry: no representation registered for %v", kind)
	}
	return f(), nil
}

// DefaultRegistry holds all built in representations.
var DefaultRegistry = Registry{
	KindCartoon:          func() Handle { return NewHandle(KindCartoon, NewCartoon()) },
	KindSpacefill:        func() Handle { return NewHandle(KindSpacefill, NewSpacefill()) },
	KindBallAndStick:     func() Handle { return NewHandle(KindBallAndStick, NewBallAndStick()) },
	KindPoint:            func() Handle { return NewHandle(KindPoint, NewPoint()) },
	KindLine:             func() Handle { return NewHandle(KindLine, NewLine()) },
	KindCarbohydrate:     func() Handle { return NewHandle(KindCarbohydrate, NewCarbohydrate()) },
	KindMolecularSurface: func() Handle { return NewHandle(KindMolecularSurface, NewMolecularSurface()) },
}

// New returns a new representation of the kind from [DefaultRegistry].
func New(kind Kinds) (Handle, error) {
	return DefaultRegistry.New(kind)
}

var (
	colorType     = reflect.TypeOf(color.RGBA{})
	unitKindsType = reflect.TypeOf(structure.UnitKinds(0))
)

// decodeHook converts config strings to colors and unit kinds.
func decodeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to {
	case colorType:
		return theme.Hex(data.(string))
	case unitKindsType:
		return structure.ParseUnitKinds(data.(string))
	}
	return data, nil
}

// normalizeName folds case and drops separators, so that "link-radius",
// "link_radius" and "LinkRadius" all name the same field.
func normalizeName(s string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
}

// DecodeProps decodes values onto props, which must be a pointer to a
// props struct. Fields missing from values keep their current value.
// Keys that match no field are ignored.
func DecodeProps(values map[string]any, props any) error {
	var md mapstructure.Metadata
	if err := decode(values, props, &md, false); err != nil {
		return err
	}
	if len(md.Unused) > 0 {
		logx.Logger().Debug("ignored props", "type", fmt.Sprintf("%T", props), "keys", md.Unused)
	}
	return nil
}

// DecodePropsStrict is like [DecodeProps], but keys that match no field
// are an error.
func DecodePropsStrict(values map[string]any, props any) error {
	return decode(values, props, nil, true)
}

func decode(values map[string]any, props any, md *mapstructure.Metadata, strict bool) error {
	if len(values) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           props,
		Metadata:         md,
		WeaklyTypedInput: true,
		ErrorUnused:      strict,
		ZeroFields:       true,
		MatchName: func(key, field string) bool {
			return normalizeName(key) == normalizeName(field)
		},
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

var _ Representation[visual.ElementSphereProps] = (*Composite[visual.ElementSphereProps])(nil)
