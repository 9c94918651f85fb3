package scene

import (
	"strings"

	"github.com/pkg/errors"
)

type LightType int

const (
	LightTypeDirectional LightType = iota
	LightTypePoint
	LightTypeSpot
)

func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

func ParseLightType(s string) (LightType, error) {
	switch strings.ToLower(s) {
	case "", "directional":
		return LightTypeDirectional, nil
	case "point":
		return LightTypePoint, nil
	case "spot":
		return LightTypeSpot, nil
	}
	return LightTypeDirectional, errors.Errorf("unknown light type %q", s)
}

// LightParams is the light payload carried by a light node. Position and
// direction come from the node's world transform.
type LightParams struct {
	Type      LightType
	Intensity float64
	Range     float64
	SpotAngle float64
}

// NewLight creates a light node. Lights face down their local -Z axis.
func NewLight(alloc *Allocator, name string, params LightParams) *Node {
	n := newNode(alloc, name, KindLight)
	n.light = &params
	return n
}

// Light returns the light payload; ok is false for non-light nodes.
func (n *Node) Light() (params LightParams, ok bool) {
	if n.light == nil {
		return LightParams{}, false
	}
	return *n.light, true
}

// SetLight replaces the light payload. It is a no-op on non-light nodes.
func (n *Node) SetLight(params LightParams) {
	if n.kind != KindLight {
		return
	}
	n.light = &params
}
