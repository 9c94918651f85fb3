package io

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"scene-graph/math"
	"scene-graph/scene"
)

// FileVersion is written into every scene file.
const FileVersion = "1.0"

// SceneFile is the top-level structure of the .json / .yaml scene formats.
type SceneFile struct {
	Version string     `json:"version" yaml:"version"`
	Name    string     `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes   []NodeData `json:"nodes" yaml:"nodes"`
}

// NodeData is a plain snapshot of one node and its subtree.
type NodeData struct {
	UUID          string     `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Name          string     `json:"name,omitempty" yaml:"name,omitempty"`
	Kind          string     `json:"kind" yaml:"kind"`
	Position      [3]float64 `json:"position" yaml:"position,flow"`
	Quaternion    [4]float64 `json:"quaternion" yaml:"quaternion,flow"` // x, y, z, w
	Scale         [3]float64 `json:"scale" yaml:"scale,flow"`
	RotationOrder string     `json:"rotationOrder,omitempty" yaml:"rotationOrder,omitempty"`

	// Matrix is only written for nodes with matrix auto-update disabled; its
	// presence disables auto-update on load.
	Matrix *[16]float64 `json:"matrix,omitempty" yaml:"matrix,omitempty,flow"`

	Up            [3]float64     `json:"up" yaml:"up,flow"`
	Visible       bool           `json:"visible" yaml:"visible"`
	CastShadow    bool           `json:"castShadow,omitempty" yaml:"castShadow,omitempty"`
	ReceiveShadow bool           `json:"receiveShadow,omitempty" yaml:"receiveShadow,omitempty"`
	FrustumCulled bool           `json:"frustumCulled" yaml:"frustumCulled"`
	RenderOrder   int            `json:"renderOrder,omitempty" yaml:"renderOrder,omitempty"`
	Layers        uint32         `json:"layers" yaml:"layers"`
	UserData      map[string]any `json:"userData,omitempty" yaml:"userData,omitempty"`

	Camera *CameraData `json:"camera,omitempty" yaml:"camera,omitempty"`
	Light  *LightData  `json:"light,omitempty" yaml:"light,omitempty"`

	Children []NodeData `json:"children,omitempty" yaml:"children,omitempty"`
}

// CameraData stores perspective parameters; FOV is in radians.
type CameraData struct {
	FOV    float64 `json:"fov" yaml:"fov"`
	Aspect float64 `json:"aspect" yaml:"aspect"`
	Near   float64 `json:"near" yaml:"near"`
	Far    float64 `json:"far" yaml:"far"`
}

// LightData stores light state
type LightData struct {
	Type      string  `json:"type" yaml:"type" mapstructure:"type"` // "directional", "point", "spot"
	Intensity float64 `json:"intensity" yaml:"intensity" mapstructure:"intensity"`
	Range     float64 `json:"range,omitempty" yaml:"range,omitempty" mapstructure:"range"`
	SpotAngle float64 `json:"spotAngle,omitempty" yaml:"spotAngle,omitempty" mapstructure:"spotAngle"`
}

func lightData(l scene.LightParams) *LightData {
	return &LightData{Type: l.Type.String(), Intensity: l.Intensity, Range: l.Range, SpotAngle: l.SpotAngle}
}

// Params converts the stored light state back into node parameters.
func (l *LightData) Params() (scene.LightParams, error) {
	lt, err := scene.ParseLightType(l.Type)
	if err != nil {
		return scene.LightParams{}, err
	}
	return scene.LightParams{Type: lt, Intensity: l.Intensity, Range: l.Range, SpotAngle: l.SpotAngle}, nil
}

// NewSceneFile snapshots every root into a scene file.
func NewSceneFile(name string, roots ...*scene.Node) *SceneFile {
	f := &SceneFile{Version: FileVersion, Name: name}
	for _, r := range roots {
		f.Nodes = append(f.Nodes, Snapshot(r))
	}
	return f
}

// Build turns every top-level entry of the file into a detached node tree.
func (f *SceneFile) Build(alloc *scene.Allocator) ([]*scene.Node, error) {
	roots := make([]*scene.Node, 0, len(f.Nodes))
	for i, d := range f.Nodes {
		n, err := Build(alloc, d)
		if err != nil {
			return nil, errors.Wrapf(err, "node %d", i)
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// Snapshot captures n and its subtree.
func Snapshot(n *scene.Node) NodeData {
	d := NodeData{
		UUID:          n.UUID(),
		Name:          n.Name,
		Kind:          n.Kind().String(),
		Position:      Vec3ToArray(n.Position()),
		Quaternion:    QuatToArray(n.Quaternion()),
		Scale:         Vec3ToArray(n.Scale()),
		Up:            Vec3ToArray(n.Up),
		Visible:       n.Visible,
		CastShadow:    n.CastShadow,
		ReceiveShadow: n.ReceiveShadow,
		FrustumCulled: n.FrustumCulled,
		RenderOrder:   n.RenderOrder,
		Layers:        uint32(n.Layers),
	}
	if order := n.Rotation().Order; order != math.DefaultOrder {
		d.RotationOrder = order.String()
	}
	if !n.MatrixAutoUpdate() {
		m := [16]float64(n.Matrix())
		d.Matrix = &m
	}
	if len(n.UserData) > 0 {
		d.UserData = n.UserDataCopy()
	}
	if p, ok := n.Projection(); ok {
		d.Camera = &CameraData{FOV: p.FOV, Aspect: p.AspectRatio, Near: p.NearPlane, Far: p.FarPlane}
	}
	if l, ok := n.Light(); ok {
		d.Light = lightData(l)
	}
	for _, c := range n.Children() {
		d.Children = append(d.Children, Snapshot(c))
	}
	return d
}

// Build creates the node tree described by d. The persisted uuids are
// restored; ids come from alloc.
func Build(alloc *scene.Allocator, d NodeData) (*scene.Node, error) {
	n, err := newNodeOfKind(alloc, d)
	if err != nil {
		return nil, err
	}
	n.SetUUID(d.UUID)

	n.SetPosition(ArrayToVec3(d.Position))
	if d.Quaternion != [4]float64{} {
		n.SetQuaternion(ArrayToQuat(d.Quaternion))
	}
	if d.Scale != [3]float64{} {
		n.SetScale(ArrayToVec3(d.Scale))
	}
	if d.RotationOrder != "" {
		order, err := math.ParseRotationOrder(d.RotationOrder)
		if err != nil {
			return nil, errors.Wrapf(err, "node %q", d.Name)
		}
		n.SetRotationOrder(order)
	}
	if d.Matrix != nil {
		n.SetMatrixAutoUpdate(false)
		n.SetMatrix(math.Mat4(*d.Matrix))
	}

	if d.Up != [3]float64{} {
		n.Up = ArrayToVec3(d.Up)
	}
	n.Visible = d.Visible
	n.CastShadow = d.CastShadow
	n.ReceiveShadow = d.ReceiveShadow
	n.FrustumCulled = d.FrustumCulled
	n.RenderOrder = d.RenderOrder
	n.Layers = scene.Layers(d.Layers)
	if err := n.MergeUserData(d.UserData); err != nil {
		return nil, errors.Wrapf(err, "node %q", d.Name)
	}

	for _, cd := range d.Children {
		child, err := Build(alloc, cd)
		if err != nil {
			return nil, err
		}
		if err := n.Add(child); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func newNodeOfKind(alloc *scene.Allocator, d NodeData) (*scene.Node, error) {
	kind, err := scene.ParseKind(d.Kind)
	if err != nil {
		return nil, errors.Wrapf(err, "node %q", d.Name)
	}

	switch kind {
	case scene.KindGroup:
		return scene.NewGroup(alloc, d.Name), nil
	case scene.KindCamera:
		var p scene.Projection
		if c := d.Camera; c != nil {
			p = scene.Projection{FOV: c.FOV, AspectRatio: c.Aspect, NearPlane: c.Near, FarPlane: c.Far}
		}
		return scene.NewCamera(alloc, d.Name, p), nil
	case scene.KindLight:
		var params scene.LightParams
		if d.Light != nil {
			var err error
			if params, err = d.Light.Params(); err != nil {
				return nil, errors.Wrapf(err, "node %q", d.Name)
			}
		}
		return scene.NewLight(alloc, d.Name, params), nil
	}
	return scene.NewNode(alloc, d.Name), nil
}

// Marshal encodes f as JSON or YAML.
func Marshal(f *SceneFile, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(f, "", "  ")
		return data, errors.Wrap(err, "marshal scene")
	case FormatYAML:
		data, err := yaml.Marshal(f)
		return data, errors.Wrap(err, "marshal scene")
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "marshal %s", format)
}

// Unmarshal decodes a JSON or YAML scene file.
func Unmarshal(data []byte, format Format) (*SceneFile, error) {
	f := &SceneFile{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, f)
	case FormatYAML:
		err = yaml.Unmarshal(data, f)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "unmarshal %s", format)
	}
	if err != nil {
		return nil, errors.Wrap(err, "parse scene file")
	}
	return f, nil
}

// SaveFile writes roots to path, picking the format from the extension.
func SaveFile(path string, roots ...*scene.Node) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format.IsGLTF() {
		return SaveGLTF(path, roots...)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	data, err := Marshal(NewSceneFile(name, roots...), format)
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write %s", path)
}

// LoadFile reads the node trees stored at path.
func LoadFile(alloc *scene.Allocator, path string) ([]*scene.Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if format.IsGLTF() {
		return LoadGLTF(alloc, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene file")
	}
	f, err := Unmarshal(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return f.Build(alloc)
}

// --- Helper conversions ---

// Vec3ToArray converts a Vec3 to a [3]float64
func Vec3ToArray(v math.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// ArrayToVec3 converts a [3]float64 to Vec3
func ArrayToVec3(a [3]float64) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// QuatToArray converts a Quaternion to [4]float64 in x, y, z, w order
func QuatToArray(q math.Quaternion) [4]float64 {
	return [4]float64{q.X, q.Y, q.Z, q.W}
}

// ArrayToQuat converts [4]float64 to Quaternion
func ArrayToQuat(a [4]float64) math.Quaternion {
	return math.Quaternion{X: a[0], Y: a[1], Z: a[2], W: a[3]}
}
