package io

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"scene-graph/math"
	"scene-graph/scene"
)

const generator = "scene-graph"

// Keys used in glTF node extras for state glTF has no field for.
const (
	extraUUID             = "uuid"
	extraKind             = "kind"
	extraUserData         = "userData"
	extraLight            = "light"
	extraMatrixAutoUpdate = "matrixAutoUpdate"
	extraVisible          = "visible"
)

// ErrBadIndex is returned when a glTF document references a node or camera
// that does not exist.
var ErrBadIndex = errors.New("gltf index out of range")

// ExportGLTF converts the trees below roots into a glTF document with one
// scene. Nodes with auto-update disabled are written as a matrix, all others
// as translation/rotation/scale. Camera nodes reference a perspective camera.
func ExportGLTF(roots ...*scene.Node) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	for _, r := range roots {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, exportNode(doc, r))
	}
	return doc
}

func exportNode(doc *gltf.Document, n *scene.Node) int {
	node := &gltf.Node{
		Name:   n.Name,
		Extras: nodeExtras(n),
	}
	if n.MatrixAutoUpdate() {
		node.Translation = Vec3ToArray(n.Position())
		node.Rotation = QuatToArray(n.Quaternion())
		node.Scale = Vec3ToArray(n.Scale())
	} else {
		node.Matrix = [16]float64(n.Matrix())
	}

	if p, ok := n.Projection(); ok {
		node.Camera = gltf.Index(len(doc.Cameras))
		doc.Cameras = append(doc.Cameras, &gltf.Camera{
			Name: n.Name,
			Perspective: &gltf.Perspective{
				Yfov:        p.FOV,
				Znear:       p.NearPlane,
				AspectRatio: ptr(p.AspectRatio),
				Zfar:        ptr(p.FarPlane),
			},
		})
	}

	index := len(doc.Nodes)
	doc.Nodes = append(doc.Nodes, node)
	for _, c := range n.Children() {
		node.Children = append(node.Children, exportNode(doc, c))
	}
	return index
}

func nodeExtras(n *scene.Node) map[string]any {
	extras := map[string]any{
		extraUUID: n.UUID(),
		extraKind: n.Kind().String(),
	}
	if len(n.UserData) > 0 {
		extras[extraUserData] = n.UserDataCopy()
	}
	if l, ok := n.Light(); ok {
		var light map[string]any
		if err := mapstructure.Decode(lightData(l), &light); err == nil {
			extras[extraLight] = light
		}
	}
	if !n.MatrixAutoUpdate() {
		extras[extraMatrixAutoUpdate] = false
	}
	if !n.Visible {
		extras[extraVisible] = false
	}
	return extras
}

// ImportGLTF builds node trees from the node hierarchy of doc. The roots of
// the default scene are returned; without one, every parentless node is a
// root. Meshes, skins and animations are ignored.
func ImportGLTF(alloc *scene.Allocator, doc *gltf.Document) ([]*scene.Node, error) {
	nodes := make([]*scene.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		n, err := importNode(alloc, doc, gn)
		if err != nil {
			return nil, errors.Wrapf(err, "gltf node %d", i)
		}
		nodes[i] = n
	}

	// Wire up parent-child relationships
	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < 0 || c >= len(nodes) {
				return nil, errors.Wrapf(ErrBadIndex, "node %d child %d", i, c)
			}
			if hasParent[c] {
				return nil, errors.Errorf("gltf node %d has more than one parent", c)
			}
			if err := nodes[i].Add(nodes[c]); err != nil {
				return nil, errors.Wrapf(err, "gltf node %d", i)
			}
			hasParent[c] = true
		}
	}

	var roots []*scene.Node
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, r := range doc.Scenes[*doc.Scene].Nodes {
			if r < 0 || r >= len(nodes) {
				return nil, errors.Wrapf(ErrBadIndex, "scene root %d", r)
			}
			roots = append(roots, nodes[r])
		}
		return roots, nil
	}
	for i, n := range nodes {
		if !hasParent[i] {
			roots = append(roots, n)
		}
	}
	return roots, nil
}

func importNode(alloc *scene.Allocator, doc *gltf.Document, gn *gltf.Node) (*scene.Node, error) {
	extras := extrasMap(gn.Extras)

	n, err := newGLTFNode(alloc, doc, gn, extras)
	if err != nil {
		return nil, err
	}
	if id, ok := extras[extraUUID].(string); ok {
		n.SetUUID(id)
	}
	if data, ok := extras[extraUserData].(map[string]any); ok {
		if err := n.MergeUserData(data); err != nil {
			return nil, err
		}
	}
	if visible, ok := extras[extraVisible].(bool); ok {
		n.Visible = visible
	}

	m := math.Mat4(gn.MatrixOrDefault())
	manual := extras[extraMatrixAutoUpdate] == false
	if manual {
		n.SetMatrixAutoUpdate(false)
	}
	if manual || m != math.Mat4Identity() {
		n.SetMatrix(m)
		return n, nil
	}

	n.SetPosition(ArrayToVec3(gn.TranslationOrDefault()))
	n.SetQuaternion(ArrayToQuat(gn.RotationOrDefault()))
	n.SetScale(ArrayToVec3(gn.ScaleOrDefault()))
	return n, nil
}

func newGLTFNode(alloc *scene.Allocator, doc *gltf.Document, gn *gltf.Node, extras map[string]any) (*scene.Node, error) {
	kind := scene.KindObject
	if name, ok := extras[extraKind].(string); ok {
		k, err := scene.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	if gn.Camera != nil {
		kind = scene.KindCamera
	}

	switch kind {
	case scene.KindGroup:
		return scene.NewGroup(alloc, gn.Name), nil
	case scene.KindCamera:
		var p scene.Projection
		if gn.Camera != nil {
			if *gn.Camera < 0 || *gn.Camera >= len(doc.Cameras) {
				return nil, errors.Wrapf(ErrBadIndex, "camera %d", *gn.Camera)
			}
			p = projectionFromGLTF(doc.Cameras[*gn.Camera])
		}
		return scene.NewCamera(alloc, gn.Name, p), nil
	case scene.KindLight:
		params, err := lightFromExtras(extras[extraLight])
		if err != nil {
			return nil, err
		}
		return scene.NewLight(alloc, gn.Name, params), nil
	}
	return scene.NewNode(alloc, gn.Name), nil
}

func projectionFromGLTF(c *gltf.Camera) scene.Projection {
	var p scene.Projection
	if c == nil || c.Perspective == nil {
		return p
	}
	p.FOV = c.Perspective.Yfov
	p.NearPlane = c.Perspective.Znear
	if c.Perspective.AspectRatio != nil {
		p.AspectRatio = *c.Perspective.AspectRatio
	}
	if c.Perspective.Zfar != nil {
		p.FarPlane = *c.Perspective.Zfar
	}
	return p
}

func lightFromExtras(v any) (scene.LightParams, error) {
	if v == nil {
		return scene.LightParams{}, nil
	}
	var data LightData
	if err := mapstructure.Decode(v, &data); err != nil {
		return scene.LightParams{}, errors.Wrap(err, "decode light extras")
	}
	return data.Params()
}

func extrasMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case json.RawMessage:
		var m map[string]any
		if json.Unmarshal(t, &m) == nil {
			return m
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

// SaveGLTF writes roots as a glTF document; a .glb path gets the binary
// container.
func SaveGLTF(path string, roots ...*scene.Node) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	doc := ExportGLTF(roots...)
	if format == FormatGLB {
		return errors.Wrapf(gltf.SaveBinary(doc, path), "save %s", path)
	}
	return errors.Wrapf(gltf.Save(doc, path), "save %s", path)
}

// LoadGLTF opens a .gltf or .glb file and imports its node hierarchy.
func LoadGLTF(alloc *scene.Allocator, path string) ([]*scene.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "gltf open %q", path)
	}
	return ImportGLTF(alloc, doc)
}
