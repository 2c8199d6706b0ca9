package model

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/stairscene/internal/engine/gfx"
	"github.com/Faultbox/stairscene/pkg/math"
)

// ErrNoGeometry is returned when a document has no triangle primitives.
var ErrNoGeometry = errors.New("model has no triangle geometry")

// decode reads a glTF document into a single mesh with every node
// transform baked into the vertices.
func decode(doc *gltf.Document) (*Mesh, error) {
	mesh := &Mesh{Bounds: emptyBounds()}

	roots := sceneRoots(doc)
	if len(roots) == 0 {
		// Node-less documents: draw every mesh untransformed.
		for i := range doc.Meshes {
			if err := appendMesh(doc, i, math.Identity(), mesh); err != nil {
				return nil, err
			}
		}
	} else {
		for _, n := range roots {
			if err := walkNode(doc, n, math.Identity(), mesh, 0); err != nil {
				return nil, err
			}
		}
	}

	if len(mesh.Indices) == 0 {
		return nil, ErrNoGeometry
	}
	return mesh, nil
}

func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	idx := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		idx = *doc.Scene
	}
	return doc.Scenes[idx].Nodes
}

// maxNodeDepth guards against cyclic node graphs in malformed files.
const maxNodeDepth = 64

func walkNode(doc *gltf.Document, idx int, parent math.Mat4, mesh *Mesh, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	node := doc.Nodes[idx]
	world := parent.Mul(nodeMatrix(node))

	if node.Mesh != nil {
		if err := appendMesh(doc, *node.Mesh, world, mesh); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}
	for _, child := range node.Children {
		if err := walkNode(doc, child, world, mesh, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func appendMesh(doc *gltf.Document, idx int, transform math.Mat4, mesh *Mesh) error {
	if idx < 0 || idx >= len(doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", idx)
	}
	m := doc.Meshes[idx]

	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: read positions: %w", m.Name, pi, err)
		}

		var normals [][3]float32
		if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: read normals: %w", m.Name, pi, err)
			}
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: read uvs: %w", m.Name, pi, err)
			}
		}

		base := uint32(len(mesh.Vertices))
		for i, p := range positions {
			pos := transform.TransformPoint(math.V3(p[0], p[1], p[2]))
			v := gfx.Vertex{Position: pos.Array()}
			if i < len(normals) {
				n := normals[i]
				v.Normal = transform.TransformDirection(math.V3(n[0], n[1], n[2])).Normalize().Array()
			}
			if i < len(uvs) {
				// glTF puts V=0 at the top of the image.
				v.TexCoord = [2]float32{uvs[i][0], 1 - uvs[i][1]}
			}
			mesh.Vertices = append(mesh.Vertices, v)
			mesh.Bounds.extend(v.Position)
		}

		if prim.Indices != nil {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: read indices: %w", m.Name, pi, err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Indices = append(mesh.Indices, base+indices[i], base+indices[i+1], base+indices[i+2])
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				n := uint32(i)
				mesh.Indices = append(mesh.Indices, base+n, base+n+1, base+n+2)
			}
		}

		if len(normals) == 0 {
			fillFaceNormals(mesh, int(base))
		}
	}
	return nil
}

// fillFaceNormals assigns face normals to vertices from first onwards
// that were loaded without one.
func fillFaceNormals(mesh *Mesh, first int) {
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		if int(a) < first {
			continue
		}
		n := faceNormal(mesh.Vertices[a], mesh.Vertices[b], mesh.Vertices[c])
		for _, idx := range [3]uint32{a, b, c} {
			mesh.Vertices[idx].Normal = n
		}
	}
}

func faceNormal(a, b, c gfx.Vertex) [3]float32 {
	pa := math.V3(a.Position[0], a.Position[1], a.Position[2])
	pb := math.V3(b.Position[0], b.Position[1], b.Position[2])
	pc := math.V3(c.Position[0], c.Position[1], c.Position[2])
	return math.FaceNormal(pa, pb, pc).Array()
}
