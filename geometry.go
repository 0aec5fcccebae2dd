package lazymesh

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Point3 is a 3D point or vector.
type Point3 [3]float32

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Scale returns p * s.
func (p Point3) Scale(s float32) Point3 {
	return Point3{p[0] * s, p[1] * s, p[2] * s}
}

// Dot returns the dot product of p and q.
func (p Point3) Dot(q Point3) float32 {
	return p[0]*q[0] + p[1]*q[1] + p[2]*q[2]
}

// Cross returns the cross product of p and q.
func (p Point3) Cross(q Point3) Point3 {
	return Point3{
		p[1]*q[2] - p[2]*q[1],
		p[2]*q[0] - p[0]*q[2],
		p[0]*q[1] - p[1]*q[0],
	}
}

// Norm returns the euclidean length of p.
func (p Point3) Norm() float32 {
	return math32.Sqrt(p.Dot(p))
}

// Normalize returns p scaled to unit length; the zero vector is returned
// unchanged.
func (p Point3) Normalize() Point3 {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return p.Scale(1 / n)
}

// ApproxEqual reports whether every coordinate of p and q differs by at most eps.
func (p Point3) ApproxEqual(q Point3, eps float32) bool {
	return math32.Abs(p[0]-q[0]) <= eps && math32.Abs(p[1]-q[1]) <= eps && math32.Abs(p[2]-q[2]) <= eps
}

// TexCoord is a texture coordinate with the index of the texture it refers to.
type TexCoord struct {
	U, V  float32
	Index uint16
}

// Curvature holds principal curvature values and directions.
type Curvature struct {
	Dir1, Dir2 Point3
	K1, K2     float32
}

// Transform is a row-major 4x4 matrix.
type Transform [4][4]float32

// IdentityTransform returns the identity matrix.
func IdentityTransform() Transform {
	return Transform{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// Apply transforms the point p (w = 1).
func (t Transform) Apply(p Point3) Point3 {
	var out Point3
	for r := 0; r < 3; r++ {
		out[r] = t[r][0]*p[0] + t[r][1]*p[1] + t[r][2]*p[2] + t[r][3]
	}
	w := t[3][0]*p[0] + t[3][1]*p[1] + t[3][2]*p[2] + t[3][3]
	if w != 0 && w != 1 {
		out = out.Scale(1 / w)
	}
	return out
}

// PolygonNormal returns the unit normal of the polygon with the given
// corners, computed with Newell's method so that it is robust for
// non-planar and non-convex polygons.
func PolygonNormal(corners []Point3) Point3 {
	var n Point3
	for i, p := range corners {
		q := corners[(i+1)%len(corners)]
		n[0] += (p[1] - q[1]) * (p[2] + q[2])
		n[1] += (p[2] - q[2]) * (p[0] + q[0])
		n[2] += (p[0] - q[0]) * (p[1] + q[1])
	}
	return n.Normalize()
}

// FaceNormal computes the normal of face f of m from its vertex
// coordinates.
func FaceNormal(m *Mesh, f int) (Point3, error) {
	faces, verts, err := faceGeometryStores(m)
	if err != nil {
		return Point3{}, err
	}
	return faceNormal(faces, verts, f)
}

// UpdateFaceNormals recomputes the normal of every live face of m. Faces
// must carry vertex references and a normal (enabled when optional), and
// vertices must carry a coordinate.
func UpdateFaceNormals(m *Mesh) error {
	faces, verts, err := faceGeometryStores(m)
	if err != nil {
		return err
	}
	if !faces.IsEnabled(NormalKey) {
		return fmt.Errorf("lazymesh: update face normals: %s.%s: %w", FaceKind, NormalKey, ErrComponentDisabled)
	}
	for i := 0; i < faces.Size(); i++ {
		if faces.IsDeleted(i) {
			continue
		}
		n, err := faceNormal(faces, verts, i)
		if err != nil {
			return err
		}
		p, err := StoreGet(faces, NormalKey, i)
		if err != nil {
			return err
		}
		*p = n
	}
	return nil
}

func faceGeometryStores(m *Mesh) (Store, Store, error) {
	faces := m.Store(FaceKind)
	verts := m.Store(VertexKind)
	if faces == nil || verts == nil {
		return nil, nil, fmt.Errorf("lazymesh: face geometry needs vertex and face containers: %w", ErrComponentMissing)
	}
	return faces, verts, nil
}

func faceNormal(faces, verts Store, f int) (Point3, error) {
	refs, err := StoreGet(faces, VertexRefsKey, f)
	if err != nil {
		return Point3{}, err
	}
	corners := make([]Point3, 0, refs.Len())
	for _, r := range refs.Values() {
		if r.IsNull() {
			return Point3{}, accessErr("face normal", FaceKind, VertexRefsKey.Name(), f, ErrDanglingReference)
		}
		p, err := StoreGet(verts, CoordKey, r.Index())
		if err != nil {
			return Point3{}, err
		}
		corners = append(corners, *p)
	}
	if len(corners) < 3 {
		return Point3{}, nil
	}
	return PolygonNormal(corners), nil
}
