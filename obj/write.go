package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/edwinsyarief/lazymesh"
)

// Write writes the live vertices, faces and edges of m as OBJ. Vertex
// colors, normals and texture coordinates are written when enabled.
// Deleted elements are skipped and indices renumbered accordingly.
func Write(w io.Writer, m *lazymesh.Mesh) error {
	vs := m.Store(lazymesh.VertexKind)
	if vs == nil {
		return fmt.Errorf("obj: mesh has no vertex container")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# lazymesh")
	if name, ok := lazymesh.Attribute[lazymesh.Name](m.Attributes()); ok {
		fmt.Fprintf(bw, "o %s\n", *name)
	}
	colors := vs.IsEnabled(lazymesh.ColorKey)
	normals := vs.IsEnabled(lazymesh.NormalKey)
	texcoords := vs.IsEnabled(lazymesh.TexCoordKey)
	for i := 0; i < vs.Size(); i++ {
		if vs.IsDeleted(i) {
			continue
		}
		p, err := lazymesh.StoreGet(vs, lazymesh.CoordKey, i)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "v %s %s %s", ftoa(p[0]), ftoa(p[1]), ftoa(p[2]))
		if colors {
			c, err := lazymesh.StoreGet(vs, lazymesh.ColorKey, i)
			if err != nil {
				return err
			}
			fmt.Fprintf(bw, " %s %s %s", ftoa(float32(c.R)/255), ftoa(float32(c.G)/255), ftoa(float32(c.B)/255))
		}
		fmt.Fprintln(bw)
	}
	if normals {
		if err := writeVertexAttr(bw, vs, "vn", lazymesh.NormalKey, func(n *lazymesh.Point3) string {
			return ftoa(n[0]) + " " + ftoa(n[1]) + " " + ftoa(n[2])
		}); err != nil {
			return err
		}
	}
	if texcoords {
		if err := writeVertexAttr(bw, vs, "vt", lazymesh.TexCoordKey, func(t *lazymesh.TexCoord) string {
			return ftoa(t.U) + " " + ftoa(t.V)
		}); err != nil {
			return err
		}
	}
	remap := vs.CompactIndices()
	corner := func(v int) string {
		s := strconv.Itoa(v + 1)
		switch {
		case normals && texcoords:
			return s + "/" + s + "/" + s
		case normals:
			return s + "//" + s
		case texcoords:
			return s + "/" + s
		}
		return s
	}
	if fs := m.Store(lazymesh.FaceKind); fs != nil {
		if err := writeRefs(bw, fs, "f", remap, corner); err != nil {
			return err
		}
	}
	if es := m.Store(lazymesh.EdgeKind); es != nil {
		if err := writeRefs(bw, es, "l", remap, func(v int) string { return strconv.Itoa(v + 1) }); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func writeVertexAttr[P any](bw *bufio.Writer, vs lazymesh.Store, ident string, key lazymesh.Key[P], format func(*P) string) error {
	for i := 0; i < vs.Size(); i++ {
		if vs.IsDeleted(i) {
			continue
		}
		p, err := lazymesh.StoreGet(vs, key, i)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%s %s\n", ident, format(p))
	}
	return nil
}

func writeRefs(bw *bufio.Writer, s lazymesh.Store, ident string, remap lazymesh.IndexMap, corner func(int) string) error {
	if !s.Has(lazymesh.VertexRefsKey) {
		return nil
	}
	for i := 0; i < s.Size(); i++ {
		if s.IsDeleted(i) {
			continue
		}
		refs, err := lazymesh.StoreGet(s, lazymesh.VertexRefsKey, i)
		if err != nil {
			return err
		}
		bw.WriteString(ident)
		for j, r := range refs.Values() {
			v := remap.Lookup(r.Index())
			if v == lazymesh.Removed {
				return fmt.Errorf("obj: %s %d corner %d: %s: %w", s.Kind(), i, j, r, lazymesh.ErrDanglingReference)
			}
			bw.WriteString(" " + corner(v))
		}
		bw.WriteString("\n")
	}
	return nil
}
