// Package obj reads and writes Wavefront OBJ files into lazymesh meshes.
//
// The reader only relies on the element-type-independent Store interface:
// it describes the file as a lazymesh.Info, enables the optional
// components the mesh can hold, adds elements and fills their payloads.
package obj

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/edwinsyarief/lazymesh"
)

// ReadOptions configures Read.
type ReadOptions struct {
	// Logger receives debug logs about ignored directives; slog.Default()
	// when nil.
	Logger *slog.Logger
	// KeepOptional leaves the optional components of the mesh as they are
	// instead of enabling those the file provides.
	KeepOptional bool
}

type corner struct {
	v, vt, vn int
}

type objData struct {
	name      string
	positions []lazymesh.Point3
	colors    []color.RGBA
	normals   []lazymesh.Point3
	texcoords []lazymesh.TexCoord
	faces     [][]corner
	lines     [][]int
}

// Read parses an OBJ stream and appends its content to m. It returns the
// description of the file content. Polygons are fan-triangulated when the
// faces of m are triangles; polylines become edges when m has an edge
// container.
func Read(r io.Reader, m *lazymesh.Mesh, opts ReadOptions) (lazymesh.Info, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	d, err := parse(r, log)
	if err != nil {
		return lazymesh.Info{}, err
	}
	info := d.info()
	if !opts.KeepOptional {
		lazymesh.EnableOptionalComponentsFromInfo(m, info)
	}
	if err := d.store(m, log); err != nil {
		return info, err
	}
	if d.name != "" {
		lazymesh.SetAttribute(m.Attributes(), lazymesh.Name(d.name))
	}
	return info, nil
}

func parse(r io.Reader, log *slog.Logger) (*objData, error) {
	d := &objData{}
	ignored := map[string]bool{}
	scanner := bufio.NewScanner(r)
	for ln := 1; scanner.Scan(); ln++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		ident, val := fields[0], fields[1:]
		var err error
		switch ident {
		case "v":
			err = d.parseVertex(val)
		case "vn":
			var p lazymesh.Point3
			p, err = parsePoint(val)
			d.normals = append(d.normals, p)
		case "vt":
			err = d.parseTexCoord(val)
		case "f":
			err = d.parseFace(val)
		case "l":
			err = d.parseLine(val)
		case "o":
			if d.name == "" && len(val) > 0 {
				d.name = strings.Join(val, " ")
			}
		default:
			if !ignored[ident] {
				ignored[ident] = true
				log.Debug("obj: directive not parsed", "directive", ident, "line", ln)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("obj: line %d: %w", ln, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	return d, nil
}

func parseFloats(val []string, n int) ([]float32, error) {
	if len(val) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(val))
	}
	out := make([]float32, len(val))
	for i, s := range val {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parsePoint(val []string) (lazymesh.Point3, error) {
	f, err := parseFloats(val, 3)
	if err != nil {
		return lazymesh.Point3{}, err
	}
	return lazymesh.Point3{f[0], f[1], f[2]}, nil
}

func channel(f float32) uint8 {
	return uint8(min(max(f, 0), 1)*255 + 0.5)
}

func (d *objData) parseVertex(val []string) error {
	f, err := parseFloats(val, 3)
	if err != nil {
		return err
	}
	d.positions = append(d.positions, lazymesh.Point3{f[0], f[1], f[2]})
	if len(f) >= 6 {
		for len(d.colors) < len(d.positions)-1 {
			d.colors = append(d.colors, color.RGBA{255, 255, 255, 255})
		}
		d.colors = append(d.colors, color.RGBA{channel(f[3]), channel(f[4]), channel(f[5]), 255})
	}
	return nil
}

func (d *objData) parseTexCoord(val []string) error {
	f, err := parseFloats(val, 2)
	if err != nil {
		return err
	}
	d.texcoords = append(d.texcoords, lazymesh.TexCoord{U: f[0], V: f[1]})
	return nil
}

// resolve turns a 1-based, possibly negative (relative) OBJ index into a
// 0-based one. An empty field resolves to -1.
func resolve(s string, n int) (int, error) {
	if s == "" {
		return -1, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return -1, fmt.Errorf("index %d out of range [1,%d]", i, n)
}

func (d *objData) parseFace(val []string) error {
	if len(val) < 3 {
		return fmt.Errorf("face with %d vertices", len(val))
	}
	face := make([]corner, len(val))
	for i, s := range val {
		idx := strings.Split(s, "/")
		c := corner{v: -1, vt: -1, vn: -1}
		var err error
		if c.v, err = resolve(idx[0], len(d.positions)); err != nil {
			return err
		}
		if c.v < 0 {
			return fmt.Errorf("face corner %q without vertex", s)
		}
		if len(idx) > 1 {
			if c.vt, err = resolve(idx[1], len(d.texcoords)); err != nil {
				return err
			}
		}
		if len(idx) > 2 {
			if c.vn, err = resolve(idx[2], len(d.normals)); err != nil {
				return err
			}
		}
		face[i] = c
	}
	d.faces = append(d.faces, face)
	return nil
}

func (d *objData) parseLine(val []string) error {
	if len(val) < 2 {
		return fmt.Errorf("line with %d vertices", len(val))
	}
	line := make([]int, len(val))
	for i, s := range val {
		v, err := resolve(strings.Split(s, "/")[0], len(d.positions))
		if err != nil {
			return err
		}
		line[i] = v
	}
	d.lines = append(d.lines, line)
	return nil
}

// perVertex reports whether attribute indices always match the vertex
// index of their corner, so the attribute can be stored per vertex.
func (d *objData) perVertex(n int, pick func(corner) int) bool {
	if n == 0 || n != len(d.positions) {
		return false
	}
	for _, f := range d.faces {
		for _, c := range f {
			if a := pick(c); a >= 0 && a != c.v {
				return false
			}
		}
	}
	return true
}

func (d *objData) vertexNormals() bool {
	return d.perVertex(len(d.normals), func(c corner) int { return c.vn })
}

func (d *objData) vertexTexCoords() bool {
	return d.perVertex(len(d.texcoords), func(c corner) int { return c.vt })
}

func (d *objData) wedgeTexCoords() bool {
	if len(d.texcoords) == 0 || d.vertexTexCoords() {
		return false
	}
	for _, f := range d.faces {
		for _, c := range f {
			if c.vt >= 0 {
				return true
			}
		}
	}
	return false
}

func (d *objData) info() lazymesh.Info {
	var in lazymesh.Info
	in.Name = d.name
	if len(d.positions) > 0 {
		in.AddKind(lazymesh.VertexKind, len(d.positions))
		in.AddComponent(lazymesh.VertexKind, lazymesh.CoordKey)
		if len(d.colors) > 0 {
			in.AddComponent(lazymesh.VertexKind, lazymesh.ColorKey)
		}
		if d.vertexNormals() {
			in.AddComponent(lazymesh.VertexKind, lazymesh.NormalKey)
		}
		if d.vertexTexCoords() {
			in.AddComponent(lazymesh.VertexKind, lazymesh.TexCoordKey)
		}
	}
	if len(d.faces) > 0 {
		in.AddKind(lazymesh.FaceKind, len(d.faces))
		in.AddComponent(lazymesh.FaceKind, lazymesh.VertexRefsKey)
		if d.wedgeTexCoords() {
			in.AddComponent(lazymesh.FaceKind, lazymesh.WedgeTexCoordsKey)
		}
	}
	if len(d.lines) > 0 {
		n := 0
		for _, l := range d.lines {
			n += len(l) - 1
		}
		in.AddKind(lazymesh.EdgeKind, n)
		in.AddComponent(lazymesh.EdgeKind, lazymesh.VertexRefsKey)
	}
	return in
}

func (d *objData) store(m *lazymesh.Mesh, log *slog.Logger) error {
	vs := m.Store(lazymesh.VertexKind)
	if vs == nil {
		return fmt.Errorf("obj: mesh has no vertex container")
	}
	base := vs.AddElements(len(d.positions))
	normals, texcoords := d.vertexNormals(), d.vertexTexCoords()
	for i, p := range d.positions {
		v := base + i
		if err := lazymesh.StoreSet(vs, lazymesh.CoordKey, v, p); err != nil {
			return err
		}
		if i < len(d.colors) && vs.IsEnabled(lazymesh.ColorKey) {
			if err := lazymesh.StoreSet(vs, lazymesh.ColorKey, v, d.colors[i]); err != nil {
				return err
			}
		}
		if normals && vs.IsEnabled(lazymesh.NormalKey) {
			if err := lazymesh.StoreSet(vs, lazymesh.NormalKey, v, d.normals[i]); err != nil {
				return err
			}
		}
		if texcoords && vs.IsEnabled(lazymesh.TexCoordKey) {
			if err := lazymesh.StoreSet(vs, lazymesh.TexCoordKey, v, d.texcoords[i]); err != nil {
				return err
			}
		}
	}
	if len(d.faces) > 0 {
		if err := d.storeFaces(m, base, log); err != nil {
			return err
		}
	}
	if len(d.lines) > 0 {
		if err := d.storeLines(m, base, log); err != nil {
			return err
		}
	}
	return nil
}

func (d *objData) storeFaces(m *lazymesh.Mesh, base int, log *slog.Logger) error {
	fs := m.Store(lazymesh.FaceKind)
	if fs == nil {
		log.Debug("obj: mesh has no face container, faces dropped", "faces", len(d.faces))
		return nil
	}
	b, err := lazymesh.NewFaceBuilder(fs)
	if err != nil {
		return err
	}
	wedges := d.wedgeTexCoords() && fs.IsEnabled(lazymesh.WedgeTexCoordsKey)
	add := func(cs []corner) error {
		vs := make([]int, len(cs))
		for i, c := range cs {
			vs[i] = base + c.v
		}
		f, err := b.AddFace(vs...)
		if err != nil {
			return err
		}
		if !wedges {
			return nil
		}
		wt, err := lazymesh.StoreGet(fs, lazymesh.WedgeTexCoordsKey, f)
		if err != nil {
			return err
		}
		for i, c := range cs {
			if c.vt >= 0 {
				wt.Set(i, d.texcoords[c.vt])
			}
		}
		return nil
	}
	for _, face := range d.faces {
		if b.Arity() != 3 || len(face) == 3 {
			if err := add(face); err != nil {
				return err
			}
			continue
		}
		for i := 1; i+1 < len(face); i++ {
			if err := add([]corner{face[0], face[i], face[i+1]}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *objData) storeLines(m *lazymesh.Mesh, base int, log *slog.Logger) error {
	es := m.Store(lazymesh.EdgeKind)
	if es == nil {
		log.Debug("obj: mesh has no edge container, lines dropped", "lines", len(d.lines))
		return nil
	}
	for _, l := range d.lines {
		for i := 0; i+1 < len(l); i++ {
			e := es.AddElements(1)
			refs, err := lazymesh.StoreGet(es, lazymesh.VertexRefsKey, e)
			if err != nil {
				return err
			}
			if err := refs.SetIndices(base+l[i], base+l[i+1]); err != nil {
				return err
			}
		}
	}
	return nil
}
