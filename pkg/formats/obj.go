// Package formats provides parsers for 3D model file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyOBJData is returned when the input contains no geometry.
	ErrEmptyOBJData = errors.New("obj: no vertex data")
)

// OBJ holds the parsed contents of a Wavefront OBJ file.
type OBJ struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     []OBJFace
}

// OBJFace is one polygonal face; corners index into the OBJ buffers.
type OBJFace struct {
	Corners []OBJCorner
}

// OBJCorner references one face corner. Indices are 0-based; -1 means the
// component was absent in the file.
type OBJCorner struct {
	Pos  int
	Tex  int
	Norm int
}

// ParseOBJ parses Wavefront OBJ data. Supported directives: v, vt, vn, f
// (with v, v/vt, v//vn and v/vt/vn corner forms, and negative relative
// indices). Unknown directives are skipped, matching common exporters.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: vertex: %w", lineNo, err)
			}
			obj.Positions = append(obj.Positions, p)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("obj line %d: texcoord needs 2 components", lineNo)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("obj line %d: bad texcoord", lineNo)
			}
			obj.TexCoords = append(obj.TexCoords, [2]float32{u, v})
		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: normal: %w", lineNo, err)
			}
			obj.Normals = append(obj.Normals, n)
		case "f":
			face, err := obj.parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			obj.Faces = append(obj.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}

	if len(obj.Positions) == 0 {
		return nil, ErrEmptyOBJData
	}
	return obj, nil
}

func (o *OBJ) parseFace(fields []string) (OBJFace, error) {
	if len(fields) < 3 {
		return OBJFace{}, fmt.Errorf("face needs at least 3 corners, got %d", len(fields))
	}

	face := OBJFace{Corners: make([]OBJCorner, 0, len(fields))}
	for _, f := range fields {
		corner := OBJCorner{Pos: -1, Tex: -1, Norm: -1}
		parts := strings.Split(f, "/")

		idx, err := o.resolveIndex(parts[0], len(o.Positions))
		if err != nil {
			return OBJFace{}, fmt.Errorf("face corner %q: %w", f, err)
		}
		corner.Pos = idx

		if len(parts) > 1 && parts[1] != "" {
			idx, err := o.resolveIndex(parts[1], len(o.TexCoords))
			if err != nil {
				return OBJFace{}, fmt.Errorf("face corner %q: %w", f, err)
			}
			corner.Tex = idx
		}
		if len(parts) > 2 && parts[2] != "" {
			idx, err := o.resolveIndex(parts[2], len(o.Normals))
			if err != nil {
				return OBJFace{}, fmt.Errorf("face corner %q: %w", f, err)
			}
			corner.Norm = idx
		}
		face.Corners = append(face.Corners, corner)
	}
	return face, nil
}

// resolveIndex converts a 1-based OBJ index (or negative relative index) to
// a 0-based one, validating the range against the current buffer size.
func (o *OBJ) resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	if n < 0 {
		n = count + n
	} else {
		n--
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("index %s out of range (have %d)", s, count)
	}
	return n, nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	if len(fields) < 3 {
		return [3]float32{}, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		v, err := parseFloat(fields[i])
		if err != nil {
			return [3]float32{}, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("bad float %q", s)
	}
	return float32(v), nil
}
