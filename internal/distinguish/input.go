package distinguish

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/trimanifold/snappea"
	"github.com/katalvlaran/trimanifold/triangulation"
)

// Member is one triangulation inside a container. Exactly one of Sig and
// SnapPea is set; SnapPea paths are relative to the document.
type Member struct {
	Name    string `yaml:"name"`
	Sig     string `yaml:"sig,omitempty"`
	SnapPea string `yaml:"snappea,omitempty"`

	tri *triangulation.Triangulation
}

// NewMember wraps an already decoded triangulation.
func NewMember(name string, t *triangulation.Triangulation) Member {
	return Member{Name: name, tri: t}
}

// Triangulation returns the decoded triangulation.
func (m *Member) Triangulation() *triangulation.Triangulation { return m.tri }

// Container lists triangulations of one claimed manifold.
type Container struct {
	Name    string   `yaml:"name"`
	Members []Member `yaml:"triangulations"`
}

type document struct {
	Containers []Container `yaml:"containers"`
}

// Load reads a container document and decodes every member. Relative
// SnapPea paths are resolved against baseDir.
func Load(r io.Reader, baseDir string) ([]Container, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, distinguishErrorf("Load", ErrInvalidInput, "empty document")
		}
		return nil, distinguishErrorf("Load", ErrInvalidInput, "%v", err)
	}
	for ci := range doc.Containers {
		c := &doc.Containers[ci]
		if c.Name == "" {
			return nil, distinguishErrorf("Load", ErrInvalidInput, "container %d has no name", ci)
		}
		for mi := range c.Members {
			if err := decodeMember(&c.Members[mi], c.Name, mi, baseDir); err != nil {
				return nil, err
			}
		}
	}
	return doc.Containers, nil
}

// LoadFile reads the container document at path.
func LoadFile(path string) ([]Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, filepath.Dir(path))
}

func decodeMember(m *Member, container string, i int, baseDir string) error {
	if m.Name == "" {
		m.Name = m.Sig
		if m.Name == "" {
			m.Name = filepath.Base(m.SnapPea)
		}
	}
	var err error
	switch {
	case m.Sig != "" && m.SnapPea != "":
		return distinguishErrorf("Load", ErrInvalidInput, "%s member %d: both sig and snappea given", container, i)
	case m.Sig != "":
		m.tri, err = triangulation.FromIsoSig(3, m.Sig)
	case m.SnapPea != "":
		path := m.SnapPea
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		m.tri, err = snappea.ReadFile(path)
	default:
		return distinguishErrorf("Load", ErrInvalidInput, "%s member %d: neither sig nor snappea given", container, i)
	}
	if err != nil {
		return distinguishErrorf("Load", ErrInvalidInput, "%s member %s: %v", container, m.Name, err)
	}
	return nil
}
