package catalogue

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/zeebo/xxh3"

	"github.com/ukaji3/xlviz-go/pkg/xlviz/models"
)

const (
	// ProjectVersion is written into every exported project.
	ProjectVersion = "1.0.0"
	// ProjectExtension is the file extension of project bundles.
	ProjectExtension = ".xlviz"
)

// ErrCorruptProject indicates a project bundle that cannot be imported.
var ErrCorruptProject = errors.New("failed to parse project file")

// Project is the exported bundle of a catalogue.
type Project struct {
	SavedVisualizations []models.SavedVisualization `json:"savedVisualizations"`
	OriginalFileName    string                      `json:"originalFileName"`
	Version             string                      `json:"version"`
	// Checksum is the xxh3 hash of the compacted visualization array.
	// Bundles written without one are accepted as is.
	Checksum string `json:"checksum,omitempty"`
}

type projectJSON struct {
	SavedVisualizations json.RawMessage `json:"savedVisualizations"`
	OriginalFileName    string          `json:"originalFileName"`
	Version             string          `json:"version"`
	Checksum            string          `json:"checksum,omitempty"`
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9]`)

// ProjectFileName derives the bundle file name from the workbook file
// name: the part before the first dot, lowercased, with every other
// character replaced by an underscore.
func ProjectFileName(original string) string {
	base, _, _ := strings.Cut(original, ".")
	if base == "" {
		base = "project"
	}
	return unsafeNameChars.ReplaceAllString(strings.ToLower(base), "_") + ProjectExtension
}

// Export bundles the catalogue for download.
func (s *Store) Export(originalFileName string) (data []byte, fileName string, err error) {
	items := s.List()
	if len(items) == 0 {
		return nil, "", ErrEmptyCatalogue
	}
	data, err = EncodeProject(items, originalFileName)
	if err != nil {
		return nil, "", err
	}
	return data, ProjectFileName(originalFileName), nil
}

// EncodeProject serializes a project bundle with an indented layout.
func EncodeProject(items []models.SavedVisualization, originalFileName string) ([]byte, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, errors.Wrap(err, "encode visualizations")
	}
	p := projectJSON{
		SavedVisualizations: raw,
		OriginalFileName:    originalFileName,
		Version:             ProjectVersion,
		Checksum:            checksum(raw),
	}
	return json.MarshalIndent(p, "", "  ")
}

// DecodeProject parses a bundle. A missing file name falls back to the
// bundle's own name without its extension.
func DecodeProject(data []byte, bundleName string) (*Project, error) {
	var pj projectJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode project"), ErrCorruptProject)
	}

	p := &Project{
		OriginalFileName: pj.OriginalFileName,
		Version:          pj.Version,
		Checksum:         pj.Checksum,
	}
	if p.OriginalFileName == "" {
		p.OriginalFileName = strings.Replace(bundleName, ProjectExtension, "", 1)
	}

	trimmed := bytes.TrimSpace(pj.SavedVisualizations)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return p, nil
	}
	if pj.Checksum != "" {
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "decode project"), ErrCorruptProject)
		}
		if got := checksum(compact.Bytes()); got != pj.Checksum {
			return nil, errors.Mark(
				errors.Newf("checksum mismatch: bundle says %s, content hashes to %s", pj.Checksum, got),
				ErrCorruptProject)
		}
	}
	if err := json.Unmarshal(trimmed, &p.SavedVisualizations); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode visualizations"), ErrCorruptProject)
	}
	return p, nil
}

// Import replaces the whole catalogue with the content of a bundle.
func (s *Store) Import(ctx context.Context, data []byte, bundleName string) (*Project, error) {
	p, err := DecodeProject(data, bundleName)
	if err != nil {
		return nil, err
	}
	if err := s.Replace(ctx, p.SavedVisualizations); err != nil {
		return nil, err
	}
	return p, nil
}

func checksum(b []byte) string {
	return strconv.FormatUint(xxh3.Hash(b), 16)
}
