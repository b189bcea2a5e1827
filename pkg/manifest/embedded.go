package manifest

import (
	"embed"
	"errors"
	"io/fs"
	"path"
	"strconv"

	apperrors "github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/logging"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
)

//go:embed all:assets
var assetsFS embed.FS

//go:embed manifest.toml
var mappingConfig []byte

// assetsRoot is the directory inside assetsFS that mappings are relative to.
const assetsRoot = "assets"

// Mapping is one [[mappings]] table of manifest.toml.
type Mapping struct {
	From string `koanf:"from"`
	To   string `koanf:"to"`
	Mode string `koanf:"mode"`
}

type mappingFile struct {
	Mappings []Mapping `koanf:"mappings"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// embeddedSource resolves mappings against an fs.FS.
type embeddedSource struct {
	fsys     fs.FS
	root     string
	mappings []byte
}

// Embedded returns the Source compiled into the binary.
func Embedded() Source {
	return &embeddedSource{fsys: assetsFS, root: assetsRoot, mappings: mappingConfig}
}

// NewFSSource returns a Source over fsys, using the given manifest.toml
// content. Mapping paths are relative to root inside fsys.
func NewFSSource(fsys fs.FS, root string, manifestTOML []byte) Source {
	return &embeddedSource{fsys: fsys, root: root, mappings: manifestTOML}
}

// Assets exposes the embedded asset tree, rooted at assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assetsFS, assetsRoot)
	if err != nil {
		// assets/ is always embedded.
		panic(err)
	}
	return sub
}

// LoadMappings parses manifest.toml content.
func LoadMappings(data []byte) ([]Mapping, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidManifest, "failed to parse manifest mappings")
	}

	var doc mappingFile
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidManifest, "failed to decode manifest mappings")
	}

	for i, m := range doc.Mappings {
		if m.From == "" || m.To == "" {
			return nil, apperrors.Newf(apperrors.ErrInvalidManifest, "mapping %d needs both from and to", i+1)
		}
	}

	return doc.Mappings, nil
}

func (s *embeddedSource) Entries() ([]Entry, error) {
	log := logging.GetLogger("manifest")

	mappings, err := LoadMappings(s.mappings)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, m := range mappings {
		mode, err := parseMode(m.Mode)
		if err != nil {
			return nil, err
		}

		mapped, err := s.expand(m, mode)
		if err != nil {
			return nil, err
		}
		log.Trace().Str("from", m.From).Str("to", m.To).Int("files", len(mapped)).Msg("Expanded mapping")
		entries = append(entries, mapped...)
	}

	return Normalize(WithParents(entries))
}

// expand turns one mapping into file entries. A file mapping yields one
// entry; a directory mapping yields one entry per file below it.
func (s *embeddedSource) expand(m Mapping, mode fs.FileMode) ([]Entry, error) {
	from := path.Join(s.root, path.Clean(m.From))
	to := path.Clean(m.To)

	info, err := fs.Stat(s.fsys, from)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrInvalidManifest, "mapping source %s not found", m.From)
	}

	if !info.IsDir() {
		e := FromFS(s.fsys, from, to)
		e.Mode = mode
		return []Entry{e}, nil
	}

	var entries []Entry
	err = fs.WalkDir(s.fsys, from, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := p[len(from)+1:]
		e := FromFS(s.fsys, p, path.Join(to, rel))
		e.Mode = mode
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrInvalidManifest, "walking %s", m.From)
	}

	return entries, nil
}

func parseMode(s string) (fs.FileMode, error) {
	if s == "" {
		return DefaultFileMode, nil
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil || v > 0o777 {
		return 0, apperrors.Newf(apperrors.ErrInvalidManifest, "invalid file mode %q", s)
	}
	return fs.FileMode(v), nil
}
