package pack

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/Mario-Kart-Felix/orogene/internal/domain"
)

// Project is a package root prepared for publishing. It decides which files
// belong in the published archive: the manifest's "files" list when one is
// declared (even an empty one), plus the files npm always ships — the
// manifest itself and the readme. Purely local; the fetch layer never calls
// into this package.
type Project struct {
	dir      string
	manifest manifest
}

type manifest struct {
	Name    string    `json:"name"`
	Version string    `json:"version"`
	Files   *[]string `json:"files"`
}

func Load(dir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &domain.ParseError{
			Code: domain.CodeInvalidManifest,
			Name: dir,
			Data: data,
			Err:  err,
		}
	}
	if m.Name == "" {
		return nil, &domain.ParseError{
			Code: domain.CodeInvalidManifest,
			Name: dir,
			Data: data,
			Err:  fmt.Errorf("package.json has no name"),
		}
	}

	return &Project{dir: dir, manifest: m}, nil
}

func (p *Project) Name() string { return p.manifest.Name }

func (p *Project) Version() string { return p.manifest.Version }

// Paths returns the sorted, slash-separated project-relative paths that
// belong in the published archive.
func (p *Project) Paths() ([]string, error) {
	seen := make(map[string]bool)

	if p.manifest.Files == nil {
		if err := p.walkAll(seen); err != nil {
			return nil, err
		}
	} else {
		for _, pattern := range *p.manifest.Files {
			if err := p.addDeclared(seen, pattern); err != nil {
				return nil, err
			}
		}
	}

	// Always shipped, whatever the files list says.
	seen["package.json"] = true
	if readme := p.findReadme(); readme != "" {
		seen[readme] = true
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// Tarball writes the publish archive as a gzipped tar with every entry
// under the conventional "package/" prefix.
func (p *Project) Tarball(w io.Writer) error {
	paths, err := p.Paths()
	if err != nil {
		return err
	}

	zw := gzip.NewWriter(w)
	tw := tar.NewWriter(zw)

	for _, rel := range paths {
		full := filepath.Join(p.dir, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = "package/" + rel

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := os.Open(full)
		if err != nil {
			return err
		}
		_, err = io.Copy(tw, f)
		f.Close()
		if err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return zw.Close()
}

func (p *Project) walkAll(seen map[string]bool) error {
	return filepath.WalkDir(p.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(p.dir, path)
		if err != nil {
			return err
		}
		seen[filepath.ToSlash(rel)] = true
		return nil
	})
}

func (p *Project) addDeclared(seen map[string]bool, pattern string) error {
	full := filepath.Join(p.dir, filepath.FromSlash(pattern))
	info, err := os.Stat(full)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if !info.IsDir() {
		seen[filepath.ToSlash(pattern)] = true
		return nil
	}
	return filepath.WalkDir(full, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(p.dir, path)
		if err != nil {
			return err
		}
		seen[filepath.ToSlash(rel)] = true
		return nil
	})
}

func (p *Project) findReadme() string {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base := strings.ToLower(e.Name())
		if base == "readme" || strings.HasPrefix(base, "readme.") {
			return e.Name()
		}
	}
	return ""
}
