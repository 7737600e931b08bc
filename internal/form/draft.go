package form

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/portoo/portoo-backend/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadDraft builds a store from a YAML draft. Relative file paths are resolved
// against baseDir. Unset fields take the same defaults as a fresh store.
func LoadDraft(r io.Reader, baseDir string) (*Store, error) {
	d := defaultData()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse draft: %w", err)
	}

	if len(d.Experiences) > domain.MaxExperiences {
		return nil, ErrTooManyExperiences
	}
	if len(d.Projects) > domain.MaxProjects {
		return nil, ErrTooManyProjects
	}

	s := NewStore()
	d.Template = domain.NormalizeTemplate(d.Template)
	d.ProfilePhotoFile = resolve(baseDir, d.ProfilePhotoFile)
	d.ResumeFile = resolve(baseDir, d.ResumeFile)
	for i := range d.Experiences {
		d.Experiences[i].ID = s.newID()
	}
	for i := range d.Projects {
		p := &d.Projects[i]
		p.ID = s.newID()
		p.CoverFile = resolve(baseDir, p.CoverFile)
		p.GalleryFiles = gallery(p.GalleryFiles)
		for j := range p.GalleryFiles {
			p.GalleryFiles[j] = resolve(baseDir, p.GalleryFiles[j])
		}
		p.GalleryURLs = gallery(p.GalleryURLs)
	}
	normalizeFeatured(d.Projects)
	if d.Skills == nil {
		d.Skills = []domain.Skill{}
	}
	if d.Experiences == nil {
		d.Experiences = []Experience{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}

	s.data = d
	return s, nil
}

func LoadDraftFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDraft(f, filepath.Dir(path))
}

// WriteDraft serializes d as a YAML draft
func WriteDraft(w io.Writer, d Data) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
