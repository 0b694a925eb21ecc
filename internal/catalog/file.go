package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vercheck-labs/vercheck/internal/software"
	"github.com/vercheck-labs/vercheck/internal/userdata"
	"go.yaml.in/yaml/v3"
)

const tmpSuffix = ".tmp"

// document is the YAML layout of the catalog file.
type document struct {
	Softwares []record `yaml:"softwares"`
}

type record struct {
	Name           string           `yaml:"name"`
	Executable     executableRecord `yaml:"executable"`
	Args           string           `yaml:"args,omitempty"`
	ShellOverride  string           `yaml:"shell_override,omitempty"`
	InstalledRegex string           `yaml:"installed_regex"`
	URL            string           `yaml:"url"`
	LatestRegex    string           `yaml:"latest_regex"`
}

// executableRecord carries either command or directory+regex.
type executableRecord struct {
	Command   *string `yaml:"command,omitempty"`
	Directory *string `yaml:"directory,omitempty"`
	Regex     *string `yaml:"regex,omitempty"`
}

// FileStore is a Store backed by a YAML file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the catalog at path. The file is not
// touched until List or Replace is called.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the catalog file location.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) List() ([]software.Software, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalog %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	issues, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", f.path, err)
	}
	if len(issues) > 0 {
		return nil, &InvalidFileError{Path: f.path, Issues: issues}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", f.path, err)
	}

	list := make([]software.Software, 0, len(doc.Softwares))
	for i, r := range doc.Softwares {
		sw, err := software.New(fromRecord(r))
		if err != nil {
			return nil, fmt.Errorf("catalog %s entry %d: %w", f.path, i, err)
		}
		list = append(list, sw)
	}
	return list, nil
}

func (f *FileStore) Replace(list []software.Software) error {
	doc := document{Softwares: make([]record, 0, len(list))}
	for _, sw := range list {
		doc.Softwares = append(doc.Softwares, toRecord(sw))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	tmp := f.path + tmpSuffix
	if err := os.WriteFile(tmp, data, userdata.FilePermNormal); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalizing catalog write: %w", err)
	}
	return nil
}

func fromRecord(r record) software.Software {
	var exe software.Executable
	if r.Executable.Command != nil {
		exe = software.Static{Command: *r.Executable.Command}
	} else {
		exe = software.Dynamic{
			Directory: deref(r.Executable.Directory),
			Regex:     deref(r.Executable.Regex),
		}
	}
	return software.Software{
		Name:           r.Name,
		Executable:     exe,
		Args:           r.Args,
		ShellOverride:  r.ShellOverride,
		InstalledRegex: r.InstalledRegex,
		URL:            r.URL,
		LatestRegex:    r.LatestRegex,
	}
}

func toRecord(sw software.Software) record {
	r := record{
		Name:           sw.Name,
		Args:           sw.Args,
		ShellOverride:  sw.ShellOverride,
		InstalledRegex: sw.InstalledRegex,
		URL:            sw.URL,
		LatestRegex:    sw.LatestRegex,
	}
	switch e := sw.Executable.(type) {
	case software.Dynamic:
		r.Executable = executableRecord{Directory: &e.Directory, Regex: &e.Regex}
	case software.Static:
		r.Executable = executableRecord{Command: &e.Command}
	default:
		empty := ""
		r.Executable = executableRecord{Command: &empty}
	}
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
