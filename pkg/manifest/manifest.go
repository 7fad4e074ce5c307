// Package manifest reads the package name out of an extracted
// AndroidManifest.xml and derives the variables scripts are dispatched with.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/filesystem"
	"github.com/beevik/etree"
)

// FileName is the manifest's name inside an extracted package
const FileName = "AndroidManifest.xml"

// Variable names bound for every dispatched stage
const (
	VarOriginalCompany = "originalCompany"
	VarOriginalPackage = "originalPackage"
	VarNewCompany      = "newCompany"
	VarNewPackage      = "newPackage"
)

const packageAttr = "package"

// Manifest is a parsed AndroidManifest.xml
type Manifest struct {
	path string
	doc  *etree.Document
}

// Load parses the manifest at the root of packageDir
func Load(fsys filesystem.FS, packageDir string) (*Manifest, error) {
	path := filepath.Join(packageDir, FileName)
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "failed to read %s", FileName).
			WithDetail("path", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "failed to parse %s", path).
			WithDetail("path", path)
	}
	if doc.Root() == nil || doc.Root().Tag != "manifest" {
		return nil, errors.Newf(errors.ErrManifestInvalid, "%s has no <manifest> root element", path).
			WithDetail("path", path)
	}
	return &Manifest{path: path, doc: doc}, nil
}

// PackageName returns the root element's package attribute
func (m *Manifest) PackageName() (string, error) {
	attr := m.doc.Root().SelectAttr(packageAttr)
	if attr == nil || strings.TrimSpace(attr.Value) == "" {
		return "", errors.Newf(errors.ErrManifestInvalid, "%s does not declare a package name", m.path).
			WithDetail("path", m.path)
	}
	return attr.Value, nil
}

// SetPackageName replaces the package attribute in memory
func (m *Manifest) SetPackageName(name string) {
	m.doc.Root().CreateAttr(packageAttr, name)
}

// Save writes the manifest back to where it was loaded from
func (m *Manifest) Save(fsys filesystem.FS) error {
	data, err := m.doc.WriteToBytes()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to serialize manifest")
	}
	if err := fsys.WriteFile(m.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrRewriteIO, "failed to write %s", m.path).
			WithDetail("path", m.path)
	}
	return nil
}

// CompanyOf returns the company segment of a Java package name.
//
//	app                  => app
//	com.app              => app
//	com.company.app      => company
//	com.company.app.more => company
func CompanyOf(pkg string) string {
	first := strings.IndexByte(pkg, '.')
	if first < 0 {
		return pkg
	}
	rest := pkg[first+1:]
	if second := strings.IndexByte(rest, '.'); second >= 0 {
		return rest[:second]
	}
	return rest
}

// ReplaceCompany swaps the company segment of pkg for company
func ReplaceCompany(pkg, company string) string {
	first := strings.IndexByte(pkg, '.')
	if pkg == "" || first < 0 {
		return company
	}
	rest := pkg[first+1:]
	if second := strings.IndexByte(rest, '.'); second >= 0 {
		return pkg[:first+1] + company + rest[second:]
	}
	return pkg[:first+1] + company
}

// Variables returns the substitution table for renaming pkg to newCompany
func Variables(pkg, newCompany string) map[string]string {
	return map[string]string{
		VarOriginalCompany: CompanyOf(pkg),
		VarOriginalPackage: pkg,
		VarNewCompany:      newCompany,
		VarNewPackage:      ReplaceCompany(pkg, newCompany),
	}
}
