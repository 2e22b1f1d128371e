package puml

import "strings"

// Package is a dot-delimited namespace. The default package has an empty name.
type Package struct {
	FullName string
}

// PackageOf splits a fully-qualified name into its package and simple name.
// A name without a dot lives in the default package.
func PackageOf(fullName string) (pkg Package, simple string) {
	idx := strings.LastIndexByte(fullName, '.')
	if idx < 0 {
		return Package{}, fullName
	}
	return Package{FullName: fullName[:idx]}, fullName[idx+1:]
}

// Segments returns the dot-separated parts of the package name.
func (p Package) Segments() []string {
	if p.FullName == "" {
		return nil
	}
	return strings.Split(p.FullName, ".")
}

// IsDefault reports whether p is the unnamed default package.
func (p Package) IsDefault() bool {
	return p.FullName == ""
}

// Qualify joins the package name and a simple name.
func (p Package) Qualify(name string) string {
	if p.FullName == "" {
		return name
	}
	return p.FullName + "." + name
}

func (p Package) String() string {
	if p.FullName == "" {
		return "<default>"
	}
	return p.FullName
}
