package parser

import (
	"regexp"
	"strings"
)

var implPathDirective = regexp.MustCompile(`'implementation_path=\[(.+)\]`)

// ImplementationPath extracts the path named by the
// 'implementation_path=[<path>] comment of a design diagram. The path is
// returned as written; resolving it against the design file is the caller's
// job.
func ImplementationPath(designPath, text string) (string, error) {
	m := implPathDirective.FindStringSubmatch(text)
	if m == nil {
		return "", &MissingImplementationPathError{DesignPath: designPath}
	}
	p := strings.TrimSpace(m[1])
	if p == "" {
		return "", &MissingImplementationPathError{DesignPath: designPath}
	}
	return p, nil
}
