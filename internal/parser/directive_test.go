package parser

import (
	"errors"
	"testing"
)

func TestImplementationPath(t *testing.T) {
	got, err := ImplementationPath("d.puml", "@startuml\n'implementation_path=[ ../src/main ]\n@enduml\n")
	if err != nil {
		t.Fatal(err)
	}
	if got != "../src/main" {
		t.Fatalf("path = %q", got)
	}
}

func TestImplementationPathMissing(t *testing.T) {
	for _, text := range []string{"@startuml\n@enduml\n", "'implementation_path=[   ]\n", "'implementation_path=[]\n"} {
		_, err := ImplementationPath("design/d.puml", text)
		var missing *MissingImplementationPathError
		if !errors.As(err, &missing) {
			t.Fatalf("%q: expected *MissingImplementationPathError, got %v", text, err)
		}
		if missing.DesignPath != "design/d.puml" {
			t.Errorf("DesignPath = %q", missing.DesignPath)
		}
	}
}
