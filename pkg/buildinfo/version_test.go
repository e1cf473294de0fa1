package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if !strings.HasPrefix(String(), "familytower v9.9.9\n") {
		t.Errorf("String() = %q", String())
	}
	if !strings.HasSuffix(Template(), "\n") {
		t.Error("Template() should end with a newline")
	}
	if UserAgent() != "familytower/v9.9.9" {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
