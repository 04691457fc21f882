package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileReadsAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cat001.xml")
	content := `<category id="1"><item id="10" frn="0"><fixed bytes="2">
		<field name="sac" bits="8" type="numeric"/>
		<field name="sic" bits="8" type="numeric"/>
	</fixed></item></category>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, diags := LoadFile(path)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if cat.ID != 1 {
		t.Errorf("category id = %d, want 1", cat.ID)
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	_, diags := LoadFile("/nonexistent/path/cat001.xml")
	if !diags.HasErrors() {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadBytesPropagatesValidationErrors(t *testing.T) {
	_, diags := LoadBytes([]byte(`<category id="1"><item id="10" frn="0"><fixed bytes="2">
		<field name="sac" bits="8" type="numeric"/>
	</fixed></item></category>`))
	if !diags.HasErrors() {
		t.Fatal("expected a byte-count mismatch diagnostic")
	}
}
