package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gyeh/chargecompare/internal/model"
)

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	os.WriteFile(path, []byte("inpatient:\n  charges: reports.get_charges_v2\n  id_column: drg code\n"), 0644)

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Inpatient.Charges != "reports.get_charges_v2" {
		t.Errorf("charges: got %q", c.Inpatient.Charges)
	}
	if c.Inpatient.IDColumn != "drg code" {
		t.Errorf("id_column: got %q", c.Inpatient.IDColumn)
	}
	if c.Inpatient.States != "inpatient.get_states" {
		t.Errorf("states should keep default, got %q", c.Inpatient.States)
	}
	if c.Outpatient != Default().Outpatient {
		t.Errorf("outpatient should be untouched: %+v", c.Outpatient)
	}
	if c.Inpatient.Setting != model.Inpatient {
		t.Errorf("setting lost in merge: %q", c.Inpatient.Setting)
	}
}

func TestLoadFile_EmptyFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	os.WriteFile(path, []byte("{}\n"), 0644)

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c != Default() {
		t.Errorf("expected defaults, got %+v", c)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	os.WriteFile(path, []byte("inpatient: [not, a, map]\n"), 0644)

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile("/nonexistent/catalog.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFor(t *testing.T) {
	c := Default()
	for _, s := range model.AllSettings {
		p, err := c.For(s)
		if err != nil {
			t.Fatalf("For(%s): %v", s, err)
		}
		if p.Setting != s {
			t.Errorf("For(%s) returned %s", s, p.Setting)
		}
	}
	if _, err := c.For("ambulance"); err == nil {
		t.Error("expected error for unknown setting")
	}
}

func TestValidate_BlankName(t *testing.T) {
	c := Default()
	c.Outpatient.RegionalCharges = ""
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for blank procedure name")
	}
}
