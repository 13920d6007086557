// ABOUTME: Tests for the fitness test catalog.
// ABOUTME: Validates IDs, units, lookup by ID or name, and localization keys.
package models

import (
	"errors"
	"testing"
)

func TestCatalogOrderAndUnits(t *testing.T) {
	tests := []struct {
		id       string
		name     TestName
		wantUnit string
	}{
		{"t1", TestHeightWeight, "cm/kg"},
		{"t2", TestVerticalJump, "cm"},
		{"t3", TestShuttleRun, "s"},
		{"t4", TestSitUps, "reps"},
		{"t5", TestEnduranceRun, "min"},
	}

	if len(Catalog) != len(tests) {
		t.Fatalf("len(Catalog) = %d, want %d", len(Catalog), len(tests))
	}
	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			d := Catalog[i]
			if d.ID != tt.id || d.Name != tt.name {
				t.Errorf("Catalog[%d] = %s/%s, want %s/%s", i, d.ID, d.Name, tt.id, tt.name)
			}
			if d.Unit != tt.wantUnit {
				t.Errorf("Unit = %s, want %s", d.Unit, tt.wantUnit)
			}
		})
	}
}

func TestOnlyHeightWeightIsComposite(t *testing.T) {
	for _, d := range Catalog {
		if d.Composite != (d.ID == HeightWeightTestID) {
			t.Errorf("%s Composite = %v", d.ID, d.Composite)
		}
	}
}

func TestLookupTest(t *testing.T) {
	d, err := LookupTest("t2")
	if err != nil {
		t.Fatalf("LookupTest(t2) failed: %v", err)
	}
	if d.Name != TestVerticalJump {
		t.Errorf("Name = %s, want vertical_jump", d.Name)
	}

	d, err = LookupTest("sit_ups")
	if err != nil {
		t.Fatalf("LookupTest(sit_ups) failed: %v", err)
	}
	if d.ID != "t4" {
		t.Errorf("ID = %s, want t4", d.ID)
	}

	_, err = LookupTest("t9")
	if !errors.Is(err, ErrUnknownTest) {
		t.Errorf("LookupTest(t9) err = %v, want ErrUnknownTest", err)
	}
}

func TestDefinitionKeys(t *testing.T) {
	d, _ := LookupTest("t3")
	if got := d.NameKey(); got != "test_name_shuttle_run" {
		t.Errorf("NameKey() = %s", got)
	}
	if d.DrillKey != "drill_shuttle_run" {
		t.Errorf("DrillKey = %s", d.DrillKey)
	}
	if d.Instructions.Assess != "instr_shuttle_run_assess" {
		t.Errorf("Instructions.Assess = %s", d.Instructions.Assess)
	}
}

func TestIsValidTestID(t *testing.T) {
	if !IsValidTestID("t5") {
		t.Error("expected t5 to be valid")
	}
	if IsValidTestID("vertical_jump") {
		t.Error("expected names to be rejected as IDs")
	}
}
