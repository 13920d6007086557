// ABOUTME: Test definition catalog for the five standard fitness tests.
// ABOUTME: Maps test IDs to canonical units, localization keys, and drills.
package models

import (
	"errors"
	"fmt"
)

// ErrUnknownTest is returned when a test ID is not in the catalog.
var ErrUnknownTest = errors.New("unknown test")

// TestName is the stable, language-neutral name of a fitness test.
type TestName string

const (
	TestHeightWeight TestName = "height_weight"
	TestVerticalJump TestName = "vertical_jump"
	TestShuttleRun   TestName = "shuttle_run"
	TestSitUps       TestName = "sit_ups"
	TestEnduranceRun TestName = "endurance_run"
)

// Test IDs used as ledger keys.
const (
	HeightWeightTestID = "t1"
	VerticalJumpTestID = "t2"
	ShuttleRunTestID   = "t3"
	SitUpsTestID       = "t4"
	EnduranceRunTestID = "t5"
)

// InstructionKeys holds the localization keys for a test's step-by-step guide.
type InstructionKeys struct {
	Perform string
	Record  string
	Assess  string
}

// TestDefinition is a read-only catalog entry describing one measurable test.
type TestDefinition struct {
	ID   string
	Name TestName
	// Unit is the canonical unit stored in TestResult.LatestScore.
	Unit string
	// Composite tests pack two values into one score (see package composite).
	Composite      bool
	DescriptionKey string
	Instructions   InstructionKeys
	// DrillKey names the actionable drill suggested when this test is the focus area.
	DrillKey string
	VideoURL string
}

// NameKey returns the localization key for the test's display name.
func (d TestDefinition) NameKey() string {
	return "test_name_" + string(d.Name)
}

func newDefinition(id string, name TestName, unit, video string) TestDefinition {
	n := string(name)
	return TestDefinition{
		ID:             id,
		Name:           name,
		Unit:           unit,
		DescriptionKey: "test_desc_" + n,
		Instructions: InstructionKeys{
			Perform: "instr_" + n + "_perform",
			Record:  "instr_" + n + "_record",
			Assess:  "instr_" + n + "_assess",
		},
		DrillKey: "drill_" + n,
		VideoURL: video,
	}
}

// Catalog is the ordered list of fitness tests. Order here is the order
// feedback and dashboards present results in.
var Catalog = func() []TestDefinition {
	hw := newDefinition(HeightWeightTestID, TestHeightWeight, "cm/kg",
		"https://videos.pexels.com/video-files/3838043/3838043-hd_1280_720_25fps.mp4")
	hw.Composite = true
	return []TestDefinition{
		hw,
		newDefinition(VerticalJumpTestID, TestVerticalJump, "cm",
			"https://videos.pexels.com/video-files/5840507/5840507-hd_1920_1080_30fps.mp4"),
		newDefinition(ShuttleRunTestID, TestShuttleRun, "s",
			"https://videos.pexels.com/video-files/8097127/8097127-sd_640_360_24fps.mp4"),
		newDefinition(SitUpsTestID, TestSitUps, "reps",
			"https://videos.pexels.com/video-files/5225477/5225477-hd_1920_1080_25fps.mp4"),
		newDefinition(EnduranceRunTestID, TestEnduranceRun, "min",
			"https://videos.pexels.com/video-files/857041/857041-hd_1920_1080_25fps.mp4"),
	}
}()

// LookupTest finds a test by ID or by name (e.g. "t2" or "vertical_jump").
func LookupTest(idOrName string) (TestDefinition, error) {
	for _, d := range Catalog {
		if d.ID == idOrName || string(d.Name) == idOrName {
			return d, nil
		}
	}
	return TestDefinition{}, fmt.Errorf("%w: %s", ErrUnknownTest, idOrName)
}

// IsValidTestID checks if a string is a catalog test ID.
func IsValidTestID(s string) bool {
	for _, d := range Catalog {
		if d.ID == s {
			return true
		}
	}
	return false
}

// catalogIndex returns the position of a test ID in the catalog, or -1.
func catalogIndex(testID string) int {
	for i, d := range Catalog {
		if d.ID == testID {
			return i
		}
	}
	return -1
}
