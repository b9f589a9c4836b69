package entities

import "time"

// ICPTest holds one ICP-OES lab analysis of tank water. Labs report
// dozens of element concentrations; rather than a column per element,
// the panel is an open symbol-keyed map so new lab formats need no
// schema change.
type ICPTest struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TankID string `gorm:"index;size:36" json:"tank_id"`
	UserID string `gorm:"index;size:36" json:"user_id"`

	TestDate  time.Time `gorm:"index" json:"test_date"`
	LabName   string    `gorm:"size:100;index" json:"lab_name"` // ATI, Triton, Fauna Marin
	LabTestID string    `gorm:"size:100" json:"lab_test_id,omitempty"`
	WaterType WaterType `gorm:"size:20;default:'saltwater'" json:"water_type"`

	SampleDate    *time.Time `json:"sample_date,omitempty"`
	ReceivedDate  *time.Time `json:"received_date,omitempty"`
	EvaluatedDate *time.Time `json:"evaluated_date,omitempty"`

	// Quality scores, 0-100.
	ScoreMajorElements *int `json:"score_major_elements,omitempty"`
	ScoreMinorElements *int `json:"score_minor_elements,omitempty"`
	ScorePollutants    *int `json:"score_pollutants,omitempty"`
	ScoreBaseElements  *int `json:"score_base_elements,omitempty"`
	ScoreOverall       *int `json:"score_overall,omitempty"`

	// Elements maps element symbol to measured concentration; the unit
	// convention follows the lab report (mg/l for majors, µg/l for
	// traces). ElementStatus carries the lab's per-element verdict
	// (NORMAL, ABOVE_NORMAL, ...). Both merge key-wise on update.
	Elements      FloatMap  `gorm:"type:text" json:"elements,omitempty"`
	ElementStatus StringMap `gorm:"type:text" json:"element_status,omitempty"`

	Recommendations Recommendations `gorm:"type:text" json:"recommendations,omitempty"`

	PDFFilename string `gorm:"size:255" json:"pdf_filename,omitempty"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ICPTest) TableName() string {
	return "icp_tests"
}
