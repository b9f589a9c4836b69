// Package icptests provides the local backend for ICP-OES lab results.
// Element panels are open symbol-keyed maps persisted as serialized
// columns and merged key-wise on partial update.
package icptests

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID string, f backend.ListFilter) ([]entities.ICPTest, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.Type != "" {
		q = q.Where("water_type = ?", f.Type)
	}
	if f.Lab != "" {
		q = q.Where("lab_name = ?", f.Lab)
	}
	if f.From != nil {
		q = q.Where("test_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("test_date <= ?", *f.To)
	}

	var tests []entities.ICPTest
	err := q.Order("test_date DESC").Find(&tests).Error
	return tests, err
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*entities.ICPTest, error) {
	var test entities.ICPTest
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&test).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *Repository) Create(ctx context.Context, userID string, in backend.ICPTestInput) (*entities.ICPTest, error) {
	if in.LabName == "" {
		return nil, &backend.ValidationError{Field: "lab_name", Reason: "must not be empty"}
	}

	waterType := in.WaterType
	if waterType == "" {
		waterType = entities.WaterTypeSaltwater
	}

	test := &entities.ICPTest{
		ID:                 uuid.NewString(),
		TankID:             in.TankID,
		UserID:             userID,
		TestDate:           in.TestDate,
		LabName:            in.LabName,
		LabTestID:          in.LabTestID,
		WaterType:          waterType,
		SampleDate:         in.SampleDate,
		ReceivedDate:       in.ReceivedDate,
		EvaluatedDate:      in.EvaluatedDate,
		ScoreMajorElements: in.ScoreMajorElements,
		ScoreMinorElements: in.ScoreMinorElements,
		ScorePollutants:    in.ScorePollutants,
		ScoreBaseElements:  in.ScoreBaseElements,
		ScoreOverall:       in.ScoreOverall,
		Elements:           in.Elements,
		ElementStatus:      in.ElementStatus,
		Recommendations:    in.Recommendations,
		PDFFilename:        in.PDFFilename,
		Notes:              in.Notes,
	}
	if err := r.db.WithContext(ctx).Create(test).Error; err != nil {
		return nil, err
	}
	return test, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, p backend.ICPTestPatch) (*entities.ICPTest, error) {
	test, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.TestDate != nil {
		updates["test_date"] = *p.TestDate
	}
	if p.LabName != nil {
		updates["lab_name"] = *p.LabName
	}
	if p.LabTestID != nil {
		updates["lab_test_id"] = *p.LabTestID
	}
	if p.WaterType != nil {
		updates["water_type"] = *p.WaterType
	}
	p.SampleDate.Apply(updates, "sample_date")
	p.ReceivedDate.Apply(updates, "received_date")
	p.EvaluatedDate.Apply(updates, "evaluated_date")
	p.ScoreMajorElements.Apply(updates, "score_major_elements")
	p.ScoreMinorElements.Apply(updates, "score_minor_elements")
	p.ScorePollutants.Apply(updates, "score_pollutants")
	p.ScoreBaseElements.Apply(updates, "score_base_elements")
	p.ScoreOverall.Apply(updates, "score_overall")

	if p.Elements != nil {
		merged := entities.FloatMap{}
		for k, v := range test.Elements {
			merged[k] = v
		}
		for k, v := range p.Elements {
			merged[k] = v
		}
		updates["elements"] = merged
	}
	if p.ElementStatus != nil {
		merged := entities.StringMap{}
		for k, v := range test.ElementStatus {
			merged[k] = v
		}
		for k, v := range p.ElementStatus {
			merged[k] = v
		}
		updates["element_status"] = merged
	}
	if p.Recommendations != nil {
		updates["recommendations"] = p.Recommendations
	}
	if p.PDFFilename != nil {
		updates["pdf_filename"] = *p.PDFFilename
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(test).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, userID, id)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.ICPTest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}
