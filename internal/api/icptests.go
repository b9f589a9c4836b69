package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type ICPTestAdapter struct {
	client *Client
}

func NewICPTestAdapter(client *Client) *ICPTestAdapter {
	return &ICPTestAdapter{client: client}
}

func (a *ICPTestAdapter) List(ctx context.Context, _ string, f backend.ListFilter) ([]entities.ICPTest, error) {
	var tests []entities.ICPTest
	err := a.client.do(ctx, http.MethodGet, "/icp-tests", listQuery(f), nil, &tests)
	return tests, err
}

func (a *ICPTestAdapter) Get(ctx context.Context, _ string, id string) (*entities.ICPTest, error) {
	var test entities.ICPTest
	if err := a.client.do(ctx, http.MethodGet, "/icp-tests/"+id, nil, nil, &test); err != nil {
		return nil, err
	}
	return &test, nil
}

func (a *ICPTestAdapter) Create(ctx context.Context, _ string, in backend.ICPTestInput) (*entities.ICPTest, error) {
	var test entities.ICPTest
	if err := a.client.do(ctx, http.MethodPost, "/icp-tests", nil, in, &test); err != nil {
		return nil, err
	}
	return &test, nil
}

func (a *ICPTestAdapter) Update(ctx context.Context, _ string, id string, p backend.ICPTestPatch) (*entities.ICPTest, error) {
	body := map[string]any{}
	put(body, "test_date", p.TestDate)
	put(body, "lab_name", p.LabName)
	put(body, "lab_test_id", p.LabTestID)
	put(body, "water_type", p.WaterType)
	p.SampleDate.Apply(body, "sample_date")
	p.ReceivedDate.Apply(body, "received_date")
	p.EvaluatedDate.Apply(body, "evaluated_date")
	p.ScoreMajorElements.Apply(body, "score_major_elements")
	p.ScoreMinorElements.Apply(body, "score_minor_elements")
	p.ScorePollutants.Apply(body, "score_pollutants")
	p.ScoreBaseElements.Apply(body, "score_base_elements")
	p.ScoreOverall.Apply(body, "score_overall")
	if p.Elements != nil {
		body["elements"] = p.Elements
	}
	if p.ElementStatus != nil {
		body["element_status"] = p.ElementStatus
	}
	if p.Recommendations != nil {
		body["recommendations"] = p.Recommendations
	}
	put(body, "pdf_filename", p.PDFFilename)
	put(body, "notes", p.Notes)

	var test entities.ICPTest
	if err := a.client.do(ctx, http.MethodPatch, "/icp-tests/"+id, nil, body, &test); err != nil {
		return nil, err
	}
	return &test, nil
}

func (a *ICPTestAdapter) Delete(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/icp-tests/"+id, nil, nil, nil)
}
