package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vmake/models"
	"vmake/utils"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// valuesAPI is the slice of the Sheets values API the repo needs. Narrow on
// purpose so tests can stand in a fake.
type valuesAPI interface {
	Append(ctx context.Context, readRange string, values [][]interface{}) (string, error)
	Get(ctx context.Context, readRange string) ([][]interface{}, error)
	Update(ctx context.Context, updateRange string, values [][]interface{}) error
}

type googleValues struct {
	svc     *gsheets.Service
	sheetID string
}

func (g *googleValues) Append(ctx context.Context, readRange string, values [][]interface{}) (string, error) {
	resp, err := g.svc.Spreadsheets.Values.
		Append(g.sheetID, readRange, &gsheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if resp.Updates != nil {
		return resp.Updates.UpdatedRange, nil
	}
	return "", nil
}

func (g *googleValues) Get(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.sheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleValues) Update(ctx context.Context, updateRange string, values [][]interface{}) error {
	_, err := g.svc.Spreadsheets.Values.
		Update(g.sheetID, updateRange, &gsheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

// SheetsRepo persists submissions to a Google spreadsheet.
type SheetsRepo struct {
	api       valuesAPI
	sheetName string
}

// NewSheetsRepo builds a repo over the Sheets API using a service-account
// credentials file.
func NewSheetsRepo(ctx context.Context, sheetID, credentialsFile, sheetName string) (*SheetsRepo, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("google sheet ID is required")
	}
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets service: %w", err)
	}
	return &SheetsRepo{
		api:       &googleValues{svc: svc, sheetID: sheetID},
		sheetName: sheetName,
	}, nil
}

func (r *SheetsRepo) dataRange() string {
	return fmt.Sprintf("%s!A:J", r.sheetName)
}

func (r *SheetsRepo) Append(ctx context.Context, sub models.ProjectSubmission, results *models.ProjectResults) (*AppendResult, error) {
	logger := utils.GetLogger()

	var serialized string
	if results != nil {
		b, err := json.Marshal(results)
		if err != nil {
			return nil, &StoreError{Op: "append", Err: err}
		}
		serialized = string(b)
	}

	row := []interface{}{
		time.Now().UTC().Format(time.RFC3339),
		sub.Name,
		sub.Email,
		sub.Phone,
		sub.ProjectName,
		sub.Description,
		sub.Timeline,
		sub.Budget,
		sub.Location,
		serialized,
	}

	updatedRange, err := r.api.Append(ctx, r.dataRange(), [][]interface{}{row})
	if err != nil {
		return nil, &StoreError{Op: "append", Err: err}
	}

	res := &AppendResult{UpdatedRange: updatedRange}
	if results != nil {
		res.SubmissionID = results.SubmissionID
	}
	logger.Info("Project stored in sheet",
		zap.String("projectName", sub.ProjectName),
		zap.String("updatedRange", updatedRange),
	)
	return res, nil
}

func (r *SheetsRepo) Projects(ctx context.Context) ([]models.StoredProject, error) {
	rows, err := r.api.Get(ctx, r.dataRange())
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	projects := make([]models.StoredProject, 0, len(rows)-1)
	for _, row := range rows[1:] {
		projects = append(projects, models.StoredProject{
			Timestamp: cell(row, 0),
			ProjectSubmission: models.ProjectSubmission{
				Name:        cell(row, 1),
				Email:       cell(row, 2),
				Phone:       cell(row, 3),
				ProjectName: cell(row, 4),
				Description: cell(row, 5),
				Timeline:    cell(row, 6),
				Budget:      cell(row, 7),
				Location:    cell(row, 8),
			},
			Results: parseResults(cell(row, 9)),
		})
	}
	return projects, nil
}

func (r *SheetsRepo) UpdateStatus(ctx context.Context, upd models.StatusUpdate) error {
	rows, err := r.api.Get(ctx, r.dataRange())
	if err != nil {
		return &StoreError{Op: "update", Err: err}
	}

	rowIndex := r.findRow(rows, upd)
	if rowIndex < 0 {
		key := upd.SubmissionID
		if key == "" {
			key = upd.Email
		}
		return &NotFoundError{Key: key}
	}

	// Sheet rows are 1-based.
	updateRange := fmt.Sprintf("%s!K%d:M%d", r.sheetName, rowIndex+1, rowIndex+1)
	values := [][]interface{}{{upd.ServiceType, upd.TransactionID, upd.Status}}
	if err := r.api.Update(ctx, updateRange, values); err != nil {
		return &StoreError{Op: "update", Err: err}
	}
	return nil
}

// findRow locates the first row matching the submission id, falling back to
// the first row whose email column matches.
func (r *SheetsRepo) findRow(rows [][]interface{}, upd models.StatusUpdate) int {
	if upd.SubmissionID != "" {
		for i, row := range rows {
			if res := parseResults(cell(row, 9)); res != nil && res.SubmissionID == upd.SubmissionID {
				return i
			}
		}
	}
	if upd.Email != "" {
		for i, row := range rows {
			if cell(row, 2) == upd.Email {
				return i
			}
		}
	}
	return -1
}

// parseResults treats empty or malformed result cells as absent rather than
// failing the whole read.
func parseResults(raw string) *models.ProjectResults {
	if raw == "" {
		return nil
	}
	var res models.ProjectResults
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil
	}
	return &res
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprintf("%v", row[i])
}
