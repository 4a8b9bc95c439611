package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/verdix/verdix/internal/models"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

type SheetsOptions struct {
	SpreadsheetID   string
	SpreadsheetName string
	Credentials     []byte
}

// SheetsStore keeps each table in a worksheet of one spreadsheet. Row 1 of
// every worksheet is its header.
type SheetsStore struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *zap.Logger
}

// LoadCredentials returns the service account key from inline JSON or a file.
func LoadCredentials(inline, file string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if file == "" {
		return nil, errors.New("No service account credentials configured")
	}
	body, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read service account credentials")
	}
	return body, nil
}

// RepairCredentials turns literal "\n" sequences of the private key back into
// newlines; keys pasted into env vars or secret managers often lose them.
func RepairCredentials(body []byte) ([]byte, error) {
	var key map[string]interface{}
	if err := json.Unmarshal(body, &key); err != nil {
		return nil, errors.Wrap(err, "Failed to parse service account credentials")
	}
	if privateKey, ok := key["private_key"].(string); ok {
		key["private_key"] = strings.ReplaceAll(privateKey, `\n`, "\n")
	}
	repaired, err := json.Marshal(key)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode service account credentials")
	}
	return repaired, nil
}

func OpenSheets(ctx context.Context, logger *zap.Logger, options SheetsOptions) (*SheetsStore, error) {
	credentials, err := RepairCredentials(options.Credentials)
	if err != nil {
		return nil, err
	}

	jwt, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope, drive.DriveReadonlyScope)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build service account config")
	}
	client := jwt.Client(ctx)

	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create sheets client")
	}

	spreadsheetID := options.SpreadsheetID
	if spreadsheetID == "" {
		spreadsheetID, err = resolveSpreadsheet(ctx, client, options.SpreadsheetName)
		if err != nil {
			return nil, err
		}
	}
	logger.Info("Opened spreadsheet", zap.String("spreadsheet_id", spreadsheetID))

	return &SheetsStore{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

func resolveSpreadsheet(ctx context.Context, client *http.Client, name string) (string, error) {
	service, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", errors.Wrap(err, "Failed to create drive client")
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMimeType)
	files, err := service.Files.List().Q(query).Fields("files(id, name)").PageSize(10).Context(ctx).Do()
	if err != nil {
		return "", errors.Wrapf(err, "Failed to look up spreadsheet %q", name)
	}
	if len(files.Files) == 0 {
		return "", errors.Errorf("Spreadsheet %q not found or not shared with the service account", name)
	}
	return files.Files[0].Id, nil
}

// sheetRange addresses a whole worksheet in A1 notation.
func sheetRange(table string) string {
	return "'" + strings.ReplaceAll(table, "'", "''") + "'"
}

func (s *SheetsStore) Append(ctx context.Context, table string, values []interface{}) error {
	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, sheetRange(table), &sheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return errors.Wrapf(err, "Failed to append row to %s", table)
	}
	return nil
}

func (s *SheetsStore) ReadAll(ctx context.Context, table string) ([]models.Row, error) {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, sheetRange(table)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %s", table)
	}
	return rowsFromValues(resp.Values), nil
}

func rowsFromValues(values [][]interface{}) []models.Row {
	if len(values) == 0 {
		return []models.Row{}
	}
	header := models.CellStrings(values[0])
	rows := make([]models.Row, 0, len(values)-1)
	for _, cells := range values[1:] {
		rows = append(rows, models.MakeRow(header, models.CellStrings(cells)))
	}
	return rows
}

func (s *SheetsStore) Tables(ctx context.Context) ([]string, error) {
	spreadsheet, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to load spreadsheet")
	}
	tables := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			tables = append(tables, sheet.Properties.Title)
		}
	}
	return tables, nil
}
