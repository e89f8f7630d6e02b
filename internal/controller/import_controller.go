// internal/controller/import_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	appErrors "github.com/unclebandit/wabablast-backend/internal/errors"
	"github.com/unclebandit/wabablast-backend/internal/service"
	"github.com/unclebandit/wabablast-backend/internal/tabular"
)

// ImportController exposes the three import stages: parse a file, dry-run
// validate rows, and validate-plus-persist contacts.
type ImportController struct {
	Validator     *service.RowValidator
	ImportService *service.ImportService
}

// previewRowLimit caps how many parsed rows go back to the client; totalRows
// still reports the full count.
const previewRowLimit = 1000

// importRequest is the JSON body shared by validate and import: parsed
// tabular data plus the column mapping.
type importRequest struct {
	Headers     []string         `json:"headers"`
	Rows        [][]tabular.Cell `json:"rows"`
	PhoneColumn string           `json:"phoneColumn"`
	NameColumn  string           `json:"nameColumn"`
}

// ParseFile handles POST /import/parse: decode an uploaded CSV/Excel file
// into headers and rows.
func (c *ImportController) ParseFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, tabular.MaxFileSize)
	if err := r.ParseMultipartForm(tabular.MaxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "file size exceeds 10MB limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	table, err := tabular.Parse(header.Filename, file)
	if err != nil {
		var unsupported *appErrors.ErrUnsupportedFormat
		var empty *appErrors.ErrEmptyFile
		switch {
		case errors.As(err, &unsupported):
			writeError(w, http.StatusBadRequest, "Only CSV and Excel files are supported")
		case errors.As(err, &empty), errors.Is(err, tabular.ErrNoHeaders):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, "failed to parse file")
		}
		return
	}

	preview := table.Rows
	if len(preview) > previewRowLimit {
		preview = preview[:previewRowLimit]
	}

	writeSuccess(w, map[string]interface{}{
		"headers":   table.Headers,
		"rows":      preview,
		"totalRows": len(table.Rows),
	})
}

// ValidateRows handles POST /import/validate: classify rows without
// persisting anything.
func (c *ImportController) ValidateRows(w http.ResponseWriter, r *http.Request) {
	var body importRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.PhoneColumn == "" {
		writeError(w, http.StatusBadRequest, "phoneColumn is required")
		return
	}

	table := &tabular.Table{Headers: body.Headers, Rows: body.Rows}
	report, err := c.Validator.Validate(table, body.PhoneColumn, body.NameColumn)
	if err != nil {
		var notFound *appErrors.ErrColumnNotFound
		if errors.As(err, &notFound) {
			writeError(w, http.StatusBadRequest, "Phone column not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to validate data")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"validContacts":     report.ValidContacts,
		"invalidContacts":   report.InvalidContacts,
		"duplicateContacts": report.DuplicateContacts,
		"errors":            report.DisplayErrors(),
		"totalErrors":       len(report.Errors),
	})
}

// ImportContacts handles POST /import/contacts: validate rows and persist
// the surviving candidates for the requesting organization.
func (c *ImportController) ImportContacts(w http.ResponseWriter, r *http.Request) {
	orgID := organizationID(r)
	if orgID == "" {
		writeError(w, http.StatusBadRequest, "missing X-Organization-ID header")
		return
	}

	var body importRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.PhoneColumn == "" {
		writeError(w, http.StatusBadRequest, "phoneColumn is required")
		return
	}

	table := &tabular.Table{Headers: body.Headers, Rows: body.Rows}
	report, err := c.Validator.Validate(table, body.PhoneColumn, body.NameColumn)
	if err != nil {
		var notFound *appErrors.ErrColumnNotFound
		if errors.As(err, &notFound) {
			writeError(w, http.StatusBadRequest, "Phone column not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to validate data")
		return
	}

	result, err := c.ImportService.ImportContacts(r.Context(), orgID, "", report)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to import contacts")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"importBatch": map[string]interface{}{
			"id":          result.ImportBatchID,
			"totalRows":   result.TotalRows,
			"validRows":   result.ValidContacts,
			"invalidRows": result.InvalidContacts,
		},
		"validContacts":     result.ValidContacts,
		"invalidContacts":   result.InvalidContacts,
		"duplicateContacts": result.DuplicateContacts,
		"newContacts":       result.NewContacts,
		"existingContacts":  result.ExistingContacts,
		"errors":            report.DisplayErrors(),
		"totalErrors":       len(report.Errors),
	})
}
