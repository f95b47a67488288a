package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gorm.io/gorm"
)

// generationsHeader is the fixed column prefix of the generations
// export. Columns for flattened response JSON are appended after it.
var generationsHeader = []string{
	"participant_id", "task_id", "condition", "response_id", "model",
	"tokens_in", "tokens_out", "latency_ms", "created_at",
	"system_prompt", "user_prompt", "prompt_text", "text",
}

const exportTimeLayout = "2006-01-02 15:04:05"

// Exporter writes study tables as CSV for analysis.
type Exporter struct {
	db *gorm.DB
}

// NewExporter wraps an opened database connection.
func NewExporter(db *gorm.DB) *Exporter { return &Exporter{db: db} }

// ExportGenerations writes every generation row to w. Response texts
// that parse as JSON objects or arrays are flattened into extra
// columns, keyed by underscore-joined paths, so structured outputs stay
// analyzable in spreadsheet tools.
func (e *Exporter) ExportGenerations(ctx context.Context, w io.Writer) error {
	var rows []Generation
	if err := e.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load generations: %w", err)
	}

	// First pass collects the union of flattened keys so the header
	// covers every row.
	flattened := make([]map[string]string, len(rows))
	seen := make(map[string]bool)
	for i, row := range rows {
		flat := flattenResponseText(row.Text)
		flattened[i] = flat
		for key := range flat {
			seen[key] = true
		}
	}
	extraKeys := make([]string, 0, len(seen))
	for key := range seen {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)

	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, generationsHeader...), extraKeys...)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		record := []string{
			row.ParticipantID, row.TaskID, row.Condition, row.ResponseID, row.Model,
			strconv.Itoa(row.TokensIn), strconv.Itoa(row.TokensOut),
			strconv.FormatInt(row.LatencyMs, 10),
			row.CreatedAt.Format(exportTimeLayout),
			row.SystemPrompt, row.UserPrompt, row.PromptText, row.Text,
		}
		for _, key := range extraKeys {
			record = append(record, flattened[i][key])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportScores writes every trait score row to w.
func (e *Exporter) ExportScores(ctx context.Context, w io.Writer) error {
	var rows []TraitScore
	if err := e.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load trait scores: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"participant_id", "O", "C", "E", "A", "N", "created_at"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.ParticipantID,
			strconv.Itoa(row.Openness), strconv.Itoa(row.Conscientious),
			strconv.Itoa(row.Extraversion), strconv.Itoa(row.Agreeableness),
			strconv.Itoa(row.Neuroticism),
			row.CreatedAt.Format(exportTimeLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportRatings writes every rating row to w.
func (e *Exporter) ExportRatings(ctx context.Context, w io.Writer) error {
	var rows []RatingRow
	if err := e.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}

	cw := csv.NewWriter(w)
	header := []string{
		"participant_id", "task_id", "condition", "response_id",
		"usefulness", "novelty", "shown_slot", "created_at",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.ParticipantID, row.TaskID, row.Condition, row.ResponseID,
			strconv.Itoa(row.Usefulness), strconv.Itoa(row.Novelty),
			strconv.Itoa(row.ShownSlot),
			row.CreatedAt.Format(exportTimeLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// flattenResponseText parses text as JSON and flattens nested objects
// and arrays into underscore-joined keys. Non-JSON text (the common
// case) yields no columns.
func flattenResponseText(text string) map[string]string {
	if text == "" {
		return nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil
	}
	switch parsed.(type) {
	case map[string]any, []any:
		out := make(map[string]string)
		flattenValue(parsed, "", out)
		return out
	default:
		return nil
	}
}

func flattenValue(value any, prefix string, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			flattenValue(nested, joinKey(prefix, key), out)
		}
	case []any:
		for idx, nested := range v {
			flattenValue(nested, joinKey(prefix, strconv.Itoa(idx)), out)
		}
	default:
		if prefix == "" {
			return
		}
		switch leaf := v.(type) {
		case string:
			out[prefix] = leaf
		case float64:
			out[prefix] = strconv.FormatFloat(leaf, 'f', -1, 64)
		case bool:
			out[prefix] = strconv.FormatBool(leaf)
		case nil:
			out[prefix] = ""
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "_" + key
}
