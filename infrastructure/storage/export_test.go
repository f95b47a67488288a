package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartetlab/quartet/internal/domain"
)

func TestExporter_ExportScores(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	exporter := NewExporter(db)

	require.NoError(t, store.SaveScore(ctx, "p-1",
		domain.TraitProfile{Openness: 42, Conscientiousness: 18, Extraversion: 35, Agreeableness: 27, Neuroticism: 22}))

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportScores(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"participant_id", "O", "C", "E", "A", "N", "created_at"}, records[0])
	assert.Equal(t, "p-1", records[1][0])
	assert.Equal(t, "42", records[1][1])
	assert.Equal(t, "22", records[1][5])
}

func TestExporter_ExportGenerations_PlainText(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	exporter := NewExporter(db)

	result := domain.GenerationResult{
		Condition:  domain.ConditionBaseline,
		ResponseID: "r-1",
		Text:       "Plant a vertical garden on the south wall.",
		Model:      "mock",
	}
	require.NoError(t, store.SaveGeneration(ctx, "p-1", "t-1", "prompt", result))

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportGenerations(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, generationsHeader, records[0], "plain text adds no flattened columns")
	assert.Equal(t, "baseline", records[1][2])
	assert.Equal(t, result.Text, records[1][12])
}

func TestExporter_ExportGenerations_FlattensJSONResponses(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	exporter := NewExporter(db)

	jsonResult := domain.GenerationResult{
		Condition:  domain.ConditionCreative,
		ResponseID: "r-2",
		Text:       `{"ideas":[{"title":"Pop-up cafe"},{"title":"Tool library"}],"count":2}`,
		Model:      "mock",
	}
	plainResult := domain.GenerationResult{
		Condition:  domain.ConditionBaseline,
		ResponseID: "r-3",
		Text:       "just text",
		Model:      "mock",
	}
	require.NoError(t, store.SaveGeneration(ctx, "p-1", "t-1", "prompt", jsonResult))
	require.NoError(t, store.SaveGeneration(ctx, "p-1", "t-1", "prompt", plainResult))

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportGenerations(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	require.Len(t, header, len(generationsHeader)+3)
	assert.Equal(t, []string{"count", "ideas_0_title", "ideas_1_title"}, header[len(generationsHeader):])

	jsonRow := records[1]
	assert.Equal(t, "2", jsonRow[len(generationsHeader)])
	assert.Equal(t, "Pop-up cafe", jsonRow[len(generationsHeader)+1])
	assert.Equal(t, "Tool library", jsonRow[len(generationsHeader)+2])

	plainRow := records[2]
	assert.Equal(t, []string{"", "", ""}, plainRow[len(generationsHeader):])
}

func TestExporter_ExportRatings(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)
	exporter := NewExporter(db)

	require.NoError(t, store.SaveRatings(ctx, []domain.Rating{
		{ParticipantID: "p-1", TaskID: "t-1", Condition: domain.ConditionComplement, ResponseID: "r-9", Usefulness: 4, Novelty: 3, Slot: 2},
	}))

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportRatings(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "complement", records[1][2])
	assert.Equal(t, "2", records[1][6])
}

func TestFlattenResponseText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]string
	}{
		{name: "plain text", in: "not json", want: nil},
		{name: "empty", in: "", want: nil},
		{name: "scalar json", in: `"just a string"`, want: nil},
		{
			name: "nested object",
			in:   `{"a":{"b":1},"c":true}`,
			want: map[string]string{"a_b": "1", "c": "true"},
		},
		{
			name: "array root",
			in:   `["x","y"]`,
			want: map[string]string{"0": "x", "1": "y"},
		},
		{
			name: "null leaf",
			in:   `{"a":null}`,
			want: map[string]string{"a": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flattenResponseText(tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
