package corrector

import (
	"reflect"
	"testing"
)

func TestAnalyze_StringToArray(t *testing.T) {
	c := New()

	errMsg := `Invalid arguments: expected array, received string at "path": [ "indices" ]`
	params := map[string]any{"indices": "logs-2024"}

	corr := c.Analyze(errMsg, params)
	if corr == nil {
		t.Fatal("expected a correction")
	}
	want := []any{"logs-2024"}
	if !reflect.DeepEqual(corr.Corrected["indices"], want) {
		t.Errorf("corrected indices = %v, want %v", corr.Corrected["indices"], want)
	}
}

func TestAnalyze_IndexToIndices(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		alias string
	}{
		{"index alias", "index"},
		{"index_name alias", "index_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := map[string]any{tt.alias: "a"}
			corr := c.Analyze(`Required field "indices" is missing`, params)
			if corr == nil {
				t.Fatal("expected a correction")
			}
			if _, stillThere := corr.Corrected[tt.alias]; stillThere {
				t.Errorf("alias %q should have been removed", tt.alias)
			}
			if !reflect.DeepEqual(corr.Corrected["indices"], []any{"a"}) {
				t.Errorf("corrected = %v", corr.Corrected)
			}
		})
	}
}

func TestAnalyze_QueryAlias(t *testing.T) {
	c := New()

	params := map[string]any{"esql": "FROM logs | LIMIT 10"}
	corr := c.Analyze(`Required parameter "query" is undefined`, params)
	if corr == nil {
		t.Fatal("expected a correction")
	}
	if corr.Corrected["query"] != "FROM logs | LIMIT 10" {
		t.Errorf("corrected query = %v", corr.Corrected["query"])
	}
}

func TestAnalyze_SingularToPlural(t *testing.T) {
	c := New()

	params := map[string]any{"field": "timestamp"}
	corr := c.Analyze(`Expected "fields" but received something else`, params)
	if corr == nil {
		t.Fatal("expected a correction")
	}
	if corr.Corrected["fields"] != "timestamp" {
		t.Errorf("corrected = %v", corr.Corrected)
	}
	if _, ok := corr.Corrected["field"]; ok {
		t.Error("original key should have been removed")
	}
}

func TestAnalyze_CaseRename(t *testing.T) {
	c := New()

	params := map[string]any{"maxResults": 10}
	corr := c.Analyze(`Unknown parameter; expected "max_results"`, params)
	if corr == nil {
		t.Fatal("expected a correction")
	}
	if corr.Corrected["max_results"] != 10 {
		t.Errorf("corrected = %v", corr.Corrected)
	}
}

func TestAnalyze_NoCorrection(t *testing.T) {
	c := New()

	if corr := c.Analyze("some unrelated failure", map[string]any{"q": 1}); corr != nil {
		t.Errorf("expected nil, got %+v", corr)
	}
	if corr := c.Analyze(`Required "x" array`, nil); corr != nil {
		t.Errorf("expected nil for empty params, got %+v", corr)
	}
}

func TestAnalyze_DoesNotMutateOriginal(t *testing.T) {
	c := New()

	params := map[string]any{"index": "a"}
	corr := c.Analyze(`Required field "indices" is missing`, params)
	if corr == nil {
		t.Fatal("expected a correction")
	}
	if _, ok := params["indices"]; ok {
		t.Error("original params were mutated")
	}
}
