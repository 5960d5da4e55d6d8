package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuiteRunner(t *testing.T) {
	masterConfig := []ConfigEntry{
		{
			ServiceName:       "StockLookup",
			FilePath:          "stock_api",
			ScenariosFileName: "stock_scenario.json",
			ServiceURL:        "/api/stock/low",
			HTTPMethodType:    "GET",
			WorkflowService:   "HandleLowStock",
		},
	}

	scenarios := []Scenario{
		{
			Name:             "LowStockList",
			Description:      "Returns items at or below their threshold",
			RequestMethod:    "GET",
			RequestURL:       "/api/stock/low",
			ExpectedCode:     200,
			ResponseFileName: "res.json",
		},
	}

	dir := t.TempDir()
	masterPath := filepath.Join(dir, "test_scenarios.json")

	masterData, err := json.Marshal(masterConfig)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(masterPath, masterData, 0644))

	apiDir := filepath.Join(dir, "stock_api")
	require.NoError(t, os.MkdirAll(apiDir, 0755))

	scenarioData, err := json.Marshal(scenarios)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(apiDir, "stock_scenario.json"), scenarioData, 0644))

	body := []byte(`{"items":[{"sku":"SHM-001","quantity":2}]}`)
	require.NoError(t, os.WriteFile(filepath.Join(apiDir, "res.json"), body, 0644))

	handlers := map[string]http.HandlerFunc{
		"HandleLowStock": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
		},
	}

	// Errors inside RunSuite trigger t.Fatal; a clean run is the assertion.
	RunSuite(t, masterPath, handlers)
}
