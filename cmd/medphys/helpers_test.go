package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// testEnv is a complete medphys setup in a temporary directory.
type testEnv struct {
	baseDir      string
	templatesDir string
	dbPath       string
	configPath   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	env := &testEnv{
		baseDir:      filepath.Join(root, "reports"),
		templatesDir: filepath.Join(root, "templates"),
		dbPath:       filepath.Join(root, "equipment.db"),
		configPath:   filepath.Join(root, ".medphys.yaml"),
	}

	if _, err := writeSkeletons(env.templatesDir); err != nil {
		t.Fatalf("writeSkeletons() error = %v", err)
	}
	createEquipmentDB(t, env.dbPath)

	config := fmt.Sprintf(`dirs:
  base_report_dir: %s
  templates_dir: %s
  database: %s
testing_info:
  tested_by: A. Tester
  tested_by_spn: "1111"
  checked_by: B. Checker
  checked_by_spn: "2222"
detector_info:
  detector_model: RaySafe X2
  detector_sn: "300123"
  detector_cal_date: 01-10-2024
`, env.baseDir, env.templatesDir, env.dbPath)
	if err := os.WriteFile(env.configPath, []byte(config), 0o600); err != nil {
		t.Fatal(err)
	}
	return env
}

// reportPath returns the path of a March 2024 report.
func (e *testEnv) reportPath(name string) string {
	return filepath.Join(e.baseDir, "2024", "03-March", name)
}

func createEquipmentDB(t *testing.T, path string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE equipment (id TEXT NOT NULL, site TEXT, location TEXT, location_detail TEXT,
			type TEXT, manufacturer TEXT, model TEXT)`,
		`INSERT INTO equipment VALUES ('1234', 'Main Hospital', 'Radiology', 'Room 1', 'X-Ray', 'GE', 'Discovery')`,
		`INSERT INTO equipment VALUES ('2000', 'North Clinic', 'Fluoro', NULL, 'Rad/Fluoro', 'Siemens', 'Luminos dRF')`,
		`INSERT INTO equipment VALUES ('4000', 'Main Hospital', 'ICU', NULL, 'Portable X-Ray', 'Carestream', 'DRX')`,
		`INSERT INTO equipment VALUES ('5000', 'Main Hospital', 'ER', NULL, 'Portable X-Ray', 'AGFA', 'DX-D 100')`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("failed to seed database: %v", err)
		}
	}
}
