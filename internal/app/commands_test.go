package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/pareto/internal/pareto"
	"github.com/blackwell-systems/pareto/internal/store"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTableCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "table", "A=10", "B=30", "C=60")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Frequency", "Share", "60.0%", "90.0%", "100.0%", "Total: 100"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\nGot:\n%s", want, out)
		}
	}
	if strings.Index(out, "C ") > strings.Index(out, "A ") {
		t.Errorf("expected C ranked before A:\n%s", out)
	}
}

func TestTableCommand_JSON(t *testing.T) {
	isolate(t)

	out, err := execute(t, "table", "--json", "--label", "defect type", "A=10", "B=30", "C=60")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got pareto.Table
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Label != "defect_type" {
		t.Errorf("label = %q, want defect_type", got.Label)
	}
	if len(got.Rows) != 3 || got.Rows[0].Item != "C" || got.Rows[2].Item != "A" {
		t.Errorf("unexpected rows: %+v", got.Rows)
	}
}

func TestSharesAndCumulativeCommands(t *testing.T) {
	isolate(t)

	tests := []struct {
		cmd  string
		want string
	}{
		{"shares", "0.6\n0.3\n0.1\n"},
		{"cumulative", "0.6\n0.9\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			out, err := execute(t, tt.cmd, "A=10", "B=30", "C=60")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("%s output = %q, want %q", tt.cmd, out, tt.want)
			}
		})
	}
}

func TestInspectCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "inspect", "A=10", "B=30", "C=60")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Pareto(items=[A B C], frequencies=[10 30 60], label=items)\n"
	if out != want {
		t.Errorf("inspect output = %q, want %q", out, want)
	}
}

func TestDataSources(t *testing.T) {
	dir := isolate(t)

	csvPath := writeFile(t, filepath.Join(dir, "defects.csv"), "cause,count\nscratch,12\ndent,30\ncrack,5\n")
	jsonPath := writeFile(t, filepath.Join(dir, "defects.json"),
		`[{"item":"scratch","frequency":12},{"item":"dent","frequency":30},{"item":"crack","frequency":5}]`)

	dbFile := filepath.Join(dir, "qa.db")
	st, err := store.New(dbFile)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if _, err := st.DB().Exec(`
		CREATE TABLE returns (cause TEXT);
		INSERT INTO returns VALUES ('dent'), ('dent'), ('scratch'), ('dent'), ('crack'), ('scratch');
	`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	st.Close()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"csv file", []string{"inspect", "--file", csvPath}, "items=[scratch dent crack], frequencies=[12 30 5]"},
		{"json file", []string{"inspect", "--file", jsonPath}, "items=[scratch dent crack], frequencies=[12 30 5]"},
		{
			"sqlite query",
			[]string{"inspect", "--db", dbFile, "--query", "SELECT cause, COUNT(*) FROM returns GROUP BY cause ORDER BY cause"},
			"items=[crack dent scratch], frequencies=[1 3 2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	dir := isolate(t)
	csvPath := writeFile(t, filepath.Join(dir, "d.csv"), "a,1\n")

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "no source", args: []string{"table"}, wantErr: errNoSource},
		{name: "two sources", args: []string{"table", "--file", csvPath, "A=1"}, wantMsg: "only one data source"},
		{name: "db without query", args: []string{"table", "--db", filepath.Join(dir, "x.db")}, wantMsg: "--db and --query"},
		{name: "malformed pair", args: []string{"table", "A"}, wantErr: pareto.ErrInvalidInput},
		{name: "negative frequency", args: []string{"shares", "A=-1", "B=2"}, wantErr: pareto.ErrInvalidInput},
		{name: "zero total", args: []string{"cumulative", "A=0", "B=0"}, wantErr: pareto.ErrDegenerateData},
		{name: "invalid figure size", args: []string{"render", "--width", "0", "A=1"}, wantErr: pareto.ErrRenderingFailure},
		{name: "NaN figure width", args: []string{"render", "--width", "NaN", "--save", "A=1"}, wantErr: pareto.ErrRenderingFailure},
		{name: "Inf dpi", args: []string{"render", "--dpi", "+Inf", "A=1"}, wantErr: pareto.ErrRenderingFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestConfigLabel(t *testing.T) {
	dir := isolate(t)
	cfg := writeFile(t, filepath.Join(dir, "cfg.yaml"), "label: defect type\n")

	out, err := execute(t, "inspect", "--config", cfg, "A=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "label=defect type") {
		t.Errorf("config label not applied: %q", out)
	}

	out, err = execute(t, "inspect", "--config", cfg, "--label", "cause", "A=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "label=cause") {
		t.Errorf("--label did not override config: %q", out)
	}
}

func TestConfigFileErrors(t *testing.T) {
	dir := isolate(t)
	bad := writeFile(t, filepath.Join(dir, "bad.yaml"), "colour: red\n")

	if _, err := execute(t, "table", "--config", bad, "A=1"); err == nil {
		t.Error("expected unknown config key to fail")
	}
}
