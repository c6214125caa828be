// ABOUTME: Integration tests for the anamnesis CLI.
// ABOUTME: Builds the binary and runs a full compute, save, list, and export workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const answers = `{
  "1": "ganhar_massa",
  "2": ["autoestima"],
  "3": "longo",
  "4": "sustentavel",
  "5": {"sexo": "Feminino", "idade": 30, "altura": 165, "peso": 60},
  "6": "magro",
  "7": "leve",
  "8": "leve_ativa",
  "9": "intermediario",
  "10": "academia_basica",
  "11": "3",
  "12": ["musculacao"],
  "13": "5-6",
  "14": "nao",
  "15": "sim",
  "16": ["creatina", "proteina_po"],
  "17": "nao",
  "18": "3",
  "19": ["ovos", "laticinios"],
  "20": ["aveia", "batatas"],
  "21": "lactose",
  "22": "3-5_copos",
  "23": "mesmo_padrao"
}`

func TestFullWorkflow(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "anamnesis")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/anamnesis")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")
	answersPath := filepath.Join(tmpDir, "answers.json")
	if err := os.WriteFile(answersPath, []byte(answers), 0600); err != nil {
		t.Fatalf("Failed to write answers: %v", err)
	}

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--data-dir", dataDir}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
			"XDG_DATA_HOME="+filepath.Join(tmpDir, "share"),
			"NO_COLOR=1",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("compute", "--answers", answersPath, "--save")
	if err != nil {
		t.Fatalf("Failed to compute: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Goal: muscle gain") {
		t.Errorf("Expected muscle gain goal, got: %s", output)
	}
	if !strings.Contains(output, "Saved assessment") {
		t.Errorf("Expected 'Saved assessment' in output, got: %s", output)
	}

	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "muscle gain") {
		t.Errorf("Expected 'muscle gain' in list output, got: %s", output)
	}

	output, err = run("show", "--answers")
	if err != nil {
		t.Fatalf("Failed to show: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Creatina") {
		t.Errorf("Expected supplement labels in answers, got: %s", output)
	}

	output, err = run("export", "json")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if !strings.Contains(output, `"assessments"`) {
		t.Errorf("Expected assessments in export, got: %s", output)
	}
}
