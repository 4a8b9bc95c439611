package targz

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPackExtract(t *testing.T) {
	var buf bytes.Buffer
	err := Pack(&buf,
		File{Name: "Teams.csv", Body: []byte("Team Name\nRocket Labs\n")},
		File{Name: "Scores.csv", Body: []byte("Team Name,A\nRocket Labs,5\n")},
		File{Name: "Config.csv"},
	)
	if err != nil {
		t.Fatal(err)
	}

	files, err := ExtractToMemory(&buf)
	if err != nil {
		t.Fatal(err)
	}

	expected := map[string][]byte{
		"Teams.csv":  []byte("Team Name\nRocket Labs\n"),
		"Scores.csv": []byte("Team Name,A\nRocket Labs,5\n"),
		"Config.csv": nil,
	}
	if diff := cmp.Diff(expected, files, cmp.Comparer(bytes.Equal)); diff != "" {
		t.Errorf("ExtractToMemory() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRejectsGarbage(t *testing.T) {
	if _, err := ExtractToMemory(bytes.NewReader([]byte("definitely not gzip"))); err == nil {
		t.Fatal("expected an error")
	}
}
