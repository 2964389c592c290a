package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	ds, err := New([]Sample{{X: []float64{1, 2}, Y: 3}, {X: []float64{4, 5}, Y: 9}})
	if err != nil {
		t.Fatal(err)
	}
	if ds.VarCount != 2 || ds.Len() != 2 {
		t.Errorf("VarCount=%d Len=%d, want 2 and 2", ds.VarCount, ds.Len())
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	if _, err := New([]Sample{{X: nil, Y: 1}}); !errors.Is(err, ErrArity) {
		t.Errorf("expected ErrArity for zero inputs, got %v", err)
	}
	_, err := New([]Sample{{X: []float64{1}, Y: 1}, {X: []float64{1, 2}, Y: 1}})
	if !errors.Is(err, ErrArity) {
		t.Errorf("expected ErrArity for mixed arity, got %v", err)
	}
}

func TestRead(t *testing.T) {
	in := "x0, x1, y\n1, 2, 3\n# comment\n4,5,9.5\n"
	ds, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if ds.VarCount != 2 || ds.Len() != 2 {
		t.Fatalf("VarCount=%d Len=%d", ds.VarCount, ds.Len())
	}
	if ds.Header[2] != "y" {
		t.Errorf("header = %v", ds.Header)
	}
	last := ds.Samples[1]
	if last.X[0] != 4 || last.X[1] != 5 || last.Y != 9.5 {
		t.Errorf("sample = %+v", last)
	}
}

func TestRead_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"header only": "x,y\n",
		"one column":  "y\n1\n",
		"bad number":  "x,y\n1,abc\n",
		"ragged":      "x,y\n1,2\n3\n",
	}
	for name, in := range cases {
		if _, err := Read(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,2\n2,4\n3,6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 3 || ds.Samples[2].Y != 6 {
		t.Errorf("unexpected dataset: %+v", ds.Samples)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
