/*
Copyright © 2021 the pmcpost authors.
This file is part of pmcpost.

pmcpost is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

pmcpost is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with pmcpost.  If not, see <http://www.gnu.org/licenses/>.
*/

package pmcpost

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tealeg/xlsx"
)

// writeSeries writes three output files whose name order is the
// reverse of their time order.
func writeSeries(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	var files []string
	for i, name := range []string{"out_0001_00000001.nc", "out_0001_00000002.nc", "out_0001_00000003.nc"} {
		d := testDataset(t)
		d.Env.Time = float64(3-i) * 600
		files = append(files, writeTestFile(t, d, filepath.Join(dir, name)))
	}
	return files
}

func TestProcessSeries(t *testing.T) {
	files := writeSeries(t)
	msgChan := make(chan string, len(files))
	s, err := ProcessSeries(files, DropSpecies{Water}, nil, msgChan)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 3 {
		t.Fatalf("records %d != 3", len(s))
	}
	if len(msgChan) != 3 {
		t.Errorf("messages %d != 3", len(msgChan))
	}
	for i, r := range s {
		if r.Env.Time != float64(i+1)*600 {
			t.Errorf("record %d: time %g", i, r.Env.Time)
		}
	}
	if filepath.Base(s[0].File) != "out_0001_00000003.nc" {
		t.Errorf("first file: %s", s[0].File)
	}
	d := testDataset(t)
	want, err := d.MixingStateIndex(DropSpecies{Water}, nil)
	if err != nil {
		t.Fatal(err)
	}
	checkDiversity(t, s[1].Diversity, want)
}

func TestProcessSeriesMask(t *testing.T) {
	files := writeSeries(t)
	maskFunc := func(d *Dataset) (Mask, error) {
		return Mask{true, true, false}, nil
	}
	s, err := ProcessSeries(files, nil, maskFunc, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range s {
		if r.NumParticles != 2 {
			t.Errorf("particles %d != 2", r.NumParticles)
		}
		if different(r.NumConc.Value(), 3.e9, testTolerance) {
			t.Errorf("number %g != 3e9", r.NumConc.Value())
		}
	}
	if _, err := ProcessSeries(nil, nil, nil, nil); err == nil {
		t.Error("empty file list should cause an error")
	}
	if _, err := ProcessSeries([]string{filepath.Join(t.TempDir(), "missing.nc")}, nil, nil, nil); err == nil {
		t.Error("missing file should cause an error")
	}
}

func TestSeriesOutput(t *testing.T) {
	files := writeSeries(t)
	s, err := ProcessSeries(files, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	s[0].Env.Pressure = math.NaN()

	t.Run("xlsx", func(t *testing.T) {
		var buf bytes.Buffer
		if err := s.WriteXLSX(&buf); err != nil {
			t.Fatal(err)
		}
		f, err := xlsx.OpenBinary(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		sheet, ok := f.Sheet["Summary"]
		if !ok {
			t.Fatal("missing Summary sheet")
		}
		if len(sheet.Rows) != 4 {
			t.Fatalf("rows %d != 4", len(sheet.Rows))
		}
		if v := sheet.Rows[0].Cells[0].Value; v != "File" {
			t.Errorf("header: %s", v)
		}
		if v := sheet.Rows[1].Cells[0].Value; v != "out_0001_00000003.nc" {
			t.Errorf("file: %s", v)
		}
		if v := sheet.Rows[1].Cells[1].Value; v != "600" {
			t.Errorf("time: %s", v)
		}
		if v := sheet.Rows[1].Cells[4].Value; v != "" {
			t.Errorf("missing pressure should be blank but is %q", v)
		}
	})
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		if err := s.WriteTable(&buf); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 4 {
			t.Fatalf("lines %d != 4", len(lines))
		}
		if !strings.HasPrefix(lines[0], "File") || !strings.HasPrefix(lines[1], "out_0001_00000003.nc") {
			t.Errorf("unexpected table:\n%s", buf.String())
		}
	})
}
