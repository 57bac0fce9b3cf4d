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
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/tealeg/xlsx"
)

// SeriesRecord is the summary of one output file in a time series.
type SeriesRecord struct {
	File string
	*Summary
}

// Series is a time series of population summaries.
type Series []SeriesRecord

// MaskFunc returns the particle mask to apply to a dataset.
type MaskFunc func(*Dataset) (Mask, error)

// ProcessSeries loads and summarizes each of the given PartMC output
// files in turn. maskFunc, if not nil, selects the particles to be
// included from each file. The result is ordered by simulation time
// when every file records it, and by file name otherwise.
// If msgChan is not nil, status messages will be sent to it.
func ProcessSeries(files []string, sel SpeciesSelection, maskFunc MaskFunc, msgChan chan string) (Series, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("pmcpost: no files in time series")
	}
	names := append([]string(nil), files...)
	sort.Strings(names)

	o := make(Series, 0, len(names))
	for _, name := range names {
		d, err := Open(name)
		if err != nil {
			return nil, err
		}
		var mask Mask
		if maskFunc != nil {
			if mask, err = maskFunc(d); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		}
		s, err := Summarize(d, sel, mask)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		o = append(o, SeriesRecord{File: name, Summary: s})
		if msgChan != nil {
			msgChan <- fmt.Sprintf("summarized %d particles from %s", s.NumParticles, filepath.Base(name))
		}
	}

	haveTime := true
	for _, r := range o {
		if math.IsNaN(r.Env.Time) {
			haveTime = false
			break
		}
	}
	if haveTime {
		sort.SliceStable(o, func(i, j int) bool { return o[i].Env.Time < o[j].Env.Time })
	}
	return o, nil
}

var seriesHeader = []string{"File", "Time (s)", "Temperature (K)", "Relative humidity",
	"Pressure (Pa)", "Particles", "Number conc. (m-3)", "Dry mass conc. (kg m-3)",
	"Wet mass conc. (kg m-3)", "Dry density (kg m-3)", "Mean dry diameter (m)",
	"Median dry diameter (m)", "D_alpha", "D_gamma", "Chi"}

// values returns the numeric columns of the record, in header order.
func (r SeriesRecord) values() []float64 {
	return []float64{r.Env.Time, r.Env.Temperature, r.Env.RelHumidity, r.Env.Pressure,
		float64(r.NumParticles), r.NumConc.Value(), r.DryMassConc.Value(), r.WetMassConc.Value(),
		r.DryDensity.Value(), r.MeanDryDiam.Value(), r.MedianDryDiam.Value(),
		r.Diversity.DAlpha, r.Diversity.DGamma, r.Diversity.Chi}
}

// WriteXLSX writes the series to w as an Excel workbook with one row
// per output file. Missing values are left blank.
func (s Series) WriteXLSX(w io.Writer) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return fmt.Errorf("pmcpost: creating xlsx sheet: %v", err)
	}
	row := sheet.AddRow()
	for _, h := range seriesHeader {
		row.AddCell().SetString(h)
	}
	for _, r := range s {
		row = sheet.AddRow()
		row.AddCell().SetString(filepath.Base(r.File))
		for _, v := range r.values() {
			cell := row.AddCell()
			if !math.IsNaN(v) {
				cell.SetFloat(v)
			}
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("pmcpost: writing xlsx file: %v", err)
	}
	return nil
}

// WriteTable writes the series to w as tab-aligned text.
func (s Series) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	for i, h := range seriesHeader {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	for _, r := range s {
		fmt.Fprint(tw, filepath.Base(r.File))
		for _, v := range r.values() {
			fmt.Fprintf(tw, "\t%.6g", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
