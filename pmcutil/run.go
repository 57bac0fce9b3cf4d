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

package pmcutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/pmcpost"
)

// openMasked loads the given file and calculates the particle mask.
func openMasked(file string, maskFunc pmcpost.MaskFunc) (*pmcpost.Dataset, pmcpost.Mask, error) {
	d, err := pmcpost.Open(file)
	if err != nil {
		return nil, nil, err
	}
	if maskFunc == nil {
		return d, nil, nil
	}
	mask, err := maskFunc(d)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}
	return d, mask, nil
}

// Chi calculates the mixing state index of the particles in file with
// respect to the species selection sel and writes it to w. maskFunc, if not
// nil, selects the particles to include. If skipEmpty is true, particles
// with none of the selected species are left out. If diversity is true, the
// particle and population diversities are written as well.
func Chi(w io.Writer, file string, sel pmcpost.SpeciesSelection, maskFunc pmcpost.MaskFunc, skipEmpty, diversity bool) error {
	d, mask, err := openMasked(file, maskFunc)
	if err != nil {
		return err
	}
	if skipEmpty {
		nonEmpty, err := d.NonEmpty(sel)
		if err != nil {
			return err
		}
		if mask, err = mask.And(nonEmpty); err != nil {
			return err
		}
	}
	div, err := d.MixingStateIndex(sel, mask)
	if err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"file":      filepath.Base(file),
		"species":   sel,
		"particles": mask.Count(d.NumParticles()),
	}).Debug("calculated mixing state index")
	if !div.Defined() {
		Log.Warn("the population contains a single species, so the mixing state index is undefined")
	}
	if diversity {
		fmt.Fprintf(w, "D_alpha\t%g\n", div.DAlpha)
		fmt.Fprintf(w, "D_gamma\t%g\n", div.DGamma)
	}
	fmt.Fprintf(w, "chi\t%g\n", div.Chi)
	return nil
}

// Conc writes to w the total number concentration, the mass concentration,
// and the bulk density of the particles in file selected by maskFunc.
// Water is excluded from the mass and density if dry is true.
func Conc(w io.Writer, file string, maskFunc pmcpost.MaskFunc, dry bool) error {
	d, mask, err := openMasked(file, maskFunc)
	if err != nil {
		return err
	}
	n, err := d.TotalNumberConcentration(mask)
	if err != nil {
		return err
	}
	m, err := d.TotalMassConcentration(dry, mask)
	if err != nil {
		return err
	}
	rho, err := d.BulkDensity(dry, mask)
	if err != nil {
		return err
	}
	prefix := "wet"
	if dry {
		prefix = "dry"
	}
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintf(tw, "particles\t%d\n", mask.Count(d.NumParticles()))
	fmt.Fprintf(tw, "number concentration\t%g\n", unit.New(n, pmcpost.PerMeter3))
	fmt.Fprintf(tw, "%s mass concentration\t%g\n", prefix, unit.New(m, unit.KilogramPerMeter3))
	fmt.Fprintf(tw, "%s density\t%g\n", prefix, unit.New(rho, unit.KilogramPerMeter3))
	return tw.Flush()
}

// Diameter writes to w the diameter and number concentration of each
// particle in file, excluding water from the diameter if dry is true.
// If plotFile is not empty, a histogram of the diameters with the
// given number of bins is saved to it in PNG format.
func Diameter(w io.Writer, file string, dry bool, plotFile string, bins int) error {
	d, err := pmcpost.Open(file)
	if err != nil {
		return err
	}
	diam := d.ParticleDiameter(dry)
	numConc := d.NumConc()

	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintln(tw, "particle\tdiameter (m)\tnumber concentration (m-3)")
	for i, v := range diam {
		fmt.Fprintf(tw, "%d\t%g\t%g\n", i, v, numConc[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if plotFile == "" {
		return nil
	}
	f, err := os.Create(plotFile)
	if err != nil {
		return fmt.Errorf("pmcpost: creating plot file: %v", err)
	}
	if err := diameterHistogram(f, diam, numConc, bins, filepath.Base(file)); err != nil {
		f.Close()
		return err
	}
	Log.WithField("file", plotFile).Info("saved diameter histogram")
	return f.Close()
}

// Gas writes to w the mixing ratios of the given gas species in file.
// All gas species are written if none are specified.
func Gas(w io.Writer, file string, species []string) error {
	d, err := pmcpost.Open(file)
	if err != nil {
		return err
	}
	g, err := d.GasMixingRatio(species...)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintf(tw, "species\tindex\tmixing ratio (%s)\n", g.Units)
	for i, n := range g.Names {
		fmt.Fprintf(tw, "%s\t%d\t%g\n", n, g.Indices[i], g.Values[i])
	}
	return tw.Flush()
}

// Series summarizes every file matching pattern and writes the resulting
// table to w. If xlsxFile is not empty, the table is also saved to it as
// an Excel workbook.
func Series(w io.Writer, pattern string, sel pmcpost.SpeciesSelection, maskFunc pmcpost.MaskFunc, xlsxFile string) error {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("pmcpost: invalid file pattern: %v", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("pmcpost: no files match %s", pattern)
	}
	Log.WithFields(logrus.Fields{
		"files":   len(files),
		"species": sel,
	}).Info("processing time series")

	msgChan, closeChan := logChan()
	s, err := pmcpost.ProcessSeries(files, sel, maskFunc, msgChan)
	closeChan()
	if err != nil {
		return err
	}
	for _, r := range s {
		Log.WithFields(logrus.Fields{
			"file": filepath.Base(r.File),
			"time": r.Env.Time,
			"chi":  r.Diversity.Chi,
		}).Debug("summarized output file")
	}

	if err := s.WriteTable(w); err != nil {
		return err
	}
	if xlsxFile == "" {
		return nil
	}
	f, err := os.Create(xlsxFile)
	if err != nil {
		return fmt.Errorf("pmcpost: creating xlsx file: %v", err)
	}
	if err := s.WriteXLSX(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Subset writes the particles in inFile selected by maskFunc to outFile,
// leaving out the species in drop.
func Subset(inFile, outFile string, maskFunc pmcpost.MaskFunc, drop []string) error {
	d, mask, err := openMasked(inFile, maskFunc)
	if err != nil {
		return err
	}
	s, err := d.Subset(mask, drop...)
	if err != nil {
		return err
	}
	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("pmcpost: creating output file: %v", err)
	}
	if err := s.Write(f); err != nil {
		f.Close()
		return err
	}
	Log.WithFields(logrus.Fields{
		"file":      outFile,
		"particles": s.NumParticles(),
		"species":   s.Aero.String(),
	}).Info("saved particle subset")
	return f.Close()
}
