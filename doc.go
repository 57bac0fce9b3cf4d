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

// Package pmcpost post-processes output from the PartMC
// particle-resolved aerosol model. It loads particle populations
// from PartMC netCDF output files and calculates population
// statistics: number and mass concentrations, particle volumes,
// diameters and densities, and the mixing state index of
// Riemer and West (2013).
package pmcpost

// Version is the version of this package.
const Version = "0.1.0"
