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
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/pmcpost"
	"github.com/spf13/cast"
)

// Selection returns the aerosol species selection specified by the
// groupfile, groups, and drop configuration variables, in that order of
// precedence. If none of them are set, all species are selected.
func Selection(cfg *viper.Viper) (pmcpost.SpeciesSelection, error) {
	if f := cfg.GetString("groupfile"); f != "" {
		g, err := pmcpost.ReadGroupsFile(os.ExpandEnv(f))
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	g, err := toGroupsE(cfg.Get("groups"))
	if err != nil {
		return nil, fmt.Errorf("pmcpost: reading 'groups': %v", err)
	}
	if g != nil {
		return g, nil
	}
	drop, err := toStringSliceE(cfg.Get("drop"))
	if err != nil {
		return nil, fmt.Errorf("pmcpost: reading 'drop': %v", err)
	}
	if len(drop) > 0 {
		return pmcpost.DropSpecies(drop), nil
	}
	return pmcpost.AllSpecies{}, nil
}

// DiameterMask returns a function selecting particles in the diameter
// range specified by the mindiameter and maxdiameter configuration
// variables, or nil if neither is set.
func DiameterMask(cfg *viper.Viper) pmcpost.MaskFunc {
	min, max := cfg.GetFloat64("mindiameter"), cfg.GetFloat64("maxdiameter")
	if min <= 0 && max <= 0 {
		return nil
	}
	if max <= 0 {
		max = math.Inf(1)
	}
	dry := cfg.GetBool("dry")
	return func(d *pmcpost.Dataset) (pmcpost.Mask, error) {
		return d.DiameterRange(dry, min, max), nil
	}
}

// toStringSliceE converts a configuration value to a slice of strings,
// splitting single strings on commas and expanding any environment
// variables.
func toStringSliceE(v interface{}) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	var o []string
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		o = strings.Split(strings.Trim(s, "[]"), ",")
	} else {
		var err error
		if o, err = cast.ToStringSliceE(v); err != nil {
			return nil, err
		}
	}
	var r []string
	for _, s := range o {
		if s = strings.TrimSpace(os.ExpandEnv(s)); s != "" {
			r = append(r, s)
		}
	}
	return r, nil
}

// toGroupsE converts a configuration value to species groups. The value
// may be a list of lists from a configuration file or a JSON string if it
// was set from a command line argument. A nil result means that no groups
// were specified.
func toGroupsE(v interface{}) (pmcpost.GroupedSpecies, error) {
	switch g := v.(type) {
	case nil:
		return nil, nil
	case pmcpost.GroupedSpecies:
		return g, nil
	case [][]string:
		return pmcpost.GroupedSpecies(g), nil
	case []interface{}:
		if len(g) == 0 {
			return nil, nil
		}
		o := make(pmcpost.GroupedSpecies, len(g))
		for i, grp := range g {
			s, err := cast.ToStringSliceE(grp)
			if err != nil {
				return nil, fmt.Errorf("group %d: %v", i, err)
			}
			o[i] = s
		}
		return o, nil
	case string:
		if strings.TrimSpace(g) == "" {
			return nil, nil
		}
		var o pmcpost.GroupedSpecies
		if err := json.Unmarshal([]byte(g), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("invalid type %T", v)
	}
}
