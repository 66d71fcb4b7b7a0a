// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package verutil

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Resolve takes a store's version list plus version specs and returns the
// versions that match. The list is expected in descending creation order,
// which effectively makes it most recent first. A spec can be -
//
//	empty    - the latest version.
//	latest~N - the Nth version back from latest ("~N" works too).
//	number   - same as ~N, counted back from latest.
//	file     - a local snapshot file to read directly.
//	id       - the first version whose ID has that prefix.
func Resolve(versions []*Version, specs ...string) ([]*Version, error) {
	var result = []*Version{}

	// Short circuit if no spec was provided and return the most recent.
	if len(specs) == 0 {
		specs = []string{"latest"}
	}

	// Process each spec and resolve to a Version.
	for _, spec := range specs {
		v, err := resolveSpec(spec, versions)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}

	return result, nil
}

// resolveSpec takes a single spec string and returns the matching Version.
func resolveSpec(spec string, versions []*Version) (*Version, error) {
	switch {
	case spec == "" || strings.EqualFold(spec, "latest"):
		return resolveRelativeSpec("~0", versions)

	case strings.HasPrefix(strings.ToLower(spec), "latest~"):
		return resolveRelativeSpec(spec[len("latest"):], versions)

	case strings.HasPrefix(spec, "~"):
		return resolveRelativeSpec(spec, versions)

	case isNumeric(spec):
		return resolveNumericSpec(spec, versions)

	case isFilePath(spec):
		return resolveFileSpec(spec)

	default:
		return resolveIDSpec(spec, versions)
	}
}

// resolveRelativeSpec handles ~N format specs.
func resolveRelativeSpec(spec string, versions []*Version) (*Version, error) {
	index, err := strconv.Atoi(strings.TrimPrefix(spec, "~"))
	if err != nil {
		return nil, fmt.Errorf("invalid version index: %s", spec)
	}

	if index < 0 || index > len(versions)-1 {
		return nil, fmt.Errorf("index %d out of range for versions of length %d", index, len(versions))
	}

	return versions[index], nil
}

// resolveNumericSpec handles bare numeric specs. There is no serial numbering
// for snapshots, so a number counts back from latest the same way ~N does.
// Negative values are accepted for symmetry with shell history syntax.
func resolveNumericSpec(spec string, versions []*Version) (*Version, error) {
	i, _ := strconv.Atoi(spec)

	if i < 0 {
		i = -i
	}
	if i > len(versions)-1 {
		return nil, fmt.Errorf("index %d out of range for versions of length %d", i, len(versions))
	}

	return versions[i], nil
}

// resolveFileSpec handles file path specs.
func resolveFileSpec(spec string) (*Version, error) {
	info, err := os.Stat(spec)
	if err != nil {
		return nil, err
	}

	return &Version{
		ID:        spec,
		CreatedAt: info.ModTime(),
		Size:      info.Size(),
		Source:    spec,
	}, nil
}

// resolveIDSpec handles version ID prefix specs.
func resolveIDSpec(spec string, versions []*Version) (*Version, error) {
	for _, v := range versions {
		if strings.HasPrefix(v.ID, spec) {
			return v, nil
		}
	}

	return nil, fmt.Errorf("failed to find snapshot version with ID prefix: %s", spec)
}

// isNumeric checks if a string is a numeric value.
func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// isFilePath checks if a string is a valid file path.
func isFilePath(s string) bool {
	_, err := os.Stat(s)
	return err == nil && !os.IsNotExist(err)
}
