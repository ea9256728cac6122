package partsync

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/errors"
)

// Pair is a library file and the CSV file it is reconciled with.
type Pair struct {
	Name    string `json:"name" yaml:"name"`
	Library string `json:"library" yaml:"library"`
	CSV     string `json:"csv" yaml:"csv"`
}

// baseName strips directories and everything from the first dot.
func baseName(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// PairFolders walks libFolder for .lib files and pairs each with the .csv
// of the same base name under csvFolder. A library without a CSV is paired
// with <csvFolder>/<base>.csv.
func PairFolders(libFolder, csvFolder string) ([]Pair, error) {
	libs, err := findFiles(libFolder, constants.LibraryExt)
	if err != nil {
		return nil, err
	}
	var csvs []string
	if _, statErr := os.Stat(csvFolder); statErr == nil {
		if csvs, err = findFiles(csvFolder, constants.CSVExt); err != nil {
			return nil, err
		}
	}

	byBase := make(map[string]string, len(csvs))
	for _, c := range csvs {
		if _, ok := byBase[baseName(c)]; !ok {
			byBase[baseName(c)] = c
		}
	}

	pairs := make([]Pair, 0, len(libs))
	for _, lib := range libs {
		name := baseName(lib)
		csv, ok := byBase[name]
		if !ok {
			csv = filepath.Join(csvFolder, name+constants.CSVExt)
		}
		pairs = append(pairs, Pair{Name: name, Library: lib, CSV: csv})
	}
	return pairs, nil
}

// ExplicitPair builds a single pair from file names, resolving relative
// names against their folders.
func ExplicitPair(libFolder, csvFolder, lib, csv string) Pair {
	if !filepath.IsAbs(lib) && filepath.Dir(lib) == "." {
		lib = filepath.Join(libFolder, lib)
	}
	if !filepath.IsAbs(csv) && filepath.Dir(csv) == "." {
		csv = filepath.Join(csvFolder, csv)
	}
	return Pair{Name: baseName(lib), Library: lib, CSV: csv}
}

// findFiles returns every regular file under root with extension ext, in
// lexical order.
func findFiles(root, ext string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, errors.WrapIO("read", root, err)
	}

	var found []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsRegular() && filepath.Ext(osPathname) == ext {
				found = append(found, osPathname)
			}
			return nil
		},
		FollowSymbolicLinks: true,
	})
	if err != nil {
		return nil, errors.WrapIO("walk", root, err)
	}
	return found, nil
}
