// Package rootio writes event summaries and diagnostic histograms to ROOT
// files and reads the photon collection efficiency histograms.
package rootio

import (
	"errors"
	"fmt"
	"sort"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rbase"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
	"go-hep.org/x/hep/hbook"

	edep "github.com/lartpc/edep_go/pkg"
)

const TreeName = "Sim"

// Writer fills the Sim tree: one float64 branch per scalar column and
// one [8]float64 branch per category list.
type Writer struct {
	File       *riofs.File
	Filename   string
	Tree       rtree.Writer
	EvtCounter int

	names   []string
	scalars []float64
	lists   [][edep.NumCategories]float64
	skipped bool
}

// NewWriter creates the file and the tree. The branches are those of a
// summary with the operating points of run.Light.
func NewWriter(filename string, run edep.RunInfo) (*Writer, error) {
	f, err := groot.Create(filename)
	if err != nil {
		return nil, &edep.ErrOpenFile{Filename: filename, Err: err}
	}
	w := &Writer{File: f, Filename: filename}

	if err := w.writeRunInfo(run); err != nil {
		return nil, errors.Join(err, f.Close())
	}

	layout := edep.NewEventSummary(0, run.Light)
	columns := layout.Columns()
	nScalars := 0
	for _, c := range columns {
		if !c.IsList() {
			nScalars++
		}
	}
	w.scalars = make([]float64, nScalars)
	w.lists = make([][edep.NumCategories]float64, len(columns)-nScalars)

	wvars := make([]rtree.WriteVar, 0, len(columns)+1)
	is, il := 0, 0
	for _, c := range columns {
		w.names = append(w.names, c.Name)
		if c.IsList() {
			wvars = append(wvars, rtree.WriteVar{Name: c.Name, Value: &w.lists[il]})
			il++
		} else {
			wvars = append(wvars, rtree.WriteVar{Name: c.Name, Value: &w.scalars[is]})
			is++
		}
	}
	wvars = append(wvars, rtree.WriteVar{Name: "skipped", Value: &w.skipped})

	w.Tree, err = rtree.NewWriter(f, TreeName, wvars, rtree.WithTitle("event summaries"))
	if err != nil {
		return nil, errors.Join(&edep.ErrCreateTable{TableName: TreeName, Err: err}, f.Close())
	}
	return w, nil
}

func (w *Writer) writeRunInfo(run edep.RunInfo) error {
	entries := map[string]string{
		"run_id":     run.RunID.String(),
		"run_number": fmt.Sprint(run.RunNumber),
		"generator":  string(run.Generator),
		"seed":       fmt.Sprint(run.Seed),
		"input_file": run.InputFile,
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.File.Put(k, rbase.NewObjString(entries[k])); err != nil {
			return fmt.Errorf("error writing run info %s: %w", k, err)
		}
	}
	return nil
}

func (w *Writer) WriteSummary(summary *edep.EventSummary) error {
	columns := summary.Columns()
	if len(columns) != len(w.names) {
		return fmt.Errorf("event %d: summary has %d columns, tree has %d",
			summary.EventID, len(columns), len(w.names))
	}
	is, il := 0, 0
	for i, c := range columns {
		if c.Name != w.names[i] {
			return fmt.Errorf("event %d: column %d is %s, tree has %s", summary.EventID, i, c.Name, w.names[i])
		}
		if c.IsList() {
			copy(w.lists[il][:], c.List)
			il++
		} else {
			w.scalars[is] = c.Value
			is++
		}
	}
	w.skipped = summary.Skipped

	if _, err := w.Tree.Write(); err != nil {
		return fmt.Errorf("error filling tree for event %d: %w", summary.EventID, err)
	}
	w.EvtCounter++
	return nil
}

// WriteHistograms stores the histograms under their key.
func (w *Writer) WriteHistograms(histograms map[string]*hbook.H1D) error {
	names := make([]string, 0, len(histograms))
	for name := range histograms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.File.Put(name, rhist.NewH1DFrom(histograms[name])); err != nil {
			return fmt.Errorf("error writing histogram %s: %w", name, err)
		}
	}
	return nil
}

func (w *Writer) Close() error {
	var errs []error
	if w.Tree != nil {
		if err := w.Tree.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing tree: %w", err))
		}
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}
	return errors.Join(errs...)
}
