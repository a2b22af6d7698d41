package h5

import (
	"errors"
	"fmt"

	"gonum.org/v1/hdf5"

	edep "github.com/lartpc/edep_go/pkg"
)

// Writer stores event summaries. Scalar columns go to a 2d array
// (events x columns) and category lists to a 3d one (events x lists x
// categories); the column names are written once, with the first event.
type Writer struct {
	File                 *hdf5.File
	Filename             string
	FirstEvt             bool
	Compression          int
	RunGroup             *hdf5.Group
	SummaryGroup         *hdf5.Group
	RunInfoTable         *hdf5.Dataset
	OperatingPointsTable *hdf5.Dataset
	EventTable           *hdf5.Dataset
	ScalarNamesTable     *hdf5.Dataset
	ListNamesTable       *hdf5.Dataset
	Scalars              *hdf5.Dataset
	Lists                *hdf5.Dataset
	EvtCounter           int
	nScalars             int
	nLists               int
}

const nCategories = int(edep.NumCategories)

func NewWriter(filename string, run edep.RunInfo, compression int) (*Writer, error) {
	var err error
	writer := &Writer{Filename: filename, Compression: compression}
	if writer.File, err = createFile(filename); err != nil {
		return nil, err
	}
	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.SummaryGroup, err = createGroup(writer.File, "Summary"); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.RunInfoTable, err = createTable(writer.RunGroup, "runInfo", runInfoHDF5{}, compression); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.OperatingPointsTable, err = createTable(writer.RunGroup, "operating_points", operatingPointHDF5{}, compression); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.EventTable, err = createTable(writer.SummaryGroup, "events", summaryEventHDF5{}, compression); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.ScalarNamesTable, err = createTable(writer.SummaryGroup, "scalar_names", columnNameHDF5{}, compression); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.ListNamesTable, err = createTable(writer.SummaryGroup, "list_names", columnNameHDF5{}, compression); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if err := writer.writeRunInfo(run); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	return writer, nil
}

func (w *Writer) writeRunInfo(run edep.RunInfo) error {
	info := runInfoHDF5{
		run_id:     convertToHdf5String(run.RunID.String()),
		run_number: int32(run.RunNumber),
		generator:  convertToHdf5String(string(run.Generator)),
		seed:       run.Seed,
	}
	if err := writeEntryToTable(w.RunInfoTable, info, 0); err != nil {
		return fmt.Errorf("error writing run info: %w", err)
	}

	points := make([]operatingPointHDF5, 0)
	for _, model := range edep.ChargeModels {
		for _, op := range run.Light[model] {
			points = append(points, operatingPointHDF5{
				model: convertToHdf5String(model.String()),
				name:  convertToHdf5String(op.Name),
				pce:   op.PCE,
			})
		}
	}
	if err := writeArrayToTable(w.OperatingPointsTable, &points, 0); err != nil {
		return fmt.Errorf("error writing operating points: %w", err)
	}
	return nil
}

func splitColumns(columns []edep.Column) (scalars, lists []edep.Column) {
	for _, c := range columns {
		if c.IsList() {
			lists = append(lists, c)
		} else {
			scalars = append(scalars, c)
		}
	}
	return scalars, lists
}

func (w *Writer) WriteSummary(summary *edep.EventSummary) error {
	scalars, lists := splitColumns(summary.Columns())

	if !w.FirstEvt {
		if err := w.createSummaryArrays(scalars, lists); err != nil {
			return err
		}
		w.FirstEvt = true
	}
	if len(scalars) != w.nScalars || len(lists) != w.nLists {
		return fmt.Errorf("event %d: summary has %d scalars and %d lists, file has %d and %d",
			summary.EventID, len(scalars), len(lists), w.nScalars, w.nLists)
	}

	skipped := int32(0)
	if summary.Skipped {
		skipped = 1
	}
	entry := summaryEventHDF5{event_id: int32(summary.EventID), skipped: skipped}
	if err := writeEntryToTable(w.EventTable, entry, w.EvtCounter); err != nil {
		return fmt.Errorf("error writing event %d: %w", summary.EventID, err)
	}

	scalarData := make([]float64, w.nScalars)
	for i, c := range scalars {
		scalarData[i] = c.Value
	}
	if err := writeRow(w.Scalars, &scalarData, w.EvtCounter, uint(w.nScalars)); err != nil {
		return fmt.Errorf("error writing scalars of event %d: %w", summary.EventID, err)
	}

	listData := make([]float64, w.nLists*nCategories)
	for i, c := range lists {
		copy(listData[i*nCategories:], c.List)
	}
	if err := writeRow(w.Lists, &listData, w.EvtCounter, uint(w.nLists), uint(nCategories)); err != nil {
		return fmt.Errorf("error writing lists of event %d: %w", summary.EventID, err)
	}

	w.EvtCounter++
	return nil
}

func (w *Writer) createSummaryArrays(scalars, lists []edep.Column) error {
	var err error
	w.nScalars = len(scalars)
	w.nLists = len(lists)

	names := make([]columnNameHDF5, len(scalars))
	for i, c := range scalars {
		names[i] = columnNameHDF5{name: convertToHdf5String(c.Name)}
	}
	if err := writeArrayToTable(w.ScalarNamesTable, &names, 0); err != nil {
		return fmt.Errorf("error writing scalar names: %w", err)
	}
	names = make([]columnNameHDF5, len(lists))
	for i, c := range lists {
		names[i] = columnNameHDF5{name: convertToHdf5String(c.Name)}
	}
	if err := writeArrayToTable(w.ListNamesTable, &names, 0); err != nil {
		return fmt.Errorf("error writing list names: %w", err)
	}

	if w.Scalars, err = create2dArray(w.SummaryGroup, "scalars", w.nScalars, w.Compression); err != nil {
		return err
	}
	if w.Lists, err = create3dArray(w.SummaryGroup, "lists", w.nLists, nCategories, w.Compression); err != nil {
		return err
	}
	return nil
}

func (w *Writer) Close() error {
	var errs []error
	closeDataset := func(dset *hdf5.Dataset, what string) {
		if dset == nil {
			return
		}
		if err := dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", what, err))
		}
	}
	closeGroup := func(group *hdf5.Group, what string) {
		if group == nil {
			return
		}
		if err := group.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", what, err))
		}
	}

	closeDataset(w.RunInfoTable, "run info table")
	closeDataset(w.OperatingPointsTable, "operating points table")
	closeDataset(w.EventTable, "event table")
	closeDataset(w.ScalarNamesTable, "scalar names table")
	closeDataset(w.ListNamesTable, "list names table")
	closeDataset(w.Scalars, "scalar columns")
	closeDataset(w.Lists, "list columns")
	closeGroup(w.RunGroup, "run group")
	closeGroup(w.SummaryGroup, "summary group")
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}
	return errors.Join(errs...)
}
