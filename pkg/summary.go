package edep

// Quantity is an event total together with its split by category.
type Quantity struct {
	Total float64
	List  CategoryVector
}

func (q *Quantity) add(c Category, value float64) {
	q.Total += value
	q.List[c] += value
}

type ChargeQuantity struct {
	Total       Quantity
	Thresholded [NumThresholds]Quantity
}

func (q *ChargeQuantity) add(c Category, sums ChargeSums) {
	q.Total.add(c, sums.Total)
	for i := range q.Thresholded {
		q.Thresholded[i].add(c, sums.Thresholded[i])
	}
}

type LightQuantity struct {
	Name string
	Quantity
}

type EventSummary struct {
	EventID int
	// Set when the event could not be summarized (e.g. wrong number of vertices)
	Skipped bool

	NuPDG  int
	ENu    float64
	NuXS   float64
	NuProc int
	NuNucl int

	EAvail     Quantity
	EDepo      Quantity
	EDepoTrack Quantity
	// Low threshold charge of short tracks (blips)
	QDepoDots Quantity
	Charge    [NumChargeModels]ChargeQuantity
	Light     [NumChargeModels][]LightQuantity
	NPar      CategoryVector
}

// NewEventSummary returns a zeroed summary with the light columns of tables.
func NewEventSummary(eventID int, tables LightTables) EventSummary {
	summary := EventSummary{EventID: eventID}
	for m := range tables {
		summary.Light[m] = make([]LightQuantity, len(tables[m]))
		for k, op := range tables[m] {
			summary.Light[m][k].Name = op.Name
		}
	}
	return summary
}

type Column struct {
	Name  string
	Value float64
	// nil for scalar columns
	List []float64
}

func (c Column) IsList() bool {
	return c.List != nil
}

func scalar(name string, value float64) Column {
	return Column{Name: name, Value: value}
}

func list(name string, v CategoryVector) Column {
	values := make([]float64, NumCategories)
	copy(values, v[:])
	return Column{Name: name, Value: v.Sum(), List: values}
}

// Columns flattens the summary into the named output fields. Names and
// order are stable for a given set of light operating points.
func (s *EventSummary) Columns() []Column {
	columns := []Column{
		scalar("Event_ID", float64(s.EventID)),
		scalar("E_nu", s.ENu),
		scalar("E_avail", s.EAvail.Total),
		scalar("E_depoTotal", s.EDepo.Total),
		scalar("E_depoTotal_track", s.EDepoTrack.Total),
		scalar("Q_depoTotal_dots_"+ChargeThresholds[DotsThreshold].Name, s.QDepoDots.Total),
	}
	for m, model := range ChargeModels {
		columns = append(columns, scalar("Q_depoTotal"+model.Suffix(), s.Charge[m].Total.Total))
		for i, th := range ChargeThresholds {
			columns = append(columns, scalar("Q_depoTotal"+model.Suffix()+"_"+th.Name, s.Charge[m].Thresholded[i].Total))
		}
	}
	for m, model := range ChargeModels {
		for _, light := range s.Light[m] {
			columns = append(columns, scalar("L_depoTotal"+model.Suffix()+"_avg_"+light.Name, light.Total))
		}
	}

	columns = append(columns,
		list("E_availList", s.EAvail.List),
		list("E_depoList", s.EDepo.List),
		list("E_depoList_track", s.EDepoTrack.List),
	)
	for m, model := range ChargeModels {
		columns = append(columns, list("Q_depoList"+model.Suffix(), s.Charge[m].Total.List))
		for i, th := range ChargeThresholds {
			columns = append(columns, list("Q_depoList"+model.Suffix()+"_"+th.Name, s.Charge[m].Thresholded[i].List))
		}
		if model == BirksLaw {
			columns = append(columns, list("Q_depoList_dots_"+ChargeThresholds[DotsThreshold].Name, s.QDepoDots.List))
		}
	}
	for m, model := range ChargeModels {
		for _, light := range s.Light[m] {
			columns = append(columns, list("L_depoList"+model.Suffix()+"_avg_"+light.Name, light.List))
		}
	}

	columns = append(columns,
		list("N_parList", s.NPar),
		scalar("nu_pdg", float64(s.NuPDG)),
		scalar("nu_xs", s.NuXS),
		scalar("nu_proc", float64(s.NuProc)),
		scalar("nu_nucl", float64(s.NuNucl)),
	)
	return columns
}

// Column returns the named field, false when the summary has no such field.
func (s *EventSummary) Column(name string) (Column, bool) {
	for _, c := range s.Columns() {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
