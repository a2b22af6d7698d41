package edep

type Accumulators struct {
	Energy float64 // MeV
	Length float64 // cm
	Charge [NumChargeModels]ChargeSums
	// Detected light energy per charge model and operating point
	Light [NumChargeModels][]float64
}

type ChargeSums struct {
	Total       float64
	Thresholded [NumThresholds]float64
}

func (c ChargeSums) Add(o ChargeSums) ChargeSums {
	c.Total += o.Total
	for i := range c.Thresholded {
		c.Thresholded[i] += o.Thresholded[i]
	}
	return c
}

func (c *ChargeSums) accumulate(charge float64) {
	c.Total += charge
	for i, th := range ChargeThresholds {
		if charge > th.Value {
			c.Thresholded[i] += charge
		}
	}
}

type Node struct {
	Trajectory
	Children []int
	// Root of the parent chain (itself for primaries)
	Ancestor int
	Deposits []int
	Self     Accumulators
}

// Forest is the per-event genealogy of trajectories, stored as an arena
// addressed by track id.
type Forest struct {
	Nodes    []Node
	response Response
}

func Build(trajectories []Trajectory, response Response) (*Forest, error) {
	n := len(trajectories)
	f := &Forest{
		Nodes:    make([]Node, n),
		response: response,
	}
	for i, trajectory := range trajectories {
		node := &f.Nodes[i]
		node.Trajectory = trajectory
		// The position in the list is the identity
		node.TrackID = i
		node.Ancestor = i
		for m := range node.Self.Light {
			node.Self.Light[m] = make([]float64, len(response.Light[m]))
		}
	}

	for i := range f.Nodes {
		parentID := f.Nodes[i].ParentID
		if parentID == -1 {
			continue
		}
		if parentID < 0 || parentID >= n {
			return nil, &TrackIndexError{What: "parent", Index: parentID, NTracks: n}
		}
		f.Nodes[parentID].Children = append(f.Nodes[parentID].Children, i)

		// A chain longer than the number of tracks has to loop
		steps := 0
		for parentID != -1 {
			if parentID < 0 || parentID >= n {
				return nil, &TrackIndexError{What: "parent", Index: parentID, NTracks: n}
			}
			if steps >= n {
				return nil, &CycleError{TrackID: i}
			}
			f.Nodes[i].Ancestor = parentID
			parentID = f.Nodes[parentID].ParentID
			steps++
		}
	}
	return f, nil
}

func (f *Forest) Len() int {
	return len(f.Nodes)
}

func (f *Forest) Node(trackID int) (*Node, error) {
	if trackID < 0 || trackID >= len(f.Nodes) {
		return nil, &TrackIndexError{What: "track", Index: trackID, NTracks: len(f.Nodes)}
	}
	return &f.Nodes[trackID], nil
}

func (f *Forest) Roots() []int {
	roots := make([]int, 0)
	for i := range f.Nodes {
		if f.Nodes[i].ParentID == -1 {
			roots = append(roots, i)
		}
	}
	return roots
}

// AttributeDeposit adds deposit number index to its trajectory. A
// *DomainError means energy and length were counted but the deposit did
// not contribute charge nor light for (at least) one model.
func (f *Forest) AttributeDeposit(index int, deposit Deposit) error {
	node, err := f.Node(deposit.TrackID)
	if err != nil {
		return err
	}
	length := deposit.LengthCM()
	node.Deposits = append(node.Deposits, index)
	node.Self.Energy += deposit.Energy
	node.Self.Length += length

	var domainErr error
	for _, model := range ChargeModels {
		charge, err := model.Charge(deposit.Energy, length)
		if err != nil {
			domainErr = err
			continue
		}
		node.Self.Charge[model].accumulate(charge)

		light := deposit.Energy - charge
		for k, op := range f.response.Light[model] {
			detected, err := op.Detect(light, f.response.Src)
			if err != nil {
				domainErr = err
				continue
			}
			node.Self.Light[model][k] += detected
		}
	}
	return domainErr
}
