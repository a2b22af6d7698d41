package edep

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Self length above which a particle is assumed to be reconstructed as a
// track. Shorter ones are only seen as charge blips.
const TrackLengthCut = 2.0 // cm

type Summarizer struct {
	light LightTables
	src   rand.Source
	// Optional per-run histograms, filled for every summarized event
	Diagnostics *Diagnostics
}

// NewSummarizer returns a summarizer with its own random stream. The same
// seed and the same sequence of events give the same output.
func NewSummarizer(seed uint64, tables LightTables) *Summarizer {
	return NewSummarizerWithSource(rand.NewPCG(seed, seed+1), tables)
}

func NewSummarizerWithSource(src rand.Source, tables LightTables) *Summarizer {
	return &Summarizer{light: tables, src: src}
}

func (s *Summarizer) LightTables() LightTables {
	return s.light
}

func (s *Summarizer) Response() Response {
	return Response{Light: s.light, Src: s.src}
}

// BuildForest builds the genealogy of the event and attributes all its
// deposits. Domain errors of single deposits are counted, not returned.
func (s *Summarizer) BuildForest(event *EventType) (*Forest, error) {
	forest, err := Build(event.Trajectories, s.Response())
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", event.EventID, err)
	}

	nSkipped := 0
	var firstErr error
	for i, deposit := range event.Deposits {
		err := forest.AttributeDeposit(i, deposit)
		if err == nil {
			continue
		}
		var domainErr *DomainError
		if !errors.As(err, &domainErr) {
			return nil, fmt.Errorf("event %d, deposit %d: %w", event.EventID, i, err)
		}
		if firstErr == nil {
			firstErr = err
		}
		nSkipped++
	}
	if nSkipped > 0 {
		message := fmt.Sprintf("event %d: %d deposits without charge/light conversion, first: %v",
			event.EventID, nSkipped, firstErr)
		logger.Warn(message, "forest")
	}
	return forest, nil
}

// Summarize computes the summary of one event. Events without exactly one
// primary vertex give a zeroed summary flagged as Skipped. Errors are
// malformed input (bad track indices, cyclic genealogy).
func (s *Summarizer) Summarize(event *EventType) (EventSummary, error) {
	summary := NewEventSummary(event.EventID, s.light)
	if len(event.Vertices) != 1 {
		message := fmt.Sprintf("event %d: number of primaries not equal to 1 (%d), not a neutrino vertex",
			event.EventID, len(event.Vertices))
		logger.Warn(message, "summarizer")
		summary.Skipped = true
		return summary, nil
	}
	vertex := &event.Vertices[0]

	summary.NuPDG = event.Generator.NuPDG
	summary.ENu = event.Generator.ENu
	summary.NuXS = vertex.CrossSection
	summary.NuProc, summary.NuNucl = ParseReaction(vertex.Reaction)

	forest, err := s.BuildForest(event)
	if err != nil {
		return summary, err
	}

	for i := range vertex.Particles {
		particle := &vertex.Particles[i]
		if particle.TrackID < 0 {
			continue
		}
		node, err := forest.Node(particle.TrackID)
		if err != nil {
			return summary, fmt.Errorf("event %d, vertex particle %d: %w", event.EventID, i, err)
		}
		s.addParticle(&summary, forest, node, particle)
	}

	if s.Diagnostics != nil {
		s.Diagnostics.Fill(event, forest)
	}
	return summary, nil
}

func (s *Summarizer) addParticle(summary *EventSummary, forest *Forest, node *Node, particle *VertexParticle) {
	category := Classify(particle.PDG)
	mass := particle.Mass()
	kineticEnergy := particle.KineticEnergy()

	depoE := SumEnergy(forest, node.TrackID)
	var charges [NumChargeModels]ChargeSums
	for _, model := range ChargeModels {
		charges[model] = SumCharge(forest, node.TrackID, model)
	}

	// Only the particle's own length decides whether it is a track. A
	// track takes its whole subtree energy, a blip only its own charge.
	var depoETrack, depoQDots float64
	if node.Self.Length > TrackLengthCut {
		depoETrack = depoE
	} else {
		depoQDots = node.Self.Charge[BirksLaw].Thresholded[DotsThreshold]
	}

	summary.EAvail.add(category, AvailableEnergy(category, kineticEnergy, mass))
	summary.EDepo.add(category, depoE)
	summary.EDepoTrack.add(category, depoETrack)
	summary.QDepoDots.add(category, depoQDots)
	for _, model := range ChargeModels {
		summary.Charge[model].add(category, charges[model])
		light := SumLight(forest, node.TrackID, model)
		for k := range summary.Light[model] {
			summary.Light[model][k].add(category, light[k])
		}
	}
	summary.NPar[category]++
}
