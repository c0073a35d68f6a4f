package internal

import (
	"iter"
)

// Predicate is a caller-supplied boolean test over a single record.
// Predicates run unprotected: a panicking predicate propagates to whoever is
// consuming the sequence, it is never swallowed by the pipeline.
type Predicate func(FlightRecord) bool

// Stage transforms a lazy record sequence into another. A stage may drop
// records but must neither reorder nor duplicate them.
type Stage func(iter.Seq[FlightRecord]) iter.Seq[FlightRecord]

// FilterByRadius keeps records whose position lies within radiusMeters of
// center. Records missing either coordinate are dropped.
func FilterByRadius(flights iter.Seq[FlightRecord], center Coordinates, radiusMeters float64) iter.Seq[FlightRecord] {
	return func(yield func(FlightRecord) bool) {
		for rec := range flights {
			pos, ok := rec.Position()
			if !ok {
				continue
			}

			if Distance(center, pos).Meters() <= radiusMeters {
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// FilterByAltitude keeps records whose altitude falls within the inclusive
// [minAlt, maxAlt] range; a nil bound is open. Records without an altitude
// are dropped, never passed through as "unknown".
func FilterByAltitude(flights iter.Seq[FlightRecord], minAlt, maxAlt *float64) iter.Seq[FlightRecord] {
	return func(yield func(FlightRecord) bool) {
		for rec := range flights {
			if rec.Altitude == nil {
				continue
			}

			if minAlt != nil && *rec.Altitude < *minAlt {
				continue
			}

			if maxAlt != nil && *rec.Altitude > *maxAlt {
				continue
			}

			if !yield(rec) {
				return
			}
		}
	}
}

// FilterBy keeps records matching the given predicate.
func FilterBy(flights iter.Seq[FlightRecord], pred Predicate) iter.Seq[FlightRecord] {
	return func(yield func(FlightRecord) bool) {
		for rec := range flights {
			if pred(rec) {
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// Pipeline is an ordered chain of filter stages. Stages are applied in the
// order they were added; each stage narrows the sequence produced by the one
// before it. An empty pipeline is the identity transform.
//
// The stage list must not be mutated while a sequence returned by Apply is
// being consumed.
type Pipeline struct {
	stages []Stage
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{stages: nil}
}

// WithinRadius appends a radius stage centered on the given coordinates.
func (p *Pipeline) WithinRadius(center Coordinates, radiusMeters float64) *Pipeline {
	p.stages = append(p.stages, func(flights iter.Seq[FlightRecord]) iter.Seq[FlightRecord] {
		return FilterByRadius(flights, center, radiusMeters)
	})

	return p
}

// AltitudeBetween appends an altitude stage with both bounds, inclusive.
func (p *Pipeline) AltitudeBetween(minAlt, maxAlt float64) *Pipeline {
	return p.altitudeRange(&minAlt, &maxAlt)
}

// AltitudeAbove appends an altitude stage with only a lower bound.
func (p *Pipeline) AltitudeAbove(minAlt float64) *Pipeline {
	return p.altitudeRange(&minAlt, nil)
}

// AltitudeBelow appends an altitude stage with only an upper bound.
func (p *Pipeline) AltitudeBelow(maxAlt float64) *Pipeline {
	return p.altitudeRange(nil, &maxAlt)
}

func (p *Pipeline) altitudeRange(minAlt, maxAlt *float64) *Pipeline {
	p.stages = append(p.stages, func(flights iter.Seq[FlightRecord]) iter.Seq[FlightRecord] {
		return FilterByAltitude(flights, minAlt, maxAlt)
	})

	return p
}

// Where appends a custom predicate stage.
func (p *Pipeline) Where(pred Predicate) *Pipeline {
	p.stages = append(p.stages, func(flights iter.Seq[FlightRecord]) iter.Seq[FlightRecord] {
		return FilterBy(flights, pred)
	})

	return p
}

// Clear removes all stages, resetting the pipeline to the identity
// transform.
func (p *Pipeline) Clear() *Pipeline {
	p.stages = nil

	return p
}

// Len returns the number of stages currently in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Apply composes all stages over the given sequence. Nothing is evaluated
// until the returned sequence is pulled from: each stage requests the next
// record from its upstream only when its own downstream asks for one, and no
// stage buffers the batch. The pipeline holds no per-run state, so Apply may
// be called once per fresh fetch without records leaking between runs.
func (p *Pipeline) Apply(flights iter.Seq[FlightRecord]) iter.Seq[FlightRecord] {
	for _, stage := range p.stages {
		flights = stage(flights)
	}

	return flights
}
