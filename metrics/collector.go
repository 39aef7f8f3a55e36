package metrics

import (
	"sync/atomic"
	"time"
)

// SubstrateMetric summarizes change stack and update pass activity.
type SubstrateMetric struct {
	Closes            int
	EmptyCloses       int
	Undos             int
	Redos             int
	Rollbacks         int
	UpdatePasses      int
	ModelsRecomputed  int
	ObserversNotified int
	UpdateDuration    time.Duration
}

type Collector interface {
	AddClose(empty bool)
	AddUndo()
	AddRedo()
	AddRollback()
	AddUpdatePass(models, observers int, duration time.Duration)
	Complete() SubstrateMetric
}

type collector struct {
	closes            atomic.Int32
	emptyCloses       atomic.Int32
	undos             atomic.Int32
	redos             atomic.Int32
	rollbacks         atomic.Int32
	updatePasses      atomic.Int32
	modelsRecomputed  atomic.Int64
	observersNotified atomic.Int64
	updateNanos       atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) AddClose(empty bool) {
	m.closes.Add(1)
	if empty {
		m.emptyCloses.Add(1)
	}
}

func (m *collector) AddUndo() {
	m.undos.Add(1)
}

func (m *collector) AddRedo() {
	m.redos.Add(1)
}

func (m *collector) AddRollback() {
	m.rollbacks.Add(1)
}

func (m *collector) AddUpdatePass(models, observers int, duration time.Duration) {
	m.updatePasses.Add(1)
	m.modelsRecomputed.Add(int64(models))
	m.observersNotified.Add(int64(observers))
	m.updateNanos.Add(int64(duration))
}

func (m *collector) Complete() SubstrateMetric {
	return SubstrateMetric{
		Closes:            int(m.closes.Load()),
		EmptyCloses:       int(m.emptyCloses.Load()),
		Undos:             int(m.undos.Load()),
		Redos:             int(m.redos.Load()),
		Rollbacks:         int(m.rollbacks.Load()),
		UpdatePasses:      int(m.updatePasses.Load()),
		ModelsRecomputed:  int(m.modelsRecomputed.Load()),
		ObserversNotified: int(m.observersNotified.Load()),
		UpdateDuration:    time.Duration(m.updateNanos.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) AddClose(empty bool)                                         {}
func (m *dummyCollector) AddUndo()                                                    {}
func (m *dummyCollector) AddRedo()                                                    {}
func (m *dummyCollector) AddRollback()                                                {}
func (m *dummyCollector) AddUpdatePass(models, observers int, duration time.Duration) {}
func (m *dummyCollector) Complete() SubstrateMetric                                   { return SubstrateMetric{} }
