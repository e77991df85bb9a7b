package regfeat

import (
	"fmt"
	"image"

	"github.com/ironsheep/region-features-mcp/internal/labelmap"
)

// Analysis gathers everything needed to measure the regions of a label map:
// the label map itself, the labels to analyze, the requested features, the
// feature instances and the computed results.
//
// Results are memoized: a feature is computed at most once per Analysis and
// its result is never replaced.
type Analysis struct {
	labelMap *labelmap.LabelMap
	index    *labelmap.Index
	registry *Registry

	// requested features, in registration order
	requested []ID

	features map[ID]Feature
	results  map[ID]Result
	computed []ID

	// features whose Process call is on the stack, for cycle detection
	inProgress map[ID]bool
	stack      []ID

	unitDisplay UnitDisplay
	listeners   []Listener
	workers     int
	imageData   map[string]image.Image
}

// Option configures an Analysis.
type Option func(*Analysis)

// WithUnitDisplay sets the unit display policy used by CreateTables.
func WithUnitDisplay(u UnitDisplay) Option {
	return func(a *Analysis) { a.unitDisplay = u }
}

// WithListener registers a listener for progress and status events.
func WithListener(l Listener) Option {
	return func(a *Analysis) { a.AddListener(l) }
}

// WithWorkers sets how many goroutines features may use for a single
// computation. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(a *Analysis) { a.workers = n }
}

// New creates an analysis of the given labels of m, using reg to build
// features. The order of labels is the row order of every output table.
//
// It returns an InvalidInputError if m or reg is nil, or if labels contains
// duplicates or the background label 0.
func New(reg *Registry, m *labelmap.LabelMap, labels []int, opts ...Option) (*Analysis, error) {
	if reg == nil {
		return nil, &InvalidInputError{Reason: "nil feature registry"}
	}
	if m == nil {
		return nil, &InvalidInputError{Reason: "nil label map"}
	}
	index, err := labelmap.NewIndex(labels)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		labelMap:    m,
		index:       index,
		registry:    reg,
		features:    make(map[ID]Feature),
		results:     make(map[ID]Result),
		inProgress:  make(map[ID]bool),
		unitDisplay: UnitsNone,
		workers:     1,
		imageData:   make(map[string]image.Image),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = 1
	}
	return a, nil
}

// NewForAllLabels creates an analysis of every non-zero label present in m,
// in ascending order.
func NewForAllLabels(reg *Registry, m *labelmap.LabelMap, opts ...Option) (*Analysis, error) {
	if m == nil {
		return nil, &InvalidInputError{Reason: "nil label map"}
	}
	return New(reg, m, labelmap.FindAllLabels(m), opts...)
}

// LabelMap returns the analyzed label map.
func (a *Analysis) LabelMap() *labelmap.LabelMap { return a.labelMap }

// Labels returns a copy of the analyzed labels, in row order.
func (a *Analysis) Labels() []int { return a.index.Labels() }

// Index returns the label-to-row index.
func (a *Analysis) Index() *labelmap.Index { return a.index }

// Calibration returns the calibration of the label map.
func (a *Analysis) Calibration() labelmap.Calibration { return a.labelMap.Calibration() }

// Workers returns the number of goroutines a feature may use.
func (a *Analysis) Workers() int { return a.workers }

// UnitDisplay returns the current unit display policy.
func (a *Analysis) UnitDisplay() UnitDisplay { return a.unitDisplay }

// SetUnitDisplay changes the unit display policy.
func (a *Analysis) SetUnitDisplay(u UnitDisplay) { a.unitDisplay = u }

// SetDisplayUnitsInTable selects UnitsColumnNames when flag is true and
// UnitsNone otherwise.
func (a *Analysis) SetDisplayUnitsInTable(flag bool) {
	if flag {
		a.unitDisplay = UnitsColumnNames
	} else {
		a.unitDisplay = UnitsNone
	}
}

// AddListener registers l for progress and status events. Nil is ignored.
func (a *Analysis) AddListener(l Listener) {
	if l != nil {
		a.listeners = append(a.listeners, l)
	}
}

// AddImageData attaches an auxiliary image, such as an intensity image, that
// features can look up by name.
func (a *Analysis) AddImageData(name string, img image.Image) {
	a.imageData[name] = img
}

// ImageData returns the auxiliary image registered under name.
func (a *Analysis) ImageData(name string) (image.Image, bool) {
	img, ok := a.imageData[name]
	return img, ok
}

// Register adds features to the list of features to compute. Nothing is
// computed yet; registering an ID twice has no effect.
func (a *Analysis) Register(ids ...ID) {
	for _, id := range ids {
		if !a.Contains(id) {
			a.requested = append(a.requested, id)
		}
	}
}

// Contains reports whether id has been registered.
func (a *Analysis) Contains(id ID) bool {
	for _, r := range a.requested {
		if r == id {
			return true
		}
	}
	return false
}

// Registered returns the registered feature IDs in registration order.
func (a *Analysis) Registered() []ID {
	out := make([]ID, len(a.requested))
	copy(out, a.requested)
	return out
}

// IsComputed reports whether a result is stored for id.
func (a *Analysis) IsComputed(id ID) bool {
	_, ok := a.results[id]
	return ok
}

// ComputedFeatures returns the IDs of computed features, in computation order.
func (a *Analysis) ComputedFeatures() []ID {
	out := make([]ID, len(a.computed))
	copy(out, a.computed)
	return out
}

// Result returns the raw result stored for id.
func (a *Analysis) Result(id ID) (Result, bool) {
	r, ok := a.results[id]
	return r, ok
}

// Feature returns the feature instance for id, building it on first use.
// Failed constructions are not cached.
func (a *Analysis) Feature(id ID) (Feature, error) {
	if f, ok := a.features[id]; ok {
		return f, nil
	}
	f, err := a.registry.New(id)
	if err != nil {
		return nil, err
	}
	a.features[id] = f
	return f, nil
}

// Process computes the feature id and stores its result, after computing any
// missing prerequisite. It does nothing if id is already computed.
//
// A feature that transitively requires itself yields a
// CyclicDependencyError.
func (a *Analysis) Process(id ID) error {
	if a.IsComputed(id) {
		return nil
	}
	if a.inProgress[id] {
		return a.cycleError(id)
	}

	f, err := a.Feature(id)
	if err != nil {
		return err
	}

	a.inProgress[id] = true
	a.stack = append(a.stack, id)
	defer func() {
		delete(a.inProgress, id)
		a.stack = a.stack[:len(a.stack)-1]
	}()

	if err := a.Require(f); err != nil {
		return err
	}

	a.fireStatus("Analysis", "Compute feature: "+string(id))
	res, err := f.Compute(a)
	if err != nil {
		return fmt.Errorf("failed to compute feature %q: %w", id, err)
	}
	if res == nil {
		return fmt.Errorf("feature %q returned no result", id)
	}

	a.results[id] = res
	a.computed = append(a.computed, id)
	return nil
}

// Require computes every prerequisite of f that is not computed yet. It is
// safe to call repeatedly, including from within f.Compute.
func (a *Analysis) Require(f Feature) error {
	for _, dep := range f.RequiredFeatures() {
		if a.IsComputed(dep) {
			continue
		}
		if err := a.Process(dep); err != nil {
			return err
		}
	}
	return nil
}

// ComputeAll processes every registered feature in registration order.
func (a *Analysis) ComputeAll() error {
	for _, id := range a.requested {
		if err := a.Process(id); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analysis) cycleError(id ID) error {
	start := 0
	for i, s := range a.stack {
		if s == id {
			start = i
			break
		}
	}
	path := make([]ID, 0, len(a.stack)-start+1)
	path = append(path, a.stack[start:]...)
	path = append(path, id)
	return &CyclicDependencyError{Path: path}
}

// ReportProgress notifies listeners that source completed step out of total.
// Features call it while computing.
func (a *Analysis) ReportProgress(source string, step, total int) {
	e := ProgressEvent{Source: source, Step: step, Total: total}
	for _, l := range a.listeners {
		l.ProgressChanged(e)
	}
}

// ReportStatus notifies listeners of a status message.
func (a *Analysis) ReportStatus(source, message string) {
	a.fireStatus(source, message)
}

func (a *Analysis) fireStatus(source, message string) {
	e := StatusEvent{Source: source, Message: message}
	for _, l := range a.listeners {
		l.StatusChanged(e)
	}
}
