package regfeat

import (
	"github.com/ironsheep/region-features-mcp/internal/table"
)

// ElementCountID identifies the pixel count feature.
const ElementCountID ID = "ElementCount"

// ElementCount counts the pixels of each region. Its result is Counts.
type ElementCount struct{}

func (ElementCount) ID() ID { return ElementCountID }

func (ElementCount) RequiredFeatures() []ID { return nil }

func (ElementCount) Compute(a *Analysis) (Result, error) {
	m := a.LabelMap()
	ix := a.Index()
	counts := make(Counts, ix.Len())

	h := m.Height()
	for y := 0; y < h; y++ {
		for _, label := range m.Row(y) {
			if label == 0 {
				continue
			}
			if i, ok := ix.Lookup(label); ok {
				counts[i]++
			}
		}
		a.ReportProgress(string(ElementCountID), y+1, h)
	}
	return counts, nil
}

func (ElementCount) Table(a *Analysis) (*table.Table, error) {
	counts, err := Get[Counts](a, ElementCountID)
	if err != nil {
		return nil, err
	}
	t := a.NewRegionTable()
	if err := t.AddColumn(table.NewIntegerColumn("Count", counts)); err != nil {
		return nil, err
	}
	return t, nil
}

func (ElementCount) UnitNames(*Analysis) []string { return nil }
