package core

import (
	"strconv"

	"github.com/databoard/databoard/internal/dataset"
	"github.com/databoard/databoard/internal/engine"
)

const previewDateLayout = "2006-01-02"

// Schema builds the widget-facing description of a session's dataset.
func (s *Service) Schema(sess *Session) SchemaInfo {
	d := sess.Dataset
	part := sess.Partition

	info := SchemaInfo{
		SessionID:          sess.ID,
		FileName:           sess.FileName,
		Rows:               d.Rows(),
		CategoricalOptions: make(map[string][]string, len(part.Categorical)),
		NumericColumns:     part.Numeric,
		DateColumns:        part.Datetime,
		ExcludedColumns:    part.Excluded,
		DateRanges:         make(map[string]DateRange, len(part.Datetime)),
	}

	classByName := make(map[string]dataset.Class, len(d.Columns()))
	for _, col := range d.Columns() {
		classByName[col.Name] = s.classifier.Classify(col)
	}
	for _, col := range d.Columns() {
		info.Columns = append(info.Columns, ColumnInfo{
			Name:  col.Name,
			Kind:  col.Kind.String(),
			Class: classByName[col.Name].String(),
		})
	}

	for _, name := range part.Categorical {
		col, _ := d.Column(name)
		info.CategoricalOptions[name] = engine.CategoricalOptions(col)
	}
	for _, name := range part.Datetime {
		col, _ := d.Column(name)
		if min, max, ok := col.TimeBounds(); ok {
			info.DateRanges[name] = DateRange{Min: min, Max: max}
		}
	}
	return info
}

// FilteredView validates the selections against the session's dataset and
// returns the filtered row view. Defaults are filled in first, so a zero
// Selections means "everything".
func (s *Service) FilteredView(sess *Session, sel engine.Selections) (engine.View, engine.Selections, error) {
	sel.ApplyDefaults(sess.Dataset, sess.Partition)
	if err := sel.Validate(sess.Dataset, sess.Partition); err != nil {
		return engine.View{}, sel, err
	}
	return engine.ApplyFilters(sess.Dataset, sel), sel, nil
}

// Render computes the complete dashboard for one interaction. It is a pure
// function of the session's dataset and the given selections.
func (s *Service) Render(sess *Session, sel engine.Selections) (*Dashboard, error) {
	view, sel, err := s.FilteredView(sess, sel)
	if err != nil {
		return nil, err
	}

	part := sess.Partition
	avail := Availability{
		TimeSeries: sel.DateColumn != "" && sel.Metric != "",
		Scatter:    sel.ScatterX != "" && sel.ScatterY != "" && sel.ScatterX != sel.ScatterY,
		Bar:        sel.BarDimension != "" && sel.Metric != "",
		TopN:       sel.TopDimension != "" && sel.Metric != "",
	}

	dash := &Dashboard{
		TopDimension: sel.TopDimension,
		BarDimension: sel.BarDimension,
		Availability: avail,
		FilteredRows: view.Len(),
	}

	if sel.Metric != "" {
		kpi := engine.ComputeKPI(view, sel.Metric)
		dash.KPIs = KPIBlock{
			Metric:       sel.Metric,
			Total:        kpi.Total,
			Average:      kpi.Average,
			TotalRecords: kpi.Count,
		}
	} else {
		dash.KPIs = KPIBlock{TotalRecords: view.Len()}
	}

	if avail.TopN {
		groups := engine.GroupSum(view, sel.TopDimension, sel.Metric)
		dash.TopGroups = engine.TopN(groups, s.cfg.Engine.TopN)
	}
	if avail.Bar {
		dash.Bars = engine.GroupSum(view, sel.BarDimension, sel.Metric)
	}
	if avail.TimeSeries {
		dash.TimeSeries = engine.ResampleMonthlySum(view, sel.DateColumn, sel.Metric)
	}
	if avail.Scatter {
		hover := ""
		if len(part.Categorical) > 0 {
			hover = part.Categorical[0]
		}
		dash.Scatter = engine.ScatterSample(view, sel.ScatterX, sel.ScatterY, hover,
			s.cfg.Engine.SampleLimit, s.cfg.Engine.SampleSeed)
	}

	dash.Preview = s.preview(view)
	return dash, nil
}

// preview stringifies the first PreviewRows filtered rows for the data table.
func (s *Service) preview(v engine.View) PreviewTable {
	limit := s.cfg.Engine.PreviewRows
	total := v.Len()
	n := total
	if n > limit {
		n = limit
	}

	cols := v.Data.Columns()
	p := PreviewTable{
		Columns:   v.Data.Names(),
		Rows:      make([][]string, 0, n),
		TotalRows: total,
		Truncated: total > limit,
	}
	for row := 0; row < n; row++ {
		rec := make([]string, len(cols))
		for i, col := range cols {
			rec[i] = previewCell(v, row, col)
		}
		p.Rows = append(p.Rows, rec)
	}
	return p
}

func previewCell(v engine.View, row int, col *dataset.Column) string {
	switch col.Kind {
	case dataset.KindNumeric:
		f, ok := v.Float(row, col)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case dataset.KindDatetime:
		t, ok := v.Time(row, col)
		if !ok {
			return ""
		}
		return t.Format(previewDateLayout)
	default:
		str, ok := v.String(row, col)
		if !ok {
			return ""
		}
		return str
	}
}
