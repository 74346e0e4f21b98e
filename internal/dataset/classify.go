package dataset

// Class is the semantic role a column plays in the dashboard. Every column
// gets exactly one class: numeric columns feed KPIs and axes, categorical
// columns feed filters and grouping, datetime columns feed the date range and
// time series, and high-cardinality text columns are excluded from the
// filter surface entirely.
type Class int

const (
	ClassNumeric Class = iota
	ClassCategorical
	ClassDatetime
	ClassExcluded
)

func (c Class) String() string {
	switch c {
	case ClassNumeric:
		return "numeric"
	case ClassCategorical:
		return "categorical"
	case ClassDatetime:
		return "datetime"
	default:
		return "excluded"
	}
}

// DefaultMaxCategoricalCardinality caps the distinct-value count for a text
// column to still qualify as categorical. Beyond this a multiselect widget
// becomes unusable.
const DefaultMaxCategoricalCardinality = 100

// Classifier assigns a Class to each column based on storage type and
// observed cardinality.
type Classifier struct {
	MaxCardinality int
}

// NewClassifier creates a Classifier; maxCardinality <= 0 uses the default.
func NewClassifier(maxCardinality int) *Classifier {
	if maxCardinality <= 0 {
		maxCardinality = DefaultMaxCategoricalCardinality
	}
	return &Classifier{MaxCardinality: maxCardinality}
}

// Classify returns the class for a single column.
func (cl *Classifier) Classify(col *Column) Class {
	switch col.Kind {
	case KindNumeric:
		return ClassNumeric
	case KindDatetime:
		return ClassDatetime
	default:
		if col.DistinctCount() <= cl.MaxCardinality {
			return ClassCategorical
		}
		return ClassExcluded
	}
}

// Partition groups a dataset's column names by class, preserving dataset
// order within each class.
type Partition struct {
	Numeric     []string
	Categorical []string
	Datetime    []string
	Excluded    []string
}

// PartitionColumns classifies every column of a dataset.
func (cl *Classifier) PartitionColumns(d *Dataset) Partition {
	var p Partition
	for _, col := range d.Columns() {
		switch cl.Classify(col) {
		case ClassNumeric:
			p.Numeric = append(p.Numeric, col.Name)
		case ClassCategorical:
			p.Categorical = append(p.Categorical, col.Name)
		case ClassDatetime:
			p.Datetime = append(p.Datetime, col.Name)
		default:
			p.Excluded = append(p.Excluded, col.Name)
		}
	}
	return p
}
