package params

// Axis is one labelled dimension of a Grid.
type Axis struct {
	Name   string
	Values []interface{}
}

// Grid is a labelled multi-dimensional parameter array. Expansion is
// already implicit in its structure, so conversion to a Table only
// linearises the grid (last axis fastest) without re-expanding.
type Grid struct {
	Axes []Axis
	meta map[string]interface{}
}

func NewGrid(axes ...Axis) *Grid {
	return &Grid{Axes: axes, meta: make(map[string]interface{})}
}

func FloatAxis(name string, values []float64) Axis {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return Axis{Name: name, Values: out}
}

func StringAxis(name string, values []string) Axis {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return Axis{Name: name, Values: out}
}

func (g *Grid) SetMeta(name string, value interface{}) {
	g.meta[name] = value
}

// Shape returns the grid dimensions in axis order.
func (g *Grid) Shape() []int {
	shape := make([]int, len(g.Axes))
	for i, ax := range g.Axes {
		shape[i] = len(ax.Values)
	}
	return shape
}

// ToTable linearises the grid into rows. Row k corresponds to the
// multi-index obtained by treating k as an odometer over the axis
// lengths, last axis varying fastest, so a result slice can be reshaped
// back onto the grid directly.
func (g *Grid) ToTable() *Table {
	n := 1
	for _, ax := range g.Axes {
		n *= len(ax.Values)
	}
	if len(g.Axes) == 0 {
		n = 0
	}

	t := &Table{
		Columns: make([]string, len(g.Axes)),
		Rows:    make([][]interface{}, 0, n),
		Meta:    make(map[string]interface{}, len(g.meta)),
	}
	for i, ax := range g.Axes {
		t.Columns[i] = ax.Name
	}
	for k, v := range g.meta {
		t.Meta[k] = v
	}
	if n == 0 {
		return t
	}

	idx := make([]int, len(g.Axes))
	for {
		row := make([]interface{}, len(g.Axes))
		for j, ax := range g.Axes {
			row[j] = ax.Values[idx[j]]
		}
		t.Rows = append(t.Rows, row)

		j := len(idx) - 1
		for j >= 0 {
			idx[j]++
			if idx[j] < len(g.Axes[j].Values) {
				break
			}
			idx[j] = 0
			j--
		}
		if j < 0 {
			return t
		}
	}
}
