// Package refdata holds the reference target definitions, published
// benchmark TS values and organism shape datasets used to validate the
// scattering models. Everything is embedded in the binary, parsed once
// on first use and read-only afterwards.
package refdata

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"

	"scatgo/internal/logger"
	"scatgo/scatter"
	"scatgo/scatter/krm"
)

//go:embed data
var dataFS embed.FS

// metadata keys in a target definition that are not model parameters
var metadataKeys = map[string]bool{
	"name":        true,
	"shape":       true,
	"description": true,
	"source":      true,
	"model":       true,
}

// Benchmark is one published benchmark dataset: a sweep column followed
// by a TS column per reference target.
type Benchmark struct {
	Columns []string
	Rows    [][]float64
}

// Column returns the values of the named column.
func (b *Benchmark) Column(name string) ([]float64, bool) {
	for i, c := range b.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(b.Rows))
		for j, row := range b.Rows {
			out[j] = row[i]
		}
		return out, true
	}
	return nil, false
}

// DiscOrganism is a disc representation of an organism for the Born
// approximation models: positions, tangents and radii in the body
// frame, with material properties as ratios to the surrounding water.
type DiscOrganism struct {
	Name     string
	Source   string
	CRatio   float64
	RhoRatio float64
	Pos      [][3]float64
	Tan      [][3]float64
	A        []float64
}

// Params assembles an evaluation row for the organism in the given
// medium. Incidence angles and frequency still have to be set.
func (o *DiscOrganism) Params(mediumC, mediumRho float64) scatter.Params {
	return scatter.Params{
		"medium_c":      mediumC,
		"medium_rho":    mediumRho,
		"target_c":      mediumC * o.CRatio,
		"target_rho":    mediumRho * o.RhoRatio,
		"boundary_type": "fluid filled",
		"rv_pos":        o.Pos,
		"rv_tan":        o.Tan,
		"a":             o.A,
	}
}

// Registry provides access to the embedded reference data.
type Registry struct {
	targets   []map[string]interface{}
	byName    map[string]map[string]interface{}
	organisms map[string]*krm.Organism
	discs     map[string]*DiscOrganism
	freq      *Benchmark
	angle     *Benchmark
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the process-wide registry, loading it on first use.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Load()
	})
	return defaultReg, defaultErr
}

// Load parses the embedded reference data files.
func Load() (*Registry, error) {
	r := &Registry{
		byName:    map[string]map[string]interface{}{},
		organisms: map[string]*krm.Organism{},
		discs:     map[string]*DiscOrganism{},
	}
	if err := r.loadTargets(); err != nil {
		return nil, fmt.Errorf("reference targets: %w", err)
	}
	if err := r.loadOrganisms(); err != nil {
		return nil, fmt.Errorf("organism shapes: %w", err)
	}
	if err := r.loadDiscOrganisms(); err != nil {
		return nil, fmt.Errorf("disc organisms: %w", err)
	}
	var err error
	if r.freq, err = loadBenchmark("data/benchmark_frequency.csv"); err != nil {
		return nil, fmt.Errorf("frequency benchmark: %w", err)
	}
	if r.angle, err = loadBenchmark("data/benchmark_angle.csv"); err != nil {
		return nil, fmt.Errorf("angle benchmark: %w", err)
	}
	logger.Default().Debug("refdata", "reference data loaded", map[string]interface{}{
		"targets":   len(r.targets),
		"organisms": len(r.organisms) + len(r.discs),
	})
	return r, nil
}

func (r *Registry) loadTargets() error {
	raw, err := dataFS.ReadFile("data/targets.toml")
	if err != nil {
		return err
	}
	var defs struct {
		Parameters map[string]interface{}   `toml:"parameters"`
		Target     []map[string]interface{} `toml:"target"`
	}
	if err := toml.Unmarshal(raw, &defs); err != nil {
		return err
	}

	for _, t := range defs.Target {
		// string values naming a shared parameter are substituted here
		for k, v := range t {
			if metadataKeys[k] {
				continue
			}
			if s, ok := v.(string); ok {
				if pv, ok := defs.Parameters[s]; ok {
					t[k] = pv
				}
			}
		}
		name, ok := t["name"].(string)
		if !ok || name == "" {
			return fmt.Errorf("target entry without a name")
		}
		if _, dup := r.byName[name]; dup {
			return fmt.Errorf("duplicate target name %q", name)
		}
		r.targets = append(r.targets, t)
		r.byName[name] = t
	}
	return nil
}

// Names lists the reference targets in definition order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.targets))
	for i, t := range r.targets {
		names[i] = t["name"].(string)
	}
	return names
}

// Specification returns the full definition of a named target,
// metadata included.
func (r *Registry) Specification(name string) (map[string]interface{}, bool) {
	t, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	out := make(map[string]interface{}, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out, true
}

// Parameters returns the model parameters of a named target with the
// descriptive metadata stripped, ready to evaluate.
func (r *Registry) Parameters(name string) (scatter.Params, bool) {
	t, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	p := scatter.Params{}
	for k, v := range t {
		if !metadataKeys[k] {
			p[k] = v
		}
	}
	return p, true
}

// Model returns the short name of the model a target is defined for.
func (r *Registry) Model(name string) (string, bool) {
	t, ok := r.byName[name]
	if !ok {
		return "", false
	}
	m, ok := t["model"].(string)
	return m, ok
}

// FrequencyBenchmark returns the TS-versus-frequency benchmark dataset.
func (r *Registry) FrequencyBenchmark() *Benchmark { return r.freq }

// AngleBenchmark returns the TS-versus-incidence-angle benchmark dataset.
func (r *Registry) AngleBenchmark() *Benchmark { return r.angle }

// Organism returns a named KRM organism shape.
func (r *Registry) Organism(name string) (*krm.Organism, bool) {
	o, ok := r.organisms[name]
	return o, ok
}

// OrganismNames lists the available KRM organism shapes.
func (r *Registry) OrganismNames() []string {
	names := make([]string, 0, len(r.organisms))
	for n := range r.organisms {
		names = append(names, n)
	}
	return names
}

func (r *Registry) loadOrganisms() error {
	raw, err := dataFS.ReadFile("data/krm_shapes.toml")
	if err != nil {
		return err
	}
	var file struct {
		Shape []struct {
			Name           string    `toml:"name"`
			Source         string    `toml:"source"`
			Length         float64   `toml:"length"`
			BodyC          float64   `toml:"body_c"`
			BodyRho        float64   `toml:"body_rho"`
			SwimbladderC   float64   `toml:"swimbladder_c"`
			SwimbladderRho float64   `toml:"swimbladder_rho"`
			XB             []float64 `toml:"x_b"`
			WB             []float64 `toml:"w_b"`
			ZBU            []float64 `toml:"z_bU"`
			ZBL            []float64 `toml:"z_bL"`
			XSB            []float64 `toml:"x_sb"`
			WSB            []float64 `toml:"w_sb"`
			ZSBU           []float64 `toml:"z_sbU"`
			ZSBL           []float64 `toml:"z_sbL"`
		} `toml:"shape"`
	}
	if err := toml.Unmarshal(raw, &file); err != nil {
		return err
	}
	for _, s := range file.Shape {
		body := &krm.Shape{
			Boundary: scatter.FluidFilled,
			X:        s.XB, W: s.WB, ZU: s.ZBU, ZL: s.ZBL,
			C: s.BodyC, Rho: s.BodyRho,
		}
		swimbladder := &krm.Shape{
			Boundary: scatter.PressureRelease,
			X:        s.XSB, W: s.WSB, ZU: s.ZSBU, ZL: s.ZSBL,
			C: s.SwimbladderC, Rho: s.SwimbladderRho,
		}
		r.organisms[s.Name] = &krm.Organism{
			Name:       s.Name,
			Body:       body,
			Inclusions: []*krm.Shape{swimbladder},
		}
	}
	return nil
}

// DiscOrganism returns a named disc organism.
func (r *Registry) DiscOrganism(name string) (*DiscOrganism, bool) {
	o, ok := r.discs[name]
	return o, ok
}

// DiscOrganismNames lists the available disc organisms.
func (r *Registry) DiscOrganismNames() []string {
	names := make([]string, 0, len(r.discs))
	for n := range r.discs {
		names = append(names, n)
	}
	return names
}

func (r *Registry) loadDiscOrganisms() error {
	raw, err := dataFS.ReadFile("data/dwba_organisms.toml")
	if err != nil {
		return err
	}
	var file struct {
		Organism []struct {
			Name     string    `toml:"name"`
			Source   string    `toml:"source"`
			CRatio   float64   `toml:"target_c_ratio"`
			RhoRatio float64   `toml:"target_rho_ratio"`
			X        []float64 `toml:"x"`
			Y        []float64 `toml:"y"`
			Z        []float64 `toml:"z"`
			TanX     []float64 `toml:"tan_x"`
			TanY     []float64 `toml:"tan_y"`
			TanZ     []float64 `toml:"tan_z"`
			A        []float64 `toml:"a"`
		} `toml:"organism"`
	}
	if err := toml.Unmarshal(raw, &file); err != nil {
		return err
	}
	for _, o := range file.Organism {
		n := len(o.X)
		if len(o.Y) != n || len(o.Z) != n || len(o.TanX) != n ||
			len(o.TanY) != n || len(o.TanZ) != n || len(o.A) != n {
			return fmt.Errorf("disc organism %q: mismatched array lengths", o.Name)
		}
		d := &DiscOrganism{
			Name: o.Name, Source: o.Source,
			CRatio: o.CRatio, RhoRatio: o.RhoRatio,
			Pos: make([][3]float64, n),
			Tan: make([][3]float64, n),
			A:   o.A,
		}
		for i := 0; i < n; i++ {
			d.Pos[i] = [3]float64{o.X[i], o.Y[i], o.Z[i]}
			d.Tan[i] = [3]float64{o.TanX[i], o.TanY[i], o.TanZ[i]}
		}
		r.discs[o.Name] = d
	}
	return nil
}

func loadBenchmark(path string) (*Benchmark, error) {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}
	b := &Benchmark{Columns: records[0]}
	for _, rec := range records[1:] {
		if len(rec) != len(b.Columns) {
			return nil, fmt.Errorf("%s: row has %d fields, want %d",
				path, len(rec), len(b.Columns))
		}
		row := make([]float64, len(rec))
		for i, field := range rec {
			if row[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		b.Rows = append(b.Rows, row)
	}
	return b, nil
}
