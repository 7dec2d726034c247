package scatter

import (
	"math"
	"runtime"
	"sync"

	"scatgo/params"
)

// BatchOptions controls batch evaluation. Workers <= 0 means one worker
// per CPU.
type BatchOptions struct {
	Parallel bool
	Workers  int
}

// BatchResult holds one TS value per input row, in input order. Rows that
// failed hold NaN and have their error recorded in RowErrors; other rows
// are unaffected (per-row error collection, never fail-fast).
type BatchResult struct {
	TS        []float64
	RowErrors map[int]error
}

func (r BatchResult) Err(i int) error {
	return r.RowErrors[i]
}

// EvaluateBatch maps every table row through m.TSSingle. Output placement
// is by row index so ordering matches the input regardless of scheduling.
func EvaluateBatch(m Model, t *params.Table, opts BatchOptions) BatchResult {
	n := t.Len()
	res := BatchResult{
		TS:        make([]float64, n),
		RowErrors: make(map[int]error),
	}
	if n == 0 {
		return res
	}

	if !opts.Parallel {
		for i := 0; i < n; i++ {
			evalRow(m, t, i, &res, nil)
		}
		return res
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	rows := make(chan int)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range rows {
				evalRow(m, t, i, &res, &mu)
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	return res
}

func evalRow(m Model, t *params.Table, i int, res *BatchResult, mu *sync.Mutex) {
	ts, err := m.TSSingle(Params(t.RowMap(i)))
	if err != nil {
		ts = math.NaN()
		if mu != nil {
			mu.Lock()
		}
		res.RowErrors[i] = err
		if mu != nil {
			mu.Unlock()
		}
	}
	res.TS[i] = ts
}
