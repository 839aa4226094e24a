package helios

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Profiler collects per-frame scope timings and counters. It is driven by
// the render loop only, so it carries no locking.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int64
	Order      []string
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int64),
		Order:      make([]string, 0),
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = time.Now()
	found := false
	for _, n := range p.Order {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		p.Order = append(p.Order, name)
	}
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = time.Since(start)
	}
}

func (p *Profiler) SetCount(name string, count int64) {
	p.Counts[name] = count
}

func (p *Profiler) AddCount(name string, delta int64) {
	p.Counts[name] += delta
}

// Reset zeroes the timings but keeps scope order so repeated displays stay
// stable.
func (p *Profiler) Reset() {
	for k := range p.Scopes {
		p.Scopes[k] = 0
	}
}

// Table renders the collected scopes and counters as an aligned text table.
func (p *Profiler) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scope", "Value"})
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		table.Append([]string{name, fmt.Sprintf("%.2f ms", ms)})
	}
	keys := make([]string, 0, len(p.Counts))
	for k := range p.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		table.Append([]string{k, fmt.Sprintf("%d", p.Counts[k])})
	}
	table.Render()
	return buf.String()
}
