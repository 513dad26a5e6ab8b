package app

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/meenmo/creditcurve/shift"
)

// Shift applies the requested shift to the snapshot yield curve and prints base and
// shifted zero rates at the knots of both curves.
func (a *App) Shift(opts ShiftOptions) error {
	st, err := shift.ParseType(opts.Type)
	if err != nil {
		return err
	}
	spec, err := ParseShiftSpec(opts)
	if err != nil {
		return err
	}
	m, err := a.loadMarket(opts.MarketPath)
	if err != nil {
		return err
	}
	shifted, err := m.yield.WithShift(spec, st)
	if err != nil {
		return err
	}
	a.Logger.Debug().Str("curve", shifted.Name()).Str("type", string(st)).Msg("shifted yield curve")

	times := unionSorted(m.yield.TimePoints(), shifted.TimePoints())
	places := a.Config.Output.Decimals
	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Time\t%s\t%s\n", m.yield.Name(), shifted.Name())
	for _, t := range times {
		fmt.Fprintf(writer, "%s\t%s\t%s\n",
			formatFloat(t, places),
			formatFloat(m.yield.InterestRate(t), places),
			formatFloat(shifted.InterestRate(t), places),
		)
	}
	return writer.Flush()
}

// ParseShiftSpec builds the shift from exactly one of --parallel, --bucket lo:hi:amount
// or --point t:amount.
func ParseShiftSpec(opts ShiftOptions) (shift.Spec, error) {
	given := 0
	if opts.Parallel != nil {
		given++
	}
	if len(opts.Buckets) > 0 {
		given++
	}
	if len(opts.Points) > 0 {
		given++
	}
	if given != 1 {
		return nil, errors.New("exactly one of --parallel, --bucket or --point is required")
	}

	switch {
	case opts.Parallel != nil:
		return shift.Parallel{Amount: *opts.Parallel}, nil
	case len(opts.Buckets) > 0:
		spec := shift.Bucketed{}
		for _, raw := range opts.Buckets {
			v, err := splitFloats(raw, 3)
			if err != nil {
				return nil, fmt.Errorf("--bucket %q: %w", raw, err)
			}
			spec.Buckets = append(spec.Buckets, shift.Bucket{Start: v[0], End: v[1]})
			spec.Amounts = append(spec.Amounts, v[2])
		}
		return spec, nil
	default:
		spec := shift.Points{}
		for _, raw := range opts.Points {
			v, err := splitFloats(raw, 2)
			if err != nil {
				return nil, fmt.Errorf("--point %q: %w", raw, err)
			}
			spec.Times = append(spec.Times, v[0])
			spec.Amounts = append(spec.Amounts, v[1])
		}
		return spec, nil
	}
}

func splitFloats(raw string, n int) ([]float64, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d colon-separated numbers", n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func unionSorted(a, b []float64) []float64 {
	all := append(append([]float64{}, a...), b...)
	sort.Float64s(all)
	out := make([]float64, 0, len(all))
	for _, t := range all {
		if len(out) == 0 || t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
