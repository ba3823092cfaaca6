package check

import (
	"bytes"
	"fmt"
)

// Summary renders the report the way k6 prints checks:
//
//   █ Model API: UpdateModel
//
//     ✓ UpdateModel response status
//     ✗ Delete model status is OK
//      ↳  0% — ✓ 0 / ✗ 1
//
//   checks.....................: 95.65% ✓ 22 ✗ 1
func (r *Report) Summary() string {
	var buf bytes.Buffer
	group := ""
	first := true
	for _, t := range r.Results() {
		if first || t.Group != group {
			if !first {
				buf.WriteString("\n")
			}
			group = t.Group
			first = false
			if group != "" {
				fmt.Fprintf(&buf, "█ %s\n\n", group)
			}
		}
		if t.Fails == 0 {
			fmt.Fprintf(&buf, "  ✓ %s\n", t.Name)
			continue
		}
		fmt.Fprintf(&buf, "  ✗ %s\n", t.Name)
		fmt.Fprintf(&buf, "   ↳  %d%% — ✓ %d / ✗ %d\n", percent(t.Passes, t.Passes+t.Fails), t.Passes, t.Fails)
	}
	passes, fails := r.Totals()
	if !first {
		buf.WriteString("\n")
	}
	fmt.Fprintf(&buf, "checks.....................: %s ✓ %d ✗ %d\n", ratio(passes, passes+fails), passes, fails)
	return buf.String()
}

func percent(part, total int64) int64 {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}

func ratio(part, total int64) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)*100/float64(total))
}
